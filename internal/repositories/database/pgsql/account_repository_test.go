package pgsql

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAccountListQuery_NoFilter(t *testing.T) {
	query, _ := buildAccountListQuery(domain.AccountFilter{}, 101, nil)

	assert.Contains(t, query, "FROM accounts a")
	assert.Contains(t, query, "JOIN clients c ON c.id = a.client_id")
	assert.Contains(t, query, "JOIN collection_agencies ag ON ag.id = c.collection_agency_id")
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY a.created_at ASC, a.id ASC")
	assert.Contains(t, query, "LIMIT")
}

func TestBuildAccountListQuery_AllPredicatesAreANDed(t *testing.T) {
	minBalance := decimal.RequireFromString("10")
	maxBalance := decimal.RequireFromString("500.25")
	status := domain.StatusInCollection
	filter := domain.AccountFilter{
		MinBalance:   &minBalance,
		MaxBalance:   &maxBalance,
		Status:       &status,
		ConsumerName: "doe",
	}

	query, args := buildAccountListQuery(filter, 101, nil)

	assert.Contains(t, query, "a.balance >= $1")
	assert.Contains(t, query, "a.balance <= $2")
	assert.Contains(t, query, "a.status = $3")
	assert.Contains(t, query, "EXISTS (SELECT 1 FROM account_consumers ac JOIN consumers co ON co.id = ac.consumer_id WHERE ac.account_id = a.id AND co.name ILIKE $4)")
	assert.Contains(t, query, "a.balance >= $1 AND a.balance <= $2 AND a.status = $3 AND EXISTS")

	require.GreaterOrEqual(t, len(args), 4)
	assert.Equal(t, minBalance, args[0])
	assert.Equal(t, maxBalance, args[1])
	assert.Equal(t, "IN_COLLECTION", args[2])
	assert.Equal(t, "%doe%", args[3])
}

func TestBuildAccountListQuery_Cursor(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	status := domain.StatusInactive

	query, args := buildAccountListQuery(domain.AccountFilter{Status: &status}, 11, &cursorPosition{CreatedAt: createdAt, ID: 42})

	assert.Contains(t, query, "a.status = $1 AND (a.created_at, a.id) > ($2, $3)")
	require.GreaterOrEqual(t, len(args), 3)
	assert.Equal(t, createdAt, args[1])
	assert.Equal(t, int64(42), args[2])
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestTrimPage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.Consumer{
		{ID: 1, Timestamps: domain.Timestamps{CreatedAt: base}},
		{ID: 2, Timestamps: domain.Timestamps{CreatedAt: base.Add(time.Second)}},
		{ID: 3, Timestamps: domain.Timestamps{CreatedAt: base.Add(2 * time.Second)}},
	}
	position := func(c domain.Consumer) (time.Time, int64) { return c.CreatedAt, c.ID }

	page, next := trimPage(items, 2, position)
	require.Len(t, page, 2)
	require.NotNil(t, next)

	createdAt, id, err := pagination.DecodeCursor(*next)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(base.Add(time.Second)))
	assert.Equal(t, int64(2), id)

	page, next = trimPage(items, 3, position)
	assert.Len(t, page, 3)
	assert.Nil(t, next)
}

func TestDecodeCursor(t *testing.T) {
	pos, err := decodeCursor(nil)
	assert.NoError(t, err)
	assert.Nil(t, pos)

	empty := ""
	pos, err = decodeCursor(&empty)
	assert.NoError(t, err)
	assert.Nil(t, pos)

	bad := "not-a-cursor!"
	_, err = decodeCursor(&bad)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
