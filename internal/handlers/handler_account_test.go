package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/SscSPs/collections_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const uploadCSV = "client reference no,balance,status,consumer name,consumer address,ssn\n" +
	"REF-1,100.50,IN_COLLECTION,Jane Doe,1 Main St,123-45-6789\n"

type AccountHandlerTestSuite struct {
	handlerSuite
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

func sampleAccount() *domain.Account {
	agency := &domain.CollectionAgency{ID: 1, Name: "Acme Recovery"}
	return &domain.Account{
		ID:                10,
		ClientReferenceNo: "REF-1",
		Balance:           decimal.RequireFromString("100.5"),
		Status:            domain.StatusInCollection,
		ClientID:          2,
		Client:            &domain.Client{ID: 2, Name: "Bank of Test", CollectionAgencyID: 1, CollectionAgency: agency},
		Consumers:         []domain.Consumer{{ID: 3, Name: "Jane Doe", Address: "1 Main St", SSN: "123-45-6789"}},
	}
}

func (s *AccountHandlerTestSuite) TestGet_RendersNestedAccount() {
	s.accounts.On("GetAccountByID", mock.Anything, int64(10)).Return(sampleAccount(), nil).Once()

	w := s.do(http.MethodGet, "/accounts/10", nil)

	s.Equal(http.StatusOK, w.Code)
	var body dto.AccountResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("100.50", body.Balance)
	s.Equal(domain.StatusInCollection, body.Status)
	s.Require().NotNil(body.Client)
	s.Require().NotNil(body.Client.CollectionAgency)
	s.Equal("Acme Recovery", body.Client.CollectionAgency.Name)
	s.Require().Len(body.Consumers, 1)
	s.Equal("123-45-6789", body.Consumers[0].SSN)
}

func (s *AccountHandlerTestSuite) TestList_ParsesFilters() {
	s.accounts.On("ListAccounts", mock.Anything, mock.MatchedBy(func(f domain.AccountFilter) bool {
		return f.MinBalance != nil && f.MinBalance.Equal(decimal.NewFromInt(100)) &&
			f.MaxBalance != nil && f.MaxBalance.Equal(decimal.RequireFromString("250.75")) &&
			f.Status != nil && *f.Status == domain.StatusPaidInFull &&
			f.ConsumerName == "doe"
	}), strPtr("tok")).Return([]domain.Account{*sampleAccount()}, (*string)(nil), nil).Once()

	w := s.do(http.MethodGet, "/accounts/?min_balance=100&max_balance=250.75&status=PAID_IN_FULL&consumer_name=doe&cursor=tok", nil)

	s.Equal(http.StatusOK, w.Code)
	var body dto.ListAccountsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Len(body.Results, 1)
}

func (s *AccountHandlerTestSuite) TestList_NoFilters() {
	s.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}, (*string)(nil)).
		Return([]domain.Account{}, (*string)(nil), nil).Once()

	w := s.do(http.MethodGet, "/accounts/", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"next":null,"results":[]}`, w.Body.String())
}

func (s *AccountHandlerTestSuite) TestList_RejectsMalformedBalance() {
	w := s.do(http.MethodGet, "/accounts/?min_balance=lots", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("min_balance must be a number", s.errorBody(w))

	w = s.do(http.MethodGet, "/accounts/?max_balance=1e", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("max_balance must be a number", s.errorBody(w))
}

func (s *AccountHandlerTestSuite) TestCreate_Success() {
	s.accounts.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.ClientReferenceNo == "REF-1" && req.Balance != nil &&
			req.Balance.Equal(decimal.RequireFromString("100.5")) && req.ClientID == 2 && req.Status == ""
	})).Return(sampleAccount(), nil).Once()

	w := s.do(http.MethodPost, "/accounts/", `{"client_reference_no":"REF-1","balance":"100.5","client_id":2}`)

	s.Equal(http.StatusCreated, w.Code)
}

func (s *AccountHandlerTestSuite) TestCreate_BindingFailures() {
	cases := map[string]string{
		"missing balance": `{"client_reference_no":"REF-1","client_id":2}`,
		"bad status":      `{"client_reference_no":"REF-1","balance":"1","client_id":2,"status":"CLOSED"}`,
		"missing client":  `{"client_reference_no":"REF-1","balance":"1"}`,
		"malformed json":  `{"client_reference_no":`,
	}
	for name, body := range cases {
		w := s.do(http.MethodPost, "/accounts/", body)
		s.Equal(http.StatusBadRequest, w.Code, name)
	}
}

func (s *AccountHandlerTestSuite) TestCreate_DuplicateReference() {
	s.accounts.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := s.do(http.MethodPost, "/accounts/", `{"client_reference_no":"REF-1","balance":"1","client_id":2}`)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *AccountHandlerTestSuite) TestCreate_NegativeBalance() {
	s.accounts.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, apperrors.Newf(apperrors.ErrValidation, "balance must be non-negative")).Once()

	w := s.do(http.MethodPost, "/accounts/", `{"client_reference_no":"REF-1","balance":"-1","client_id":2}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("balance must be non-negative", s.errorBody(w))
}

func (s *AccountHandlerTestSuite) TestUpdate() {
	status := domain.StatusPaidInFull
	s.accounts.On("UpdateAccount", mock.Anything, int64(10), dto.UpdateAccountRequest{Status: &status}).
		Return(sampleAccount(), nil).Once()

	w := s.do(http.MethodPut, "/accounts/10", `{"status":"PAID_IN_FULL"}`)

	s.Equal(http.StatusOK, w.Code)
}

func (s *AccountHandlerTestSuite) TestDelete() {
	s.accounts.On("DeleteAccount", mock.Anything, int64(10)).Return(nil).Once()

	w := s.do(http.MethodDelete, "/accounts/10", nil)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *AccountHandlerTestSuite) TestLinkConsumer_CreatedThenExisting() {
	s.accounts.On("LinkConsumer", mock.Anything, int64(10), int64(3)).Return(sampleAccount(), true, nil).Once()
	s.accounts.On("LinkConsumer", mock.Anything, int64(10), int64(3)).Return(sampleAccount(), false, nil).Once()

	first := s.do(http.MethodPost, "/accounts/10/consumers", `{"consumer_id":3}`)
	s.Equal(http.StatusCreated, first.Code)

	second := s.do(http.MethodPost, "/accounts/10/consumers", `{"consumer_id":3}`)
	s.Equal(http.StatusOK, second.Code)
}

func (s *AccountHandlerTestSuite) TestLinkConsumer_UnknownConsumer() {
	s.accounts.On("LinkConsumer", mock.Anything, int64(10), int64(77)).
		Return(nil, false, apperrors.Newf(apperrors.ErrValidation, "consumer with ID %d does not exist", 77)).Once()

	w := s.do(http.MethodPost, "/accounts/10/consumers", `{"consumer_id":77}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("consumer with ID 77 does not exist", s.errorBody(w))
}

func (s *AccountHandlerTestSuite) TestUnlinkConsumer() {
	s.accounts.On("UnlinkConsumer", mock.Anything, int64(10), int64(3)).Return(nil).Once()
	s.accounts.On("UnlinkConsumer", mock.Anything, int64(10), int64(4)).Return(apperrors.ErrNotFound).Once()

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/accounts/10/consumers/3", nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/accounts/10/consumers/4", nil).Code)
}

// --- upload-csv ---

func (s *AccountHandlerTestSuite) TestUpload_Success() {
	result := &domain.ImportResult{AccountsProcessed: 1, AccountsCreated: 1, ConsumersCreated: 1, ConsumerAccountsLinked: 1}
	s.imports.On("ImportAccountsCSV", mock.Anything, int64(1), int64(2)).Return(result, nil).Once()

	w := s.upload(map[string]string{"collection_agency_id": "1", "client_id": "2"}, uploadCSV)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"accounts_processed":1,"accounts_created":1,"accounts_updated":0,"consumers_created":1,"consumer_accounts_linked":1}`, w.Body.String())
	s.Equal(uploadCSV, s.imports.body)
}

func (s *AccountHandlerTestSuite) TestUpload_RequestErrors() {
	cases := []struct {
		name   string
		fields map[string]string
		file   string
		want   string
	}{
		{"no file", map[string]string{"collection_agency_id": "1", "client_id": "2"}, "", "No file provided"},
		{"no agency", map[string]string{"client_id": "2"}, uploadCSV, "collection_agency_id is required"},
		{"no client", map[string]string{"collection_agency_id": "1"}, uploadCSV, "client_id is required"},
		{"file checked first", map[string]string{}, "", "No file provided"},
		{"non-integer agency", map[string]string{"collection_agency_id": "one", "client_id": "2"}, uploadCSV, "collection_agency_id must be an integer"},
		{"non-integer client", map[string]string{"collection_agency_id": "1", "client_id": "2.5"}, uploadCSV, "client_id must be an integer"},
	}
	for _, tc := range cases {
		w := s.upload(tc.fields, tc.file)
		s.Equal(http.StatusBadRequest, w.Code, tc.name)
		s.Equal(tc.want, s.errorBody(w), tc.name)
	}
	s.imports.AssertNotCalled(s.T(), "ImportAccountsCSV", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountHandlerTestSuite) TestUpload_ImportErrorsAreBadRequests() {
	errs := []error{
		apperrors.Newf(apperrors.ErrConfiguration, "Collection agency with ID %d does not exist", 1),
		apperrors.Newf(apperrors.ErrValidation, "Row %d: Balance must be non-negative", 2),
		apperrors.Newf(apperrors.ErrImport, "Error importing CSV: %s", "deadlock detected"),
	}
	for _, err := range errs {
		s.imports.On("ImportAccountsCSV", mock.Anything, int64(1), int64(2)).Return(nil, err).Once()

		w := s.upload(map[string]string{"collection_agency_id": "1", "client_id": "2"}, uploadCSV)

		s.Equal(http.StatusBadRequest, w.Code, err.Error())
		s.Equal(err.Error(), s.errorBody(w))
	}
}

func (s *AccountHandlerTestSuite) TestUpload_UnexpectedError() {
	s.imports.On("ImportAccountsCSV", mock.Anything, int64(1), int64(2)).
		Return(nil, errors.New("pool exhausted")).Once()

	w := s.upload(map[string]string{"collection_agency_id": "1", "client_id": "2"}, uploadCSV)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Unexpected error while importing CSV", s.errorBody(w))
}

type UploadLimitsTestSuite struct {
	handlerSuite
}

func TestUploadLimits(t *testing.T) {
	s := new(UploadLimitsTestSuite)
	s.cfg = &config.Config{
		IsProduction:    true,
		UploadRateLimit: "2-M",
		MaxUploadBytes:  512,
	}
	suite.Run(t, s)
}

func (s *UploadLimitsTestSuite) TestTooLarge() {
	big := uploadCSV + strings.Repeat("REF-X,1,IN_COLLECTION,A,B,123-45-6789\n", 50)

	w := s.upload(map[string]string{"collection_agency_id": "1", "client_id": "2"}, big)

	s.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (s *UploadLimitsTestSuite) TestRateLimited() {
	fields := map[string]string{"collection_agency_id": "1"}
	s.Equal(http.StatusBadRequest, s.upload(fields, uploadCSV).Code)
	s.Equal(http.StatusBadRequest, s.upload(fields, uploadCSV).Code)
	s.Equal(http.StatusTooManyRequests, s.upload(fields, uploadCSV).Code)
}
