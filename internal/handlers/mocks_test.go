package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/SscSPs/collections_app/internal/core/domain"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/SscSPs/collections_app/internal/handlers"
	"github.com/SscSPs/collections_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CollectionAgencyService ---
type MockCollectionAgencyService struct {
	mock.Mock
}

func (m *MockCollectionAgencyService) GetCollectionAgencyByID(ctx context.Context, agencyID int64) (*domain.CollectionAgency, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionAgency), args.Error(1)
}

func (m *MockCollectionAgencyService) ListCollectionAgencies(ctx context.Context, cursor *string) ([]domain.CollectionAgency, *string, error) {
	args := m.Called(ctx, cursor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.CollectionAgency), args.Get(1).(*string), args.Error(2)
}

func (m *MockCollectionAgencyService) CreateCollectionAgency(ctx context.Context, req dto.CreateCollectionAgencyRequest) (*domain.CollectionAgency, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionAgency), args.Error(1)
}

func (m *MockCollectionAgencyService) UpdateCollectionAgency(ctx context.Context, agencyID int64, req dto.UpdateCollectionAgencyRequest) (*domain.CollectionAgency, error) {
	args := m.Called(ctx, agencyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionAgency), args.Error(1)
}

func (m *MockCollectionAgencyService) DeleteCollectionAgency(ctx context.Context, agencyID int64) error {
	return m.Called(ctx, agencyID).Error(0)
}

var _ portssvc.CollectionAgencySvcFacade = (*MockCollectionAgencyService)(nil)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, cursor *string) ([]domain.Client, *string, error) {
	args := m.Called(ctx, cursor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Client), args.Get(1).(*string), args.Error(2)
}

func (m *MockClientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) UpdateClient(ctx context.Context, clientID int64, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) DeleteClient(ctx context.Context, clientID int64) error {
	return m.Called(ctx, clientID).Error(0)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock ConsumerService ---
type MockConsumerService struct {
	mock.Mock
}

func (m *MockConsumerService) GetConsumerByID(ctx context.Context, consumerID int64) (*domain.Consumer, error) {
	args := m.Called(ctx, consumerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumer), args.Error(1)
}

func (m *MockConsumerService) ListConsumers(ctx context.Context, cursor *string) ([]domain.Consumer, *string, error) {
	args := m.Called(ctx, cursor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Consumer), args.Get(1).(*string), args.Error(2)
}

func (m *MockConsumerService) CreateConsumer(ctx context.Context, req dto.CreateConsumerRequest) (*domain.Consumer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumer), args.Error(1)
}

func (m *MockConsumerService) UpdateConsumer(ctx context.Context, consumerID int64, req dto.UpdateConsumerRequest) (*domain.Consumer, error) {
	args := m.Called(ctx, consumerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Consumer), args.Error(1)
}

func (m *MockConsumerService) DeleteConsumer(ctx context.Context, consumerID int64) error {
	return m.Called(ctx, consumerID).Error(0)
}

var _ portssvc.ConsumerSvcFacade = (*MockConsumerService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter, cursor *string) ([]domain.Account, *string, error) {
	args := m.Called(ctx, filter, cursor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Account), args.Get(1).(*string), args.Error(2)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID int64) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *MockAccountService) LinkConsumer(ctx context.Context, accountID, consumerID int64) (*domain.Account, bool, error) {
	args := m.Called(ctx, accountID, consumerID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Bool(1), args.Error(2)
}

func (m *MockAccountService) UnlinkConsumer(ctx context.Context, accountID, consumerID int64) error {
	return m.Called(ctx, accountID, consumerID).Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ImportService ---
type MockImportService struct {
	mock.Mock
	// body holds what the handler streamed to the service.
	body string
}

func (m *MockImportService) ImportAccountsCSV(ctx context.Context, agencyID, clientID int64, r io.Reader) (*domain.ImportResult, error) {
	data, _ := io.ReadAll(r)
	m.body = string(data)
	args := m.Called(ctx, agencyID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

var _ portssvc.ImportSvc = (*MockImportService)(nil)

// handlerSuite wires every mocked service into the real router.
type handlerSuite struct {
	suite.Suite
	router    *gin.Engine
	agencies  *MockCollectionAgencyService
	clients   *MockClientService
	consumers *MockConsumerService
	accounts  *MockAccountService
	imports   *MockImportService
	cfg       *config.Config
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.agencies = new(MockCollectionAgencyService)
	s.clients = new(MockClientService)
	s.consumers = new(MockConsumerService)
	s.accounts = new(MockAccountService)
	s.imports = new(MockImportService)

	if s.cfg == nil {
		s.cfg = &config.Config{
			IsProduction:       true,
			UploadRateLimit:    "1000-M",
			MaxUploadBytes:     1 << 20,
			CORSAllowedOrigins: []string{"*"},
		}
	}

	container := &portssvc.ServiceContainer{
		CollectionAgency: s.agencies,
		Client:           s.clients,
		Consumer:         s.consumers,
		Account:          s.accounts,
		Import:           s.imports,
	}

	router, err := handlers.NewRouter(s.cfg, container, nil, slog.Default())
	s.Require().NoError(err)
	s.router = router
}

func (s *handlerSuite) TearDownTest() {
	s.agencies.AssertExpectations(s.T())
	s.clients.AssertExpectations(s.T())
	s.consumers.AssertExpectations(s.T())
	s.accounts.AssertExpectations(s.T())
	s.imports.AssertExpectations(s.T())
}

func (s *handlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// upload posts a multipart form; an empty fileContent omits the file part.
func (s *handlerSuite) upload(fields map[string]string, fileContent string) *httptest.ResponseRecorder {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		s.Require().NoError(mw.WriteField(k, v))
	}
	if fileContent != "" {
		part, err := mw.CreateFormFile("file", "accounts.csv")
		s.Require().NoError(err)
		_, err = part.Write([]byte(fileContent))
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/accounts/upload-csv", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func strPtr(v string) *string { return &v }
