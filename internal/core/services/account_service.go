package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	portsrepo "github.com/SscSPs/collections_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/dto"
	"github.com/SscSPs/collections_app/internal/utils/pagination"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	clientRepo   portsrepo.ClientReader
	consumerRepo portsrepo.ConsumerReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithClientReader adds the client lookup used to validate account ownership
func WithClientReader(repo portsrepo.ClientReader) AccountServiceOption {
	return func(s *accountService) {
		s.clientRepo = repo
	}
}

// WithConsumerReader adds the consumer lookup used when linking consumers
func WithConsumerReader(repo portsrepo.ConsumerReader) AccountServiceOption {
	return func(s *accountService) {
		s.consumerRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	status := req.Status
	if status == "" {
		status = domain.StatusInCollection
	}

	account := domain.Account{
		ClientReferenceNo: req.ClientReferenceNo,
		Balance:           *req.Balance,
		Status:            status,
		ClientID:          req.ClientID,
	}
	if err := s.validateAccount(ctx, &account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account",
				slog.String("client_reference_no", account.ClientReferenceNo))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", account.ID))
	return s.accountRepo.FindAccountByID(ctx, account.ID)
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		// ErrNotFound is an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	s.LogDebug(ctx, "Account retrieved", slog.Int64("account_id", account.ID))
	return account, nil
}

// ListAccounts retrieves one page of accounts matching filter.
func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter, cursor *string) ([]domain.Account, *string, error) {
	accounts, next, err := s.accountRepo.ListAccounts(ctx, filter, pagination.PageSize, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, next, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	clientChanged := false
	if req.Balance != nil {
		account.Balance = *req.Balance
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	if req.ClientID != nil && *req.ClientID != account.ClientID {
		account.ClientID = *req.ClientID
		clientChanged = true
	}

	if err := s.validateBalanceAndStatus(account); err != nil {
		return nil, err
	}
	if clientChanged {
		if err := s.ensureClientExists(ctx, account.ClientID); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.Int64("account_id", accountID))
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID))
	return nil
}

func (s *accountService) LinkConsumer(ctx context.Context, accountID, consumerID int64) (*domain.Account, bool, error) {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return nil, false, err
	}
	if s.consumerRepo != nil {
		if _, err := s.consumerRepo.FindConsumerByID(ctx, consumerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, false, apperrors.Newf(apperrors.ErrValidation, "consumer with ID %d does not exist", consumerID)
			}
			return nil, false, err
		}
	}

	created, err := s.accountRepo.LinkConsumer(ctx, accountID, consumerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to link consumer to account",
			slog.Int64("account_id", accountID), slog.Int64("consumer_id", consumerID))
		return nil, false, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, false, err
	}
	return account, created, nil
}

func (s *accountService) UnlinkConsumer(ctx context.Context, accountID, consumerID int64) error {
	if err := s.accountRepo.UnlinkConsumer(ctx, accountID, consumerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to unlink consumer from account",
				slog.Int64("account_id", accountID), slog.Int64("consumer_id", consumerID))
		}
		return err
	}
	return nil
}

func (s *accountService) validateAccount(ctx context.Context, account *domain.Account) error {
	if err := s.validateBalanceAndStatus(account); err != nil {
		return err
	}
	return s.ensureClientExists(ctx, account.ClientID)
}

func (s *accountService) validateBalanceAndStatus(account *domain.Account) error {
	if !account.Status.IsValid() {
		return apperrors.Newf(apperrors.ErrValidation, "invalid status %q", account.Status)
	}
	if account.Balance.IsNegative() {
		return apperrors.Newf(apperrors.ErrValidation, "balance must be non-negative")
	}
	if !domain.BalanceFits(account.Balance) {
		return apperrors.Newf(apperrors.ErrValidation, "balance exceeds %d digits with %d decimal places",
			domain.BalanceMaxDigits, domain.BalanceDecimalPlaces)
	}
	account.Balance = account.Balance.RoundBank(domain.BalanceDecimalPlaces)
	return nil
}

func (s *accountService) ensureClientExists(ctx context.Context, clientID int64) error {
	if s.clientRepo == nil {
		return nil
	}
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Newf(apperrors.ErrValidation, "client with ID %d does not exist", clientID)
		}
		return err
	}
	return nil
}
