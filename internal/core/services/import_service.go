package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	portsrepo "github.com/SscSPs/collections_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/platform/metrics"
	"github.com/google/uuid"
)

// ImportDeps groups the storage and messaging used by CSV imports.
type ImportDeps struct {
	Agencies  portsrepo.CollectionAgencyReader
	Clients   portsrepo.ClientReader
	Consumers portsrepo.ConsumerImportSupport
	Accounts  portsrepo.AccountImportRepositoryWithTx
	// Publisher is optional; when nil no event is sent after an import.
	Publisher portssvc.EventPublisher
}

// CSVImporter imports one CSV file on behalf of a collection agency and one of its clients.
type CSVImporter struct {
	BaseService
	deps   ImportDeps
	agency *domain.CollectionAgency
	client *domain.Client
}

// NewCSVImporter resolves the agency and client an import runs for. It returns an
// ErrConfiguration error when either does not exist or the client belongs to
// another agency. Storage errors are returned as is.
func NewCSVImporter(ctx context.Context, deps ImportDeps, agencyID, clientID int64) (*CSVImporter, error) {
	agency, err := deps.Agencies.FindCollectionAgencyByID(ctx, agencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Newf(apperrors.ErrConfiguration,
				"Collection agency with ID %d does not exist.", agencyID)
		}
		return nil, err
	}

	client, err := deps.Clients.FindClientByID(ctx, clientID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if client == nil || client.CollectionAgencyID != agency.ID {
		return nil, apperrors.Newf(apperrors.ErrConfiguration,
			"Client with ID %d does not exist or does not belong to the specified collection agency.", clientID)
	}

	return &CSVImporter{deps: deps, agency: agency, client: client}, nil
}

// consumerKey identifies a distinct consumer description within one file.
type consumerKey struct {
	name    string
	address string
	ssn     string
}

type accountLink struct {
	reference string
	consumer  consumerKey
}

// importPlan is the de-duplicated content of a file, in first-seen order.
type importPlan struct {
	references []string
	accounts   map[string]csvRow
	consumers  []consumerKey
	links      []accountLink
}

// planImport collapses rows: the first row of each account reference provides its
// balance and status, the first row of each (name, address, ssn) provides a consumer,
// and every row contributes one account/consumer link.
func planImport(rows []csvRow) importPlan {
	plan := importPlan{accounts: make(map[string]csvRow)}
	seenConsumers := make(map[consumerKey]struct{})

	for _, row := range rows {
		if _, ok := plan.accounts[row.ClientReferenceNo]; !ok {
			plan.accounts[row.ClientReferenceNo] = row
			plan.references = append(plan.references, row.ClientReferenceNo)
		}

		key := consumerKey{name: row.ConsumerName, address: row.ConsumerAddress, ssn: row.SSN}
		if _, ok := seenConsumers[key]; !ok {
			seenConsumers[key] = struct{}{}
			plan.consumers = append(plan.consumers, key)
		}

		plan.links = append(plan.links, accountLink{reference: row.ClientReferenceNo, consumer: key})
	}
	return plan
}

// Import validates the whole file and then applies it in a single transaction.
// Validation failures are ErrValidation errors; any other failure rolls the
// transaction back and is reported as an ErrImport error.
func (i *CSVImporter) Import(ctx context.Context, r io.Reader) (*domain.ImportResult, error) {
	rows, err := readAccountsCSV(r)
	if err != nil {
		return nil, err
	}

	result, err := i.apply(ctx, planImport(rows))
	if err != nil {
		return nil, importFailure(err)
	}
	return result, nil
}

func (i *CSVImporter) apply(ctx context.Context, plan importPlan) (*domain.ImportResult, error) {
	tx, err := i.deps.Accounts.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := i.deps.Accounts.Rollback(ctx, tx); rbErr != nil {
				i.LogError(ctx, rbErr, "Failed to roll back import transaction")
			}
		}
	}()

	result := &domain.ImportResult{AccountsProcessed: len(plan.references)}

	accountIDs := make(map[string]int64, len(plan.references))
	for _, ref := range plan.references {
		row := plan.accounts[ref]
		account := domain.Account{
			ClientReferenceNo: ref,
			Balance:           row.Balance,
			Status:            row.Status,
			ClientID:          i.client.ID,
		}
		created, err := i.deps.Accounts.UpsertAccountByReferenceInTx(ctx, tx, &account)
		if err != nil {
			return nil, fmt.Errorf("upsert account %q: %w", ref, err)
		}
		if created {
			result.AccountsCreated++
		} else {
			result.AccountsUpdated++
		}
		accountIDs[ref] = account.ID
	}

	// Consumers are matched on SSN alone; an existing consumer keeps its name and address.
	consumerIDs := make(map[string]int64, len(plan.consumers))
	for _, key := range plan.consumers {
		if _, ok := consumerIDs[key.ssn]; ok {
			continue
		}
		existing, err := i.deps.Consumers.FindConsumerBySSNInTx(ctx, tx, key.ssn)
		switch {
		case err == nil:
			consumerIDs[key.ssn] = existing.ID
		case errors.Is(err, apperrors.ErrNotFound):
			consumer := domain.Consumer{Name: key.name, Address: key.address, SSN: key.ssn}
			if err := i.deps.Consumers.SaveConsumerInTx(ctx, tx, &consumer); err != nil {
				return nil, fmt.Errorf("create consumer: %w", err)
			}
			result.ConsumersCreated++
			consumerIDs[key.ssn] = consumer.ID
		default:
			return nil, fmt.Errorf("find consumer: %w", err)
		}
	}

	for _, link := range plan.links {
		created, err := i.deps.Accounts.LinkConsumerInTx(ctx, tx, accountIDs[link.reference], consumerIDs[link.consumer.ssn])
		if err != nil {
			return nil, fmt.Errorf("link consumer to account %q: %w", link.reference, err)
		}
		if created {
			result.ConsumerAccountsLinked++
		}
	}

	if err := i.deps.Accounts.Commit(ctx, tx); err != nil {
		return nil, err
	}
	committed = true
	return result, nil
}

// importService implements portssvc.ImportSvc
type importService struct {
	BaseService
	deps ImportDeps
	now  func() time.Time
}

// NewImportService creates the CSV import service.
func NewImportService(deps ImportDeps) portssvc.ImportSvc {
	return &importService{deps: deps, now: time.Now}
}

var _ portssvc.ImportSvc = (*importService)(nil)

// ImportAccountsCSV builds an importer for the agency and client and runs it on r.
func (s *importService) ImportAccountsCSV(ctx context.Context, agencyID, clientID int64, r io.Reader) (*domain.ImportResult, error) {
	started := s.now()
	logAttrs := []any{slog.Int64("collection_agency_id", agencyID), slog.Int64("client_id", clientID)}

	importer, err := NewCSVImporter(ctx, s.deps, agencyID, clientID)
	if err != nil {
		s.recordFailure(ctx, err, started, logAttrs)
		return nil, err
	}

	result, err := importer.Import(ctx, r)
	if err != nil {
		s.recordFailure(ctx, err, started, logAttrs)
		return nil, err
	}

	metrics.RecordImport(metrics.ImportStatusSuccess, s.now().Sub(started).Seconds())
	metrics.RecordImportedRecords(result.AccountsCreated, result.AccountsUpdated,
		result.ConsumersCreated, result.ConsumerAccountsLinked)
	s.LogInfo(ctx, "CSV import completed", append(logAttrs,
		slog.Int("accounts_processed", result.AccountsProcessed),
		slog.Int("accounts_created", result.AccountsCreated),
		slog.Int("accounts_updated", result.AccountsUpdated),
		slog.Int("consumers_created", result.ConsumersCreated),
		slog.Int("consumer_accounts_linked", result.ConsumerAccountsLinked))...)

	s.publishImported(ctx, agencyID, clientID, *result)
	return result, nil
}

func (s *importService) recordFailure(ctx context.Context, err error, started time.Time, logAttrs []any) {
	status := metrics.ImportStatusFailed
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = metrics.ImportStatusValidation
	case errors.Is(err, apperrors.ErrConfiguration):
		status = metrics.ImportStatusConfiguration
	}
	metrics.RecordImport(status, s.now().Sub(started).Seconds())

	if status == metrics.ImportStatusFailed {
		s.LogError(ctx, err, "CSV import failed", logAttrs...)
		return
	}
	s.LogInfo(ctx, "CSV import rejected", append(logAttrs, slog.String("reason", err.Error()))...)
}

// publishImported is best effort: the import is already committed.
func (s *importService) publishImported(ctx context.Context, agencyID, clientID int64, result domain.ImportResult) {
	if s.deps.Publisher == nil {
		return
	}
	event := domain.AccountsImportedEvent{
		ImportID:           uuid.NewString(),
		CollectionAgencyID: agencyID,
		ClientID:           clientID,
		Result:             result,
		CompletedAt:        s.now().UTC(),
	}
	if err := s.deps.Publisher.PublishAccountsImported(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish accounts imported event",
			slog.String("import_id", event.ImportID))
	}
}
