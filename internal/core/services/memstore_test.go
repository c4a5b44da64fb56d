package services_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/SscSPs/collections_app/internal/apperrors"
	"github.com/SscSPs/collections_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// memTx stands in for a pgx transaction; memStore never calls its methods.
type memTx struct {
	pgx.Tx
}

type linkKey struct {
	accountID  int64
	consumerID int64
}

type memState struct {
	agencies  map[int64]domain.CollectionAgency
	clients   map[int64]domain.Client
	consumers map[int64]domain.Consumer
	accounts  map[int64]domain.Account
	links     map[linkKey]struct{}
	nextID    int64
}

func (s memState) clone() memState {
	c := memState{
		agencies:  make(map[int64]domain.CollectionAgency, len(s.agencies)),
		clients:   make(map[int64]domain.Client, len(s.clients)),
		consumers: make(map[int64]domain.Consumer, len(s.consumers)),
		accounts:  make(map[int64]domain.Account, len(s.accounts)),
		links:     make(map[linkKey]struct{}, len(s.links)),
		nextID:    s.nextID,
	}
	for k, v := range s.agencies {
		c.agencies[k] = v
	}
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.consumers {
		c.consumers[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	return c
}

// memStore is an in-memory implementation of the storage used by CSV imports.
// Begin snapshots the state and Rollback restores it.
type memStore struct {
	memState
	snapshot *memState

	beginCalls int
	commits    int
	rollbacks  int

	// failures injected by tests
	findAgencyErr error
	linkErrAfter  int // fail the n-th LinkConsumerInTx call when > 0
	linkCalls     int
}

func newMemStore() *memStore {
	return &memStore{memState: memState{
		agencies:  map[int64]domain.CollectionAgency{},
		clients:   map[int64]domain.Client{},
		consumers: map[int64]domain.Consumer{},
		accounts:  map[int64]domain.Account{},
		links:     map[linkKey]struct{}{},
	}}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addAgency(name string) domain.CollectionAgency {
	a := domain.CollectionAgency{ID: m.id(), Name: name}
	m.agencies[a.ID] = a
	return a
}

func (m *memStore) addClient(name string, agencyID int64) domain.Client {
	c := domain.Client{ID: m.id(), Name: name, CollectionAgencyID: agencyID}
	m.clients[c.ID] = c
	return c
}

func (m *memStore) addConsumer(name, address, ssn string) domain.Consumer {
	c := domain.Consumer{ID: m.id(), Name: name, Address: address, SSN: ssn}
	m.consumers[c.ID] = c
	return c
}

func (m *memStore) addAccount(ref, balance string, status domain.AccountStatus, clientID int64) domain.Account {
	a := domain.Account{ID: m.id(), ClientReferenceNo: ref, Balance: mustDecimal(balance), Status: status, ClientID: clientID}
	m.accounts[a.ID] = a
	return a
}

func (m *memStore) accountByRef(ref string) (domain.Account, bool) {
	for _, a := range m.accounts {
		if a.ClientReferenceNo == ref {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (m *memStore) consumersBySSN(ssn string) []domain.Consumer {
	var res []domain.Consumer
	for _, c := range m.consumers {
		if c.SSN == ssn {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func (m *memStore) linkedSSNs(accountID int64) []string {
	var res []string
	for k := range m.links {
		if k.accountID == accountID {
			res = append(res, m.consumers[k.consumerID].SSN)
		}
	}
	sort.Strings(res)
	return res
}

// --- CollectionAgencyReader ---

func (m *memStore) FindCollectionAgencyByID(_ context.Context, agencyID int64) (*domain.CollectionAgency, error) {
	if m.findAgencyErr != nil {
		return nil, m.findAgencyErr
	}
	a, ok := m.agencies[agencyID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) ListCollectionAgencies(context.Context, int, *string) ([]domain.CollectionAgency, *string, error) {
	return nil, nil, errors.New("not implemented")
}

// --- ClientReader ---

func (m *memStore) FindClientByID(_ context.Context, clientID int64) (*domain.Client, error) {
	c, ok := m.clients[clientID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) ListClients(context.Context, int, *string) ([]domain.Client, *string, error) {
	return nil, nil, errors.New("not implemented")
}

// --- ConsumerImportSupport ---

func (m *memStore) FindConsumerBySSNInTx(_ context.Context, _ pgx.Tx, ssn string) (*domain.Consumer, error) {
	found := m.consumersBySSN(ssn)
	if len(found) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &found[0], nil
}

func (m *memStore) SaveConsumerInTx(_ context.Context, _ pgx.Tx, consumer *domain.Consumer) error {
	consumer.ID = m.id()
	consumer.CreatedAt = time.Now()
	consumer.UpdatedAt = consumer.CreatedAt
	m.consumers[consumer.ID] = *consumer
	return nil
}

// --- AccountImportSupport ---

func (m *memStore) UpsertAccountByReferenceInTx(_ context.Context, _ pgx.Tx, account *domain.Account) (bool, error) {
	if existing, ok := m.accountByRef(account.ClientReferenceNo); ok {
		existing.Balance = account.Balance
		existing.Status = account.Status
		existing.ClientID = account.ClientID
		m.accounts[existing.ID] = existing
		*account = existing
		return false, nil
	}
	account.ID = m.id()
	m.accounts[account.ID] = *account
	return true, nil
}

func (m *memStore) LinkConsumerInTx(_ context.Context, _ pgx.Tx, accountID, consumerID int64) (bool, error) {
	m.linkCalls++
	if m.linkErrAfter > 0 && m.linkCalls >= m.linkErrAfter {
		return false, errors.New("connection reset by peer")
	}
	key := linkKey{accountID: accountID, consumerID: consumerID}
	if _, ok := m.links[key]; ok {
		return false, nil
	}
	m.links[key] = struct{}{}
	return true, nil
}

// --- TransactionManager ---

func (m *memStore) Begin(context.Context) (pgx.Tx, error) {
	m.beginCalls++
	snap := m.memState.clone()
	m.snapshot = &snap
	return memTx{}, nil
}

func (m *memStore) Commit(context.Context, pgx.Tx) error {
	m.commits++
	m.snapshot = nil
	return nil
}

func (m *memStore) Rollback(context.Context, pgx.Tx) error {
	m.rollbacks++
	if m.snapshot != nil {
		m.memState = *m.snapshot
		m.snapshot = nil
	}
	return nil
}
