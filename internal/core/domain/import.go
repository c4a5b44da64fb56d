package domain

import "time"

// ImportResult holds the aggregate counts of a CSV reconciliation import.
type ImportResult struct {
	AccountsProcessed      int `json:"accounts_processed"`
	AccountsCreated        int `json:"accounts_created"`
	AccountsUpdated        int `json:"accounts_updated"`
	ConsumersCreated       int `json:"consumers_created"`
	ConsumerAccountsLinked int `json:"consumer_accounts_linked"`
}

// AccountsImportedEvent is published after an import commits.
type AccountsImportedEvent struct {
	ImportID           string       `json:"import_id"`
	CollectionAgencyID int64        `json:"collection_agency_id"`
	ClientID           int64        `json:"client_id"`
	Result             ImportResult `json:"result"`
	CompletedAt        time.Time    `json:"completed_at"`
}
