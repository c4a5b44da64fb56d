package models

// Client is a row of clients.
type Client struct {
	ID                 int64  `db:"id"`
	Name               string `db:"name"`
	CollectionAgencyID int64  `db:"collection_agency_id"`
	Timestamps
}
