package models

// CollectionAgency is a row of collection_agencies.
type CollectionAgency struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	ContactInfo string `db:"contact_info"`
	Timestamps
}
