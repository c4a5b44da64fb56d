package models

// Consumer is a row of consumers.
// Note: SSN is stored as plain text.
type Consumer struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
	SSN     string `db:"ssn"`
	Timestamps
}
