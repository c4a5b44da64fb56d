package domain

// Consumer is a person who owes on one or more accounts.
// SSN (XXX-XX-XXXX) is not unique in storage but the CSV importer treats it as a natural key.
type Consumer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	SSN     string `json:"ssn"`
	Timestamps
}
