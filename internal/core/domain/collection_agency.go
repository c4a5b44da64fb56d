package domain

// CollectionAgency collects debts on behalf of its clients. It owns many Clients.
type CollectionAgency struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"` // free text, may be empty
	Timestamps
}
