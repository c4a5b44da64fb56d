package domain

// Client is the business that placed its debt with a collection agency.
// Each client belongs to exactly one collection agency.
type Client struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	CollectionAgencyID int64  `json:"collection_agency_id"`
	// CollectionAgency is populated by reads that join the owning agency.
	CollectionAgency *CollectionAgency `json:"collection_agency,omitempty"`
	Timestamps
}
