package domain

import "time"

// Timestamps holds the creation and last-modification times shared by all entities.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
