package domain

import "time"

// AccountConsumer links a consumer to an account. Each (account, consumer) pair exists at most once.
type AccountConsumer struct {
	ID         int64     `json:"id"`
	AccountID  int64     `json:"account_id"`
	ConsumerID int64     `json:"consumer_id"`
	CreatedAt  time.Time `json:"created_at"`
}
