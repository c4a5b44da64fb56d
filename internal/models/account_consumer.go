package models

import "time"

// AccountConsumer is a row of account_consumers.
type AccountConsumer struct {
	ID         int64     `db:"id"`
	AccountID  int64     `db:"account_id"`
	ConsumerID int64     `db:"consumer_id"`
	CreatedAt  time.Time `db:"created_at"`
}
