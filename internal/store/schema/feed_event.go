package schema

import "time"

// FeedEvent represents the feed_events table - a short-lived, display-oriented
// log of recent marketplace activity. Retention is capped (oldest rows are
// pruned past the cap), unlike the permanent transactions audit log.
type FeedEvent struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventCode identifies the activity kind (MINT, LIST, BID, SALE, BID_ACCEPTED)
	EventCode string `gorm:"column:event_code;not null;type:text"`
	// Message is the display text
	Message string `gorm:"column:message;not null;type:text"`
	// TxSig links back to the audit transaction, when one exists
	TxSig *string `gorm:"column:tx_sig;type:text"`
	// CreatedAt orders the feed and drives pruning
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index"`
}

// TableName specifies the table name for the FeedEvent model
func (FeedEvent) TableName() string {
	return "feed_events"
}
