package schema

import "time"

// TransactionEventType identifies the state-changing event a transaction records
type TransactionEventType string

const (
	// TransactionEventMint records an NFT mint
	TransactionEventMint TransactionEventType = "MINT"
	// TransactionEventList records a listing creation
	TransactionEventList TransactionEventType = "LIST"
	// TransactionEventSale records a direct purchase
	TransactionEventSale TransactionEventType = "SALE"
	// TransactionEventBidAccepted records a bid acceptance
	TransactionEventBidAccepted TransactionEventType = "BID_ACCEPTED"
)

// Transaction represents the transactions table - an immutable audit record of
// marketplace events. Rows are append-only.
type Transaction struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxSig is a signature-like identifier; locally generated when no external
	// chain signature exists
	TxSig string `gorm:"column:tx_sig;not null;uniqueIndex;type:text"`
	// EventType identifies the kind of event (MINT, LIST, SALE, BID_ACCEPTED)
	EventType TransactionEventType `gorm:"column:event_type;not null;type:text"`
	// NFTID references the asset involved, when any
	NFTID *int64 `gorm:"column:nft_id;index"`
	// PriceLamports is the amount involved, when any
	PriceLamports *string `gorm:"column:price_lamports;type:numeric(78,0)"`
	// FromUserID references the user the asset or offer moved from
	FromUserID *int64 `gorm:"column:from_user_id"`
	// ToUserID references the user the asset or offer moved to
	ToUserID *int64 `gorm:"column:to_user_id"`
	// BlockTime is when the event settled
	BlockTime time.Time `gorm:"column:block_time;not null;type:timestamptz"`
	// Message is a human-readable summary of the event
	Message *string `gorm:"column:message;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	FromUser *User `gorm:"foreignKey:FromUserID"`
	ToUser   *User `gorm:"foreignKey:ToUserID"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
