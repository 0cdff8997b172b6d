package schema

import "time"

// BidStatus represents the lifecycle state of a bid
type BidStatus string

const (
	// BidStatusActive indicates the bid is outstanding
	BidStatusActive BidStatus = "ACTIVE"
	// BidStatusAccepted indicates the seller accepted this bid (terminal)
	BidStatusAccepted BidStatus = "ACCEPTED"
	// BidStatusCancelled indicates the bid lost or the listing closed (terminal)
	BidStatusCancelled BidStatus = "CANCELLED"
)

// Bid represents the bids table
type Bid struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ListingID references the listing this bid targets
	ListingID int64 `gorm:"column:listing_id;not null;index:idx_bids_listing_status,priority:1"`
	// NFTID references the underlying asset, denormalized for per-asset queries
	NFTID int64 `gorm:"column:nft_id;not null;index"`
	// BidderID references the bidding user
	BidderID int64 `gorm:"column:bidder_id;not null"`
	// AmountLamports is the offered amount in the smallest currency unit
	AmountLamports string `gorm:"column:amount_lamports;not null;type:numeric(78,0)"`
	// Status is the lifecycle state (ACTIVE, ACCEPTED, CANCELLED)
	Status BidStatus `gorm:"column:status;not null;type:text;index:idx_bids_listing_status,priority:2"`
	// AcceptedAt records when the seller accepted this bid
	AcceptedAt *time.Time `gorm:"column:accepted_at;type:timestamptz"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Listing Listing `gorm:"foreignKey:ListingID"`
	Bidder  User    `gorm:"foreignKey:BidderID"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "bids"
}
