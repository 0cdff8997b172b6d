package schema

import "time"

// ListingStatus represents the lifecycle state of a listing
type ListingStatus string

const (
	// ListingStatusActive indicates the listing is open for bids and purchase
	ListingStatusActive ListingStatus = "ACTIVE"
	// ListingStatusSold indicates the listing reached its terminal state
	ListingStatusSold ListingStatus = "SOLD"
	// ListingStatusCancelled is reserved; seller withdrawal is not implemented
	ListingStatusCancelled ListingStatus = "CANCELLED"
)

// Listing represents the listings table. At most one ACTIVE listing exists
// per NFT at any time; the transition to SOLD happens exactly once.
type Listing struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// NFTID references the listed asset
	NFTID int64 `gorm:"column:nft_id;not null;index:idx_listings_nft_status,priority:1"`
	// SellerID references the user who created the listing
	SellerID int64 `gorm:"column:seller_id;not null"`
	// PriceLamports is the asking price in the smallest currency unit
	// (string to support up to 78 digits)
	PriceLamports string `gorm:"column:price_lamports;not null;type:numeric(78,0)"`
	// Status is the lifecycle state (ACTIVE, SOLD)
	Status ListingStatus `gorm:"column:status;not null;type:text;index:idx_listings_nft_status,priority:2"`
	// ExpiresAt is an optional expiry; unused by current flows
	ExpiresAt *time.Time `gorm:"column:expires_at;type:timestamptz"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	NFT    NFT   `gorm:"foreignKey:NFTID"`
	Seller User  `gorm:"foreignKey:SellerID"`
	Bids   []Bid `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
