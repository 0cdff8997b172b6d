package schema

import (
	"time"

	"gorm.io/datatypes"
)

// NFT represents the nfts table - the asset registry
type NFT struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// MintAddress is the on-chain mint address (nil for locally minted assets)
	MintAddress *string `gorm:"column:mint_address;type:text;uniqueIndex"`
	// Name is the display name of the asset
	Name string `gorm:"column:name;not null;type:text"`
	// Description is an optional free-form description
	Description *string `gorm:"column:description;type:text"`
	// ImageURI points at the asset image (https URL or data URI)
	ImageURI *string `gorm:"column:image_uri;type:text"`
	// MetadataURI points at external metadata, when any exists
	MetadataURI *string `gorm:"column:metadata_uri;type:text"`
	// Collection is an optional collection label
	Collection *string `gorm:"column:collection;type:text"`
	// SellerFeeBasisPoints is the royalty configuration carried from the mint
	SellerFeeBasisPoints int `gorm:"column:seller_fee_basis_points;not null;default:0"`
	// IsCompressed marks compressed-NFT mints
	IsCompressed bool `gorm:"column:is_compressed;not null;default:false"`
	// Attributes holds arbitrary descriptive metadata as JSON
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb"`
	// OwnerID references the current holder; mutated only by a successful
	// purchase or accepted bid
	OwnerID int64 `gorm:"column:owner_id;not null;index"`
	// CreatorID references the original minter and never changes
	CreatorID int64 `gorm:"column:creator_id;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Owner    User      `gorm:"foreignKey:OwnerID"`
	Creator  User      `gorm:"foreignKey:CreatorID"`
	Listings []Listing `gorm:"foreignKey:NFTID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the NFT model
func (NFT) TableName() string {
	return "nfts"
}
