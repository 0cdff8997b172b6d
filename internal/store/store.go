package store

import (
	"context"

	"gorm.io/datatypes"

	"github.com/echelon-room/marketplace/internal/store/schema"
)

// Store defines the interface for database operations
type Store interface {
	// GetUserByID retrieves a user by internal ID, nil when missing
	GetUserByID(ctx context.Context, userID int64) (*schema.User, error)
	// UpsertUser creates or updates the user for a principal. First access
	// creates the row with a defaulted codename.
	UpsertUser(ctx context.Context, input UpsertUserInput) (*schema.User, error)

	// MintNFT creates an NFT with owner = creator, recording a MINT
	// transaction and a feed event in the same database transaction
	MintNFT(ctx context.Context, input MintNFTInput) (*MintNFTResult, error)
	// GetNFTByID retrieves an NFT with owner, creator and listings, nil when missing
	GetNFTByID(ctx context.Context, nftID int64) (*schema.NFT, error)
	// GetNFTsByOwner retrieves the NFTs currently held by a user, newest first
	GetNFTsByOwner(ctx context.Context, userID int64) ([]schema.NFT, error)
	// GetNFTBids retrieves all bids ever placed against an NFT, newest first
	GetNFTBids(ctx context.Context, nftID int64) ([]schema.Bid, error)
	// GetNFTTransactions retrieves the audit transactions for an NFT, newest first
	GetNFTTransactions(ctx context.Context, nftID int64) ([]schema.Transaction, error)

	// GetActiveListings retrieves ACTIVE listings with nested NFT, seller and
	// ACTIVE bids sorted by amount descending
	GetActiveListings(ctx context.Context) ([]schema.Listing, error)
	// CreateListing creates an ACTIVE listing for an NFT the seller owns.
	// Fails with domain.ErrNFTNotFound, domain.ErrNotOwner or
	// domain.ErrActiveListingExists.
	CreateListing(ctx context.Context, input CreateListingInput) (*CreateListingResult, error)
	// PurchaseListing sells an ACTIVE listing to the buyer: listing -> SOLD,
	// ownership -> buyer, remaining ACTIVE bids -> CANCELLED. Fails with
	// domain.ErrListingNotFound, domain.ErrListingNotActive or
	// domain.ErrSellerPurchase.
	PurchaseListing(ctx context.Context, listingID, buyerID int64) (*SaleResult, error)
	// PlaceBid inserts an ACTIVE bid on an ACTIVE listing. Fails with
	// domain.ErrListingNotFound, domain.ErrListingNotActive or domain.ErrOwnerBid.
	PlaceBid(ctx context.Context, input PlaceBidInput) (*PlaceBidResult, error)
	// AcceptBid accepts one bid: bid -> ACCEPTED, listing -> SOLD, ownership
	// -> bidder, other ACTIVE bids -> CANCELLED. Fails with
	// domain.ErrBidNotFound, domain.ErrNotSeller or domain.ErrListingNotActive.
	AcceptBid(ctx context.Context, input AcceptBidInput) (*SaleResult, error)

	// GetFeedEvents retrieves the most recent feed events, newest first
	GetFeedEvents(ctx context.Context, limit int) ([]schema.FeedEvent, error)
	// PruneFeedEvents deletes the oldest rows past the retention cap and
	// returns how many were removed
	PruneFeedEvents(ctx context.Context, keep int) (int64, error)

	// GetToolboxRows retrieves a user's toolbox rows, oldest first
	GetToolboxRows(ctx context.Context, userID int64) ([]schema.ToolboxRow, error)
	// SaveToolboxRows replaces a user's toolbox set: rows with matching IDs are
	// updated, rows without IDs created, rows omitted deleted
	SaveToolboxRows(ctx context.Context, userID int64, rows []ToolboxRowInput) ([]schema.ToolboxRow, error)
}

// UpsertUserInput holds the fields for creating or updating a user
type UpsertUserInput struct {
	Principal string
	Codename  *string
	AvatarURL *string
}

// MintNFTInput holds the fields for minting an NFT
type MintNFTInput struct {
	UserID      int64
	Name        string
	Description *string
	ImageURI    *string
	Collection  *string
	Attributes  datatypes.JSON
}

// MintNFTResult carries the minted NFT and the feed event written alongside it
type MintNFTResult struct {
	NFT  *schema.NFT
	Feed *schema.FeedEvent
}

// CreateListingInput holds the fields for creating a listing
type CreateListingInput struct {
	NFTID         int64
	SellerID      int64
	PriceLamports string
}

// CreateListingResult carries the created listing and its feed event
type CreateListingResult struct {
	Listing *schema.Listing
	Feed    *schema.FeedEvent
}

// PlaceBidInput holds the fields for placing a bid
type PlaceBidInput struct {
	ListingID      int64
	BidderID       int64
	AmountLamports string
}

// PlaceBidResult carries the created bid, its bidder and the feed event
type PlaceBidResult struct {
	Bid    *schema.Bid
	Bidder *schema.User
	Feed   *schema.FeedEvent
}

// AcceptBidInput holds the fields for accepting a bid
type AcceptBidInput struct {
	ListingID int64
	BidID     int64
	SellerID  int64
}

// SaleResult carries the outcome of a terminal listing transition
type SaleResult struct {
	Listing     *schema.Listing
	NFT         *schema.NFT
	Transaction *schema.Transaction
	Feed        *schema.FeedEvent
}

// ToolboxRowInput holds one row in a toolbox save request
type ToolboxRowInput struct {
	ID      *int64
	Label   string
	Content string
}
