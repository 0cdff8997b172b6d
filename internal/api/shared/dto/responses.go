package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/echelon-room/marketplace/internal/store/schema"
)

// DataResponse wraps every successful body the way display clients expect
type DataResponse struct {
	Data interface{} `json:"data"`
}

// NewDataResponse wraps a payload in the response envelope
func NewDataResponse(payload interface{}) DataResponse {
	return DataResponse{Data: payload}
}

// UserResponse represents a user profile
type UserResponse struct {
	ID        int64     `json:"id"`
	Principal string    `json:"principal"`
	Codename  *string   `json:"codename"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRefResponse is the compact user shape nested in other payloads
type UserRefResponse struct {
	Principal string  `json:"principal"`
	Codename  *string `json:"codename"`
}

// AuthResponse represents a successful login
type AuthResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	ExpiresIn int64        `json:"expires_in"`
}

// NonceResponse represents an issued wallet challenge
type NonceResponse struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// ListingRefResponse is the compact listing shape nested in NFT payloads
type ListingRefResponse struct {
	ID            int64                `json:"id"`
	PriceLamports string               `json:"price_lamports"`
	Status        schema.ListingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NFTResponse represents an NFT with its owner, creator and listing history
type NFTResponse struct {
	ID                   int64                `json:"id"`
	MintAddress          *string              `json:"mint_address"`
	Name                 string               `json:"name"`
	Description          *string              `json:"description"`
	ImageURI             *string              `json:"image_uri"`
	MetadataURI          *string              `json:"metadata_uri"`
	Collection           *string              `json:"collection"`
	SellerFeeBasisPoints int                  `json:"seller_fee_basis_points"`
	IsCompressed         bool                 `json:"is_compressed"`
	Attributes           datatypes.JSON       `json:"attributes,omitempty"`
	Owner                UserRefResponse      `json:"owner"`
	Creator              UserRefResponse      `json:"creator"`
	Listings             []ListingRefResponse `json:"listings"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// BidResponse represents a bid with its bidder
type BidResponse struct {
	ID             int64            `json:"id"`
	ListingID      int64            `json:"listing_id"`
	NFTID          int64            `json:"nft_id"`
	AmountLamports string           `json:"amount_lamports"`
	Status         schema.BidStatus `json:"status"`
	Bidder         UserRefResponse  `json:"bidder"`
	AcceptedAt     *time.Time       `json:"accepted_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ListingResponse represents an active listing with its asset and bids
type ListingResponse struct {
	ID            int64                `json:"id"`
	PriceLamports string               `json:"price_lamports"`
	Status        schema.ListingStatus `json:"status"`
	ExpiresAt     *time.Time           `json:"expires_at"`
	NFT           NFTResponse          `json:"nft"`
	Seller        UserRefResponse      `json:"seller"`
	BestBid       *BidResponse         `json:"best_bid"`
	Bids          []BidResponse        `json:"bids"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// TransactionResponse represents an audit transaction
type TransactionResponse struct {
	ID            int64                       `json:"id"`
	TxSig         string                      `json:"tx_sig"`
	EventType     schema.TransactionEventType `json:"event_type"`
	NFTID         *int64                      `json:"nft_id"`
	PriceLamports *string                     `json:"price_lamports"`
	FromUser      *UserRefResponse            `json:"from_user"`
	ToUser        *UserRefResponse            `json:"to_user"`
	BlockTime     time.Time                   `json:"block_time"`
	Message       *string                     `json:"message"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// FeedEventResponse represents one row of the activity feed
type FeedEventResponse struct {
	ID        int64     `json:"id"`
	EventCode string    `json:"event_code"`
	Message   string    `json:"message"`
	TxSig     *string   `json:"tx_sig,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToolboxRowResponse represents one toolbox row
type ToolboxRowResponse struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
