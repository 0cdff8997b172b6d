package dto

import (
	"github.com/echelon-room/marketplace/internal/store/schema"
)

// MapUserToDTO maps a user row to its response shape
func MapUserToDTO(user *schema.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Principal: user.Principal,
		Codename:  user.Codename,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func mapUserRef(user schema.User) UserRefResponse {
	return UserRefResponse{
		Principal: user.Principal,
		Codename:  user.Codename,
	}
}

// MapNFTToDTO maps an NFT row with preloaded owner, creator and listings
func MapNFTToDTO(nft *schema.NFT) NFTResponse {
	listings := make([]ListingRefResponse, 0, len(nft.Listings))
	for _, listing := range nft.Listings {
		listings = append(listings, ListingRefResponse{
			ID:            listing.ID,
			PriceLamports: listing.PriceLamports,
			Status:        listing.Status,
			CreatedAt:     listing.CreatedAt,
		})
	}

	return NFTResponse{
		ID:                   nft.ID,
		MintAddress:          nft.MintAddress,
		Name:                 nft.Name,
		Description:          nft.Description,
		ImageURI:             nft.ImageURI,
		MetadataURI:          nft.MetadataURI,
		Collection:           nft.Collection,
		SellerFeeBasisPoints: nft.SellerFeeBasisPoints,
		IsCompressed:         nft.IsCompressed,
		Attributes:           nft.Attributes,
		Owner:                mapUserRef(nft.Owner),
		Creator:              mapUserRef(nft.Creator),
		Listings:             listings,
		CreatedAt:            nft.CreatedAt,
		UpdatedAt:            nft.UpdatedAt,
	}
}

// MapBidToDTO maps a bid row with its preloaded bidder
func MapBidToDTO(bid *schema.Bid) BidResponse {
	return BidResponse{
		ID:             bid.ID,
		ListingID:      bid.ListingID,
		NFTID:          bid.NFTID,
		AmountLamports: bid.AmountLamports,
		Status:         bid.Status,
		Bidder:         mapUserRef(bid.Bidder),
		AcceptedAt:     bid.AcceptedAt,
		CreatedAt:      bid.CreatedAt,
	}
}

// MapListingToDTO maps a listing row with preloaded NFT, seller and bids.
// The first bid is the best one; the store orders them by amount descending.
func MapListingToDTO(listing *schema.Listing) ListingResponse {
	bids := make([]BidResponse, 0, len(listing.Bids))
	for i := range listing.Bids {
		bids = append(bids, MapBidToDTO(&listing.Bids[i]))
	}

	var bestBid *BidResponse
	if len(bids) > 0 {
		bestBid = &bids[0]
	}

	return ListingResponse{
		ID:            listing.ID,
		PriceLamports: listing.PriceLamports,
		Status:        listing.Status,
		ExpiresAt:     listing.ExpiresAt,
		NFT:           MapNFTToDTO(&listing.NFT),
		Seller:        mapUserRef(listing.Seller),
		BestBid:       bestBid,
		Bids:          bids,
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
}

// MapTransactionToDTO maps an audit transaction with optional user refs
func MapTransactionToDTO(txn *schema.Transaction) TransactionResponse {
	var fromUser, toUser *UserRefResponse
	if txn.FromUser != nil {
		ref := mapUserRef(*txn.FromUser)
		fromUser = &ref
	}
	if txn.ToUser != nil {
		ref := mapUserRef(*txn.ToUser)
		toUser = &ref
	}

	return TransactionResponse{
		ID:            txn.ID,
		TxSig:         txn.TxSig,
		EventType:     txn.EventType,
		NFTID:         txn.NFTID,
		PriceLamports: txn.PriceLamports,
		FromUser:      fromUser,
		ToUser:        toUser,
		BlockTime:     txn.BlockTime,
		Message:       txn.Message,
		CreatedAt:     txn.CreatedAt,
	}
}

// MapFeedEventToDTO maps a feed row to its response shape
func MapFeedEventToDTO(event *schema.FeedEvent) FeedEventResponse {
	return FeedEventResponse{
		ID:        event.ID,
		EventCode: event.EventCode,
		Message:   event.Message,
		TxSig:     event.TxSig,
		CreatedAt: event.CreatedAt,
	}
}

// MapToolboxRowToDTO maps a toolbox row to its response shape
func MapToolboxRowToDTO(row *schema.ToolboxRow) ToolboxRowResponse {
	return ToolboxRowResponse{
		ID:        row.ID,
		Label:     row.Label,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
