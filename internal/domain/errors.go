package domain

import "errors"

var (
	// ErrNFTNotFound is returned when the referenced NFT does not exist
	ErrNFTNotFound = errors.New("nft not found")

	// ErrNotOwner is returned when a caller tries to list an NFT they do not own
	ErrNotOwner = errors.New("only the owner can list this nft")

	// ErrActiveListingExists is returned when the NFT already has an active listing
	ErrActiveListingExists = errors.New("nft already has an active listing")

	// ErrListingNotFound is returned when the referenced listing does not exist
	ErrListingNotFound = errors.New("listing not found")

	// ErrListingNotActive is returned when the listing has already reached a terminal state
	ErrListingNotActive = errors.New("listing is not active")

	// ErrOwnerBid is returned when the NFT's current owner bids on their own listing
	ErrOwnerBid = errors.New("owner cannot bid on their own listing")

	// ErrSellerPurchase is returned when the seller tries to purchase their own listing
	ErrSellerPurchase = errors.New("seller cannot purchase their own listing")

	// ErrBidNotFound is returned when the bid does not exist or belongs to another listing
	ErrBidNotFound = errors.New("bid not found for this listing")

	// ErrNotSeller is returned when someone other than the seller tries to accept a bid
	ErrNotSeller = errors.New("only the seller can accept bids")

	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")
)
