package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/echelon-room/marketplace/internal/domain"
	"github.com/echelon-room/marketplace/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func createTestUser(t *testing.T, s Store, principal string) *schema.User {
	user, err := s.UpsertUser(context.Background(), UpsertUserInput{Principal: principal})
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func mintTestNFT(t *testing.T, s Store, userID int64, name string) *schema.NFT {
	description := "test asset"
	result, err := s.MintNFT(context.Background(), MintNFTInput{
		UserID:      userID,
		Name:        name,
		Description: &description,
		Attributes:  datatypes.JSON([]byte(`[{"trait_type":"tier","value":"gold"}]`)),
	})
	require.NoError(t, err)
	require.NotNil(t, result.NFT)
	return result.NFT
}

func listTestNFT(t *testing.T, s Store, nftID, sellerID int64, price string) *schema.Listing {
	result, err := s.CreateListing(context.Background(), CreateListingInput{
		NFTID:         nftID,
		SellerID:      sellerID,
		PriceLamports: price,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Listing)
	return result.Listing
}

func stringPtr(s string) *string {
	return &s
}

// =============================================================================
// Users
// =============================================================================

func testCreateUserDefaults(t *testing.T, s Store) {
	ctx := context.Background()

	user, err := s.UpsertUser(ctx, UpsertUserInput{Principal: "agent-alpha-01"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "agent-alpha-01", user.Principal)
	require.NotNil(t, user.Codename)
	assert.Equal(t, "AGENT-A-01", *user.Codename)

	// Second call resolves the same row
	again, err := s.UpsertUser(ctx, UpsertUserInput{Principal: "agent-alpha-01"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	// Short principals use the whole principal as the codename tail
	short, err := s.UpsertUser(ctx, UpsertUserInput{Principal: "ab1"})
	require.NoError(t, err)
	require.NotNil(t, short.Codename)
	assert.Equal(t, "AGENT-AB1", *short.Codename)

	fetched, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, user.Principal, fetched.Principal)

	missing, err := s.GetUserByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testUpsertUser(t *testing.T, s Store) {
	ctx := context.Background()

	created := createTestUser(t, s, "agent-bravo")

	updated, err := s.UpsertUser(ctx, UpsertUserInput{
		Principal: "agent-bravo",
		Codename:  stringPtr("NIGHTOWL"),
		AvatarURL: stringPtr("https://cdn.example/avatar.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	fetched, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Codename)
	assert.Equal(t, "NIGHTOWL", *fetched.Codename)
	require.NotNil(t, fetched.AvatarURL)
	assert.Equal(t, "https://cdn.example/avatar.png", *fetched.AvatarURL)
	assert.Equal(t, "NIGHTOWL", fetched.DisplayName())

	// Partial update leaves the other field untouched
	_, err = s.UpsertUser(ctx, UpsertUserInput{
		Principal: "agent-bravo",
		Codename:  stringPtr("DAYOWL"),
	})
	require.NoError(t, err)
	fetched, err = s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "DAYOWL", *fetched.Codename)
	require.NotNil(t, fetched.AvatarURL)

	// Upsert for an unknown principal creates the user
	fresh, err := s.UpsertUser(ctx, UpsertUserInput{Principal: "agent-charlie"})
	require.NoError(t, err)
	assert.NotZero(t, fresh.ID)
	require.NotNil(t, fresh.Codename)
	assert.Equal(t, "AGENT-RLIE", *fresh.Codename)
}

// =============================================================================
// Minting
// =============================================================================

func testMintNFT(t *testing.T, s Store) {
	ctx := context.Background()
	minter := createTestUser(t, s, "agent-minter")

	result, err := s.MintNFT(ctx, MintNFTInput{
		UserID:     minter.ID,
		Name:       "Obsidian Mask",
		ImageURI:   stringPtr("https://cdn.example/mask.png"),
		Collection: stringPtr("Artifacts"),
		Attributes: datatypes.JSON([]byte(`[{"trait_type":"origin","value":"vault"}]`)),
	})
	require.NoError(t, err)

	nft := result.NFT
	assert.NotZero(t, nft.ID)
	assert.Equal(t, minter.ID, nft.OwnerID)
	assert.Equal(t, minter.ID, nft.CreatorID)
	assert.Equal(t, "Obsidian Mask", nft.Name)

	// The mint is recorded in the audit log
	txns, err := s.GetNFTTransactions(ctx, nft.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, schema.TransactionEventMint, txns[0].EventType)
	assert.True(t, strings.HasPrefix(txns[0].TxSig, "local-"))
	require.NotNil(t, txns[0].Message)
	assert.Equal(t, "NFT minted: Obsidian Mask", *txns[0].Message)
	require.NotNil(t, txns[0].ToUserID)
	assert.Equal(t, minter.ID, *txns[0].ToUserID)
	assert.Nil(t, txns[0].PriceLamports)

	// And announced on the feed
	require.NotNil(t, result.Feed)
	assert.Equal(t, string(domain.FeedEventMint), result.Feed.EventCode)
	assert.Equal(t, fmt.Sprintf("%s minted Obsidian Mask", minter.DisplayName()), result.Feed.Message)

	// Unknown minter
	_, err = s.MintNFT(ctx, MintNFTInput{UserID: 999999, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// =============================================================================
// Listings
// =============================================================================

func testCreateListing(t *testing.T, s Store) {
	ctx := context.Background()
	seller := createTestUser(t, s, "agent-seller")
	other := createTestUser(t, s, "agent-other")
	nft := mintTestNFT(t, s, seller.ID, "Cobalt Relay")

	// Missing asset
	_, err := s.CreateListing(ctx, CreateListingInput{NFTID: 999999, SellerID: seller.ID, PriceLamports: "1000000000"})
	assert.ErrorIs(t, err, domain.ErrNFTNotFound)

	// Only the owner may list
	_, err = s.CreateListing(ctx, CreateListingInput{NFTID: nft.ID, SellerID: other.ID, PriceLamports: "1000000000"})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	result, err := s.CreateListing(ctx, CreateListingInput{
		NFTID:         nft.ID,
		SellerID:      seller.ID,
		PriceLamports: "1000000000",
	})
	require.NoError(t, err)
	listing := result.Listing
	assert.NotZero(t, listing.ID)
	assert.Equal(t, schema.ListingStatusActive, listing.Status)
	assert.Equal(t, "1000000000", listing.PriceLamports)
	assert.Equal(t, "Cobalt Relay", listing.NFT.Name)

	require.NotNil(t, result.Feed)
	assert.Equal(t, string(domain.FeedEventList), result.Feed.EventCode)
	assert.Equal(t, fmt.Sprintf("Asset Cobalt Relay listed by %s", seller.DisplayName()), result.Feed.Message)

	// One ACTIVE listing per asset
	_, err = s.CreateListing(ctx, CreateListingInput{NFTID: nft.ID, SellerID: seller.ID, PriceLamports: "2000000000"})
	assert.ErrorIs(t, err, domain.ErrActiveListingExists)

	// LIST audit row carries the asking price
	txns, err := s.GetNFTTransactions(ctx, nft.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, schema.TransactionEventList, txns[0].EventType)
	require.NotNil(t, txns[0].PriceLamports)
	assert.Equal(t, "1000000000", *txns[0].PriceLamports)
}

func testGetActiveListings(t *testing.T, s Store) {
	ctx := context.Background()
	seller := createTestUser(t, s, "agent-gallery")
	bidderA := createTestUser(t, s, "agent-bid-a")
	bidderB := createTestUser(t, s, "agent-bid-b")

	nftOne := mintTestNFT(t, s, seller.ID, "Item One")
	nftTwo := mintTestNFT(t, s, seller.ID, "Item Two")
	listingOne := listTestNFT(t, s, nftOne.ID, seller.ID, "1000000000")
	listTestNFT(t, s, nftTwo.ID, seller.ID, "3000000000")

	_, err := s.PlaceBid(ctx, PlaceBidInput{ListingID: listingOne.ID, BidderID: bidderA.ID, AmountLamports: "500000000"})
	require.NoError(t, err)
	_, err = s.PlaceBid(ctx, PlaceBidInput{ListingID: listingOne.ID, BidderID: bidderB.ID, AmountLamports: "900000000"})
	require.NoError(t, err)

	listings, err := s.GetActiveListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	for _, listing := range listings {
		assert.Equal(t, schema.ListingStatusActive, listing.Status)
		assert.NotZero(t, listing.NFT.ID)
		assert.NotZero(t, listing.Seller.ID)
		if listing.ID == listingOne.ID {
			// Bids come back highest first with bidders attached
			require.Len(t, listing.Bids, 2)
			assert.Equal(t, "900000000", listing.Bids[0].AmountLamports)
			assert.Equal(t, bidderB.ID, listing.Bids[0].Bidder.ID)
			assert.Equal(t, "500000000", listing.Bids[1].AmountLamports)
		}
	}

	// Sold listings drop out
	_, err = s.PurchaseListing(ctx, listingOne.ID, bidderA.ID)
	require.NoError(t, err)
	listings, err = s.GetActiveListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.NotEqual(t, listingOne.ID, listings[0].ID)
}

// =============================================================================
// Bidding
// =============================================================================

func testPlaceBid(t *testing.T, s Store) {
	ctx := context.Background()
	seller := createTestUser(t, s, "agent-seller")
	bidder := createTestUser(t, s, "agent-bidder")
	nft := mintTestNFT(t, s, seller.ID, "Silent Beacon")
	listing := listTestNFT(t, s, nft.ID, seller.ID, "1000000000")

	// Missing listing
	_, err := s.PlaceBid(ctx, PlaceBidInput{ListingID: 999999, BidderID: bidder.ID, AmountLamports: "500000000"})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	// The owner may not bid on their own asset
	_, err = s.PlaceBid(ctx, PlaceBidInput{ListingID: listing.ID, BidderID: seller.ID, AmountLamports: "500000000"})
	assert.ErrorIs(t, err, domain.ErrOwnerBid)

	result, err := s.PlaceBid(ctx, PlaceBidInput{
		ListingID:      listing.ID,
		BidderID:       bidder.ID,
		AmountLamports: "500000000",
	})
	require.NoError(t, err)
	bid := result.Bid
	assert.NotZero(t, bid.ID)
	assert.Equal(t, schema.BidStatusActive, bid.Status)
	assert.Equal(t, nft.ID, bid.NFTID)
	assert.Nil(t, bid.AcceptedAt)

	// The feed shows the amount in SOL
	require.NotNil(t, result.Feed)
	assert.Equal(t, string(domain.FeedEventBid), result.Feed.EventCode)
	assert.Equal(t, fmt.Sprintf("%s bid 0.50 SOL", bidder.DisplayName()), result.Feed.Message)

	// Bids do not touch the audit log
	txns, err := s.GetNFTTransactions(ctx, nft.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 2) // MINT + LIST only

	// Bidding on a closed listing fails
	_, err = s.PurchaseListing(ctx, listing.ID, bidder.ID)
	require.NoError(t, err)
	_, err = s.PlaceBid(ctx, PlaceBidInput{ListingID: listing.ID, BidderID: bidder.ID, AmountLamports: "600000000"})
	assert.ErrorIs(t, err, domain.ErrListingNotActive)
}

func testAcceptBid(t *testing.T, s Store) {
	ctx := context.Background()
	seller := createTestUser(t, s, "agent-seller")
	winner := createTestUser(t, s, "agent-winner")
	loser := createTestUser(t, s, "agent-loser")
	nft := mintTestNFT(t, s, seller.ID, "Amber Circuit")
	listing := listTestNFT(t, s, nft.ID, seller.ID, "2000000000")

	winning, err := s.PlaceBid(ctx, PlaceBidInput{ListingID: listing.ID, BidderID: winner.ID, AmountLamports: "1500000000"})
	require.NoError(t, err)
	losing, err := s.PlaceBid(ctx, PlaceBidInput{ListingID: listing.ID, BidderID: loser.ID, AmountLamports: "1000000000"})
	require.NoError(t, err)

	// Unknown bid
	_, err = s.AcceptBid(ctx, AcceptBidInput{ListingID: listing.ID, BidID: 999999, SellerID: seller.ID})
	assert.ErrorIs(t, err, domain.ErrBidNotFound)

	// A bid from another listing is not acceptable through this one
	otherNFT := mintTestNFT(t, s, seller.ID, "Decoy")
	otherListing := listTestNFT(t, s, otherNFT.ID, seller.ID, "1000000000")
	_, err = s.AcceptBid(ctx, AcceptBidInput{ListingID: otherListing.ID, BidID: winning.Bid.ID, SellerID: seller.ID})
	assert.ErrorIs(t, err, domain.ErrBidNotFound)

	// Only the seller may accept
	_, err = s.AcceptBid(ctx, AcceptBidInput{ListingID: listing.ID, BidID: winning.Bid.ID, SellerID: winner.ID})
	assert.ErrorIs(t, err, domain.ErrNotSeller)

	result, err := s.AcceptBid(ctx, AcceptBidInput{ListingID: listing.ID, BidID: winning.Bid.ID, SellerID: seller.ID})
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusSold, result.Listing.Status)
	assert.Equal(t, winner.ID, result.NFT.OwnerID)

	// Audit row settles at the bid amount, seller to winner
	require.NotNil(t, result.Transaction)
	assert.Equal(t, schema.TransactionEventBidAccepted, result.Transaction.EventType)
	require.NotNil(t, result.Transaction.PriceLamports)
	assert.Equal(t, "1500000000", *result.Transaction.PriceLamports)
	assert.Equal(t, seller.ID, *result.Transaction.FromUserID)
	assert.Equal(t, winner.ID, *result.Transaction.ToUserID)

	require.NotNil(t, result.Feed)
	assert.Equal(t, string(domain.FeedEventBidAccepted), result.Feed.EventCode)
	assert.Equal(t, fmt.Sprintf("%s accepted bid on Amber Circuit", seller.DisplayName()), result.Feed.Message)

	// Winning bid accepted with a timestamp, losing bid cancelled
	bids, err := s.GetNFTBids(ctx, nft.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	for _, bid := range bids {
		switch bid.ID {
		case winning.Bid.ID:
			assert.Equal(t, schema.BidStatusAccepted, bid.Status)
			assert.NotNil(t, bid.AcceptedAt)
		case losing.Bid.ID:
			assert.Equal(t, schema.BidStatusCancelled, bid.Status)
			assert.Nil(t, bid.AcceptedAt)
		}
	}

	// The listing settled once; a second accept finds it closed
	_, err = s.AcceptBid(ctx, AcceptBidInput{ListingID: listing.ID, BidID: losing.Bid.ID, SellerID: seller.ID})
	assert.ErrorIs(t, err, domain.ErrListingNotActive)
}

// =============================================================================
// Purchasing
// =============================================================================

func testPurchaseListing(t *testing.T, s Store) {
	ctx := context.Background()
	seller := createTestUser(t, s, "agent-seller")
	buyer := createTestUser(t, s, "agent-buyer")
	bidder := createTestUser(t, s, "agent-late-bidder")
	nft := mintTestNFT(t, s, seller.ID, "Violet Prism")
	listing := listTestNFT(t, s, nft.ID, seller.ID, "4000000000")

	_, err := s.PlaceBid(ctx, PlaceBidInput{ListingID: listing.ID, BidderID: bidder.ID, AmountLamports: "3000000000"})
	require.NoError(t, err)

	// Missing listing
	_, err = s.PurchaseListing(ctx, 999999, buyer.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	// Sellers may not buy their own listing
	_, err = s.PurchaseListing(ctx, listing.ID, seller.ID)
	assert.ErrorIs(t, err, domain.ErrSellerPurchase)

	result, err := s.PurchaseListing(ctx, listing.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusSold, result.Listing.Status)
	assert.Equal(t, buyer.ID, result.NFT.OwnerID)

	require.NotNil(t, result.Transaction)
	assert.Equal(t, schema.TransactionEventSale, result.Transaction.EventType)
	require.NotNil(t, result.Transaction.Message)
	assert.Equal(t, "Sale executed for Violet Prism", *result.Transaction.Message)
	require.NotNil(t, result.Transaction.PriceLamports)
	assert.Equal(t, "4000000000", *result.Transaction.PriceLamports)

	// The SALE feed entry links back to the audit row
	require.NotNil(t, result.Feed)
	assert.Equal(t, string(domain.FeedEventSale), result.Feed.EventCode)
	require.NotNil(t, result.Feed.TxSig)
	assert.Equal(t, result.Transaction.TxSig, *result.Feed.TxSig)
	assert.Equal(t, fmt.Sprintf("%s sold Violet Prism", seller.DisplayName()), result.Feed.Message)

	// Outstanding bids are cancelled by the sale
	bids, err := s.GetNFTBids(ctx, nft.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, schema.BidStatusCancelled, bids[0].Status)

	// The terminal transition happens exactly once
	_, err = s.PurchaseListing(ctx, listing.ID, buyer.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotActive)

	// The new owner can relist
	relisted, err := s.CreateListing(ctx, CreateListingInput{NFTID: nft.ID, SellerID: buyer.ID, PriceLamports: "5000000000"})
	require.NoError(t, err)
	assert.Equal(t, schema.ListingStatusActive, relisted.Listing.Status)
}

// =============================================================================
// NFT queries
// =============================================================================

func testNFTQueries(t *testing.T, s Store) {
	ctx := context.Background()
	owner := createTestUser(t, s, "agent-owner")
	buyer := createTestUser(t, s, "agent-collector")

	kept := mintTestNFT(t, s, owner.ID, "Kept Piece")
	sold := mintTestNFT(t, s, owner.ID, "Sold Piece")
	listing := listTestNFT(t, s, sold.ID, owner.ID, "1000000000")
	_, err := s.PurchaseListing(ctx, listing.ID, buyer.ID)
	require.NoError(t, err)

	// Ownership queries follow the transfer
	mine, err := s.GetNFTsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, kept.ID, mine[0].ID)

	theirs, err := s.GetNFTsByOwner(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, sold.ID, theirs[0].ID)
	// The sold listing is terminal, so no active listings ride along
	assert.Empty(t, theirs[0].Listings)
	// Creator sticks with the minter
	assert.Equal(t, owner.ID, theirs[0].Creator.ID)

	// Detail fetch carries the full listing history
	detail, err := s.GetNFTByID(ctx, sold.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.Len(t, detail.Listings, 1)
	assert.Equal(t, schema.ListingStatusSold, detail.Listings[0].Status)

	missing, err := s.GetNFTByID(ctx, 999999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	// The audit trail for the sold asset: MINT, LIST, SALE
	txns, err := s.GetNFTTransactions(ctx, sold.ID)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	types := make([]schema.TransactionEventType, 0, len(txns))
	for _, txn := range txns {
		types = append(types, txn.EventType)
	}
	assert.ElementsMatch(t, []schema.TransactionEventType{
		schema.TransactionEventMint,
		schema.TransactionEventList,
		schema.TransactionEventSale,
	}, types)
}

// =============================================================================
// Feed
// =============================================================================

func testFeedRetention(t *testing.T, s Store) {
	ctx := context.Background()
	minter := createTestUser(t, s, "agent-prolific")

	// Each mint appends one feed row
	for i := 0; i < 12; i++ {
		mintTestNFT(t, s, minter.ID, fmt.Sprintf("Piece %02d", i))
	}

	events, err := s.GetFeedEvents(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 12)
	// Newest first
	assert.Equal(t, fmt.Sprintf("%s minted Piece 11", minter.DisplayName()), events[0].Message)

	// Under the cap nothing is pruned
	pruned, err := s.PruneFeedEvents(ctx, 20)
	require.NoError(t, err)
	assert.Zero(t, pruned)

	// Over the cap the oldest rows go
	pruned, err = s.PruneFeedEvents(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), pruned)

	events, err = s.GetFeedEvents(ctx, 100)
	require.NoError(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, fmt.Sprintf("%s minted Piece 11", minter.DisplayName()), events[0].Message)
	assert.Equal(t, fmt.Sprintf("%s minted Piece 07", minter.DisplayName()), events[4].Message)

	// The limit caps the page size
	events, err = s.GetFeedEvents(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

// =============================================================================
// Toolbox
// =============================================================================

func testToolboxRows(t *testing.T, s Store) {
	ctx := context.Background()
	user := createTestUser(t, s, "agent-toolbox")
	other := createTestUser(t, s, "agent-intruder")

	rows, err := s.SaveToolboxRows(ctx, user.ID, []ToolboxRowInput{
		{Label: "frequencies", Content: "121.5"},
		{Label: "callsign", Content: "nightjar"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	otherRows, err := s.SaveToolboxRows(ctx, other.ID, []ToolboxRowInput{
		{Label: "private", Content: "keep out"},
	})
	require.NoError(t, err)
	require.Len(t, otherRows, 1)

	// Replace the set: keep one (updated), drop one, add one
	keepID := rows[0].ID
	rows, err = s.SaveToolboxRows(ctx, user.ID, []ToolboxRowInput{
		{ID: &keepID, Label: "frequencies", Content: "243.0"},
		{Label: "dead drop", Content: "pier 9"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byLabel := map[string]schema.ToolboxRow{}
	for _, row := range rows {
		byLabel[row.Label] = row
	}
	require.Contains(t, byLabel, "frequencies")
	assert.Equal(t, keepID, byLabel["frequencies"].ID)
	assert.Equal(t, "243.0", byLabel["frequencies"].Content)
	require.Contains(t, byLabel, "dead drop")

	// Another user's rows are untouched and unreachable by ID
	foreignID := otherRows[0].ID
	rows, err = s.SaveToolboxRows(ctx, user.ID, []ToolboxRowInput{
		{ID: &foreignID, Label: "hijack", Content: "nope"},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)

	otherFetched, err := s.GetToolboxRows(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, otherFetched, 1)
	assert.Equal(t, "keep out", otherFetched[0].Content)

	// Saving an empty set clears the toolbox
	rows, err = s.SaveToolboxRows(ctx, other.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// =============================================================================
// Suite registration
// =============================================================================

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateUserDefaults", testCreateUserDefaults},
		{"UpsertUser", testUpsertUser},
		{"MintNFT", testMintNFT},
		{"CreateListing", testCreateListing},
		{"GetActiveListings", testGetActiveListings},
		{"PlaceBid", testPlaceBid},
		{"AcceptBid", testAcceptBid},
		{"PurchaseListing", testPurchaseListing},
		{"NFTQueries", testNFTQueries},
		{"FeedRetention", testFeedRetention},
		{"ToolboxRows", testToolboxRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
