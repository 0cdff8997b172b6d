package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/echelon-room/marketplace/internal/domain"
	"github.com/echelon-room/marketplace/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the marketplace tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.User{},
		&schema.NFT{},
		&schema.Listing{},
		&schema.Bid{},
		&schema.Transaction{},
		&schema.FeedEvent{},
		&schema.ToolboxRow{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// newLocalTxSig generates a signature-like identifier for locally settled
// events, unique per row via a random suffix
func newLocalTxSig() string {
	return fmt.Sprintf("local-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:6])
}

// recordTransaction appends an immutable audit row inside the caller's transaction
func recordTransaction(tx *gorm.DB, txn *schema.Transaction) error {
	txn.TxSig = newLocalTxSig()
	txn.BlockTime = time.Now().UTC()
	if err := tx.Create(txn).Error; err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

// appendFeedEvent inserts a feed row inside the caller's transaction. Pruning
// past the retention cap is the caller's responsibility after commit.
func appendFeedEvent(tx *gorm.DB, eventCode, message string, txSig *string) (*schema.FeedEvent, error) {
	event := schema.FeedEvent{
		EventCode: eventCode,
		Message:   message,
		TxSig:     txSig,
	}
	if err := tx.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to append feed event: %w", err)
	}
	return &event, nil
}

// GetUserByID retrieves a user by internal ID
func (s *pgStore) GetUserByID(ctx context.Context, userID int64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// defaultCodename derives the starter codename from the tail of the principal
func defaultCodename(principal string) *string {
	tail := principal
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	codename := "AGENT-" + upperASCII(tail)
	return &codename
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// UpsertUser creates or updates the user for a principal
func (s *pgStore) UpsertUser(ctx context.Context, input UpsertUserInput) (*schema.User, error) {
	var user *schema.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing schema.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("principal = ?", input.Principal).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock user: %w", err)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			existing = schema.User{
				Principal: input.Principal,
				Codename:  defaultCodename(input.Principal),
			}
			if err := tx.Create(&existing).Error; err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
		}

		updates := map[string]interface{}{}
		if input.Codename != nil {
			updates["codename"] = *input.Codename
		}
		if input.AvatarURL != nil {
			updates["avatar_url"] = *input.AvatarURL
		}
		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update user: %w", err)
			}
		}

		user = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// MintNFT creates an NFT owned by its creator and records the mint
func (s *pgStore) MintNFT(ctx context.Context, input MintNFTInput) (*MintNFTResult, error) {
	var result MintNFTResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Resolve the minter
		var minter schema.User
		if err := tx.Where("id = ?", input.UserID).First(&minter).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("failed to get minter: %w", err)
		}

		// 2. Create the NFT with owner = creator
		nft := schema.NFT{
			Name:        input.Name,
			Description: input.Description,
			ImageURI:    input.ImageURI,
			Collection:  input.Collection,
			Attributes:  input.Attributes,
			OwnerID:     input.UserID,
			CreatorID:   input.UserID,
		}
		if err := tx.Create(&nft).Error; err != nil {
			return fmt.Errorf("failed to create nft: %w", err)
		}

		// 3. Record the MINT audit transaction
		message := fmt.Sprintf("NFT minted: %s", nft.Name)
		txn := schema.Transaction{
			EventType: schema.TransactionEventMint,
			NFTID:     &nft.ID,
			ToUserID:  &minter.ID,
			Message:   &message,
		}
		if err := recordTransaction(tx, &txn); err != nil {
			return err
		}

		// 4. Announce the mint on the feed
		feed, err := appendFeedEvent(tx, string(domain.FeedEventMint),
			fmt.Sprintf("%s minted %s", minter.DisplayName(), nft.Name), nil)
		if err != nil {
			return err
		}

		nft.Owner = minter
		nft.Creator = minter
		result.NFT = &nft
		result.Feed = feed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetNFTByID retrieves an NFT with owner, creator and listing history
func (s *pgStore) GetNFTByID(ctx context.Context, nftID int64) (*schema.NFT, error) {
	var nft schema.NFT
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Creator").
		Preload("Listings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", nftID).
		First(&nft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get nft: %w", err)
	}
	return &nft, nil
}

// GetNFTsByOwner retrieves the NFTs currently held by a user
func (s *pgStore) GetNFTsByOwner(ctx context.Context, userID int64) ([]schema.NFT, error) {
	var nfts []schema.NFT
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Creator").
		Preload("Listings", "status = ?", schema.ListingStatusActive).
		Where("owner_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&nfts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get nfts by owner: %w", err)
	}
	return nfts, nil
}

// GetNFTBids retrieves all bids ever placed against an NFT
func (s *pgStore) GetNFTBids(ctx context.Context, nftID int64) ([]schema.Bid, error) {
	var bids []schema.Bid
	err := s.db.WithContext(ctx).
		Preload("Bidder").
		Where("nft_id = ?", nftID).
		Order("created_at DESC, id DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get nft bids: %w", err)
	}
	return bids, nil
}

// GetNFTTransactions retrieves the audit transactions for an NFT
func (s *pgStore) GetNFTTransactions(ctx context.Context, nftID int64) ([]schema.Transaction, error) {
	var txns []schema.Transaction
	err := s.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Where("nft_id = ?", nftID).
		Order("created_at DESC, id DESC").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get nft transactions: %w", err)
	}
	return txns, nil
}

// GetActiveListings retrieves ACTIVE listings with their asset, seller and
// outstanding bids
func (s *pgStore) GetActiveListings(ctx context.Context) ([]schema.Listing, error) {
	var listings []schema.Listing
	err := s.db.WithContext(ctx).
		Preload("NFT").
		Preload("NFT.Owner").
		Preload("NFT.Creator").
		Preload("Seller").
		Preload("Bids", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", schema.BidStatusActive).
				Order("amount_lamports DESC")
		}).
		Preload("Bids.Bidder").
		Where("status = ?", schema.ListingStatusActive).
		Order("created_at DESC, id DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}
	return listings, nil
}

// CreateListing creates an ACTIVE listing for an NFT the seller owns
func (s *pgStore) CreateListing(ctx context.Context, input CreateListingInput) (*CreateListingResult, error) {
	var result CreateListingResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the NFT row to serialize listing creation per asset
		var nft schema.NFT
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.NFTID).
			First(&nft).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNFTNotFound
			}
			return fmt.Errorf("failed to lock nft: %w", err)
		}

		// 2. Only the current owner may list
		if nft.OwnerID != input.SellerID {
			return domain.ErrNotOwner
		}

		// 3. Reject a second ACTIVE listing for the same asset
		var active int64
		err = tx.Model(&schema.Listing{}).
			Where("nft_id = ? AND status = ?", nft.ID, schema.ListingStatusActive).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("failed to count active listings: %w", err)
		}
		if active > 0 {
			return domain.ErrActiveListingExists
		}

		// 4. Create the listing
		listing := schema.Listing{
			NFTID:         nft.ID,
			SellerID:      input.SellerID,
			PriceLamports: input.PriceLamports,
			Status:        schema.ListingStatusActive,
		}
		if err := tx.Create(&listing).Error; err != nil {
			return fmt.Errorf("failed to create listing: %w", err)
		}

		var seller schema.User
		if err := tx.Where("id = ?", input.SellerID).First(&seller).Error; err != nil {
			return fmt.Errorf("failed to get seller: %w", err)
		}

		// 5. Record the LIST audit transaction
		message := fmt.Sprintf("Listing created for %s", nft.Name)
		txn := schema.Transaction{
			EventType:     schema.TransactionEventList,
			NFTID:         &nft.ID,
			PriceLamports: &listing.PriceLamports,
			FromUserID:    &seller.ID,
			Message:       &message,
		}
		if err := recordTransaction(tx, &txn); err != nil {
			return err
		}

		// 6. Announce the listing on the feed
		feed, err := appendFeedEvent(tx, string(domain.FeedEventList),
			fmt.Sprintf("Asset %s listed by %s", nft.Name, seller.DisplayName()), nil)
		if err != nil {
			return err
		}

		listing.NFT = nft
		listing.Seller = seller
		result.Listing = &listing
		result.Feed = feed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PurchaseListing sells an ACTIVE listing to the buyer at the asking price
func (s *pgStore) PurchaseListing(ctx context.Context, listingID, buyerID int64) (*SaleResult, error) {
	var result SaleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the listing row. Concurrent purchase/accept calls queue here
		// and all but the first find the listing no longer ACTIVE.
		var listing schema.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", listingID).
			First(&listing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrListingNotFound
			}
			return fmt.Errorf("failed to lock listing: %w", err)
		}
		if listing.Status != schema.ListingStatusActive {
			return domain.ErrListingNotActive
		}
		if listing.SellerID == buyerID {
			return domain.ErrSellerPurchase
		}

		var nft schema.NFT
		if err := tx.Where("id = ?", listing.NFTID).First(&nft).Error; err != nil {
			return fmt.Errorf("failed to get nft: %w", err)
		}
		var seller schema.User
		if err := tx.Where("id = ?", listing.SellerID).First(&seller).Error; err != nil {
			return fmt.Errorf("failed to get seller: %w", err)
		}

		// 2. Close the listing
		if err := tx.Model(&listing).Update("status", schema.ListingStatusSold).Error; err != nil {
			return fmt.Errorf("failed to close listing: %w", err)
		}

		// 3. Transfer ownership
		if err := tx.Model(&nft).Update("owner_id", buyerID).Error; err != nil {
			return fmt.Errorf("failed to transfer ownership: %w", err)
		}

		// 4. Cancel outstanding bids
		err = tx.Model(&schema.Bid{}).
			Where("listing_id = ? AND status = ?", listing.ID, schema.BidStatusActive).
			Update("status", schema.BidStatusCancelled).Error
		if err != nil {
			return fmt.Errorf("failed to cancel bids: %w", err)
		}

		// 5. Record the SALE audit transaction
		message := fmt.Sprintf("Sale executed for %s", nft.Name)
		txn := schema.Transaction{
			EventType:     schema.TransactionEventSale,
			NFTID:         &nft.ID,
			PriceLamports: &listing.PriceLamports,
			FromUserID:    &listing.SellerID,
			ToUserID:      &buyerID,
			Message:       &message,
		}
		if err := recordTransaction(tx, &txn); err != nil {
			return err
		}

		// 6. Announce the sale on the feed, linked to the audit row
		feed, err := appendFeedEvent(tx, string(domain.FeedEventSale),
			fmt.Sprintf("%s sold %s", seller.DisplayName(), nft.Name), &txn.TxSig)
		if err != nil {
			return err
		}

		listing.NFT = nft
		listing.Seller = seller
		result.Listing = &listing
		result.NFT = &nft
		result.Transaction = &txn
		result.Feed = feed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PlaceBid inserts an ACTIVE bid on an ACTIVE listing
func (s *pgStore) PlaceBid(ctx context.Context, input PlaceBidInput) (*PlaceBidResult, error) {
	var result PlaceBidResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the listing so a concurrent sale cannot slip between the
		// status check and the insert
		var listing schema.Listing
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ListingID).
			First(&listing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrListingNotFound
			}
			return fmt.Errorf("failed to lock listing: %w", err)
		}
		if listing.Status != schema.ListingStatusActive {
			return domain.ErrListingNotActive
		}

		// 2. The current owner may not bid on their own asset
		var nft schema.NFT
		if err := tx.Where("id = ?", listing.NFTID).First(&nft).Error; err != nil {
			return fmt.Errorf("failed to get nft: %w", err)
		}
		if nft.OwnerID == input.BidderID {
			return domain.ErrOwnerBid
		}

		// 3. Create the bid
		bid := schema.Bid{
			ListingID:      listing.ID,
			NFTID:          nft.ID,
			BidderID:       input.BidderID,
			AmountLamports: input.AmountLamports,
			Status:         schema.BidStatusActive,
		}
		if err := tx.Create(&bid).Error; err != nil {
			return fmt.Errorf("failed to create bid: %w", err)
		}

		var bidder schema.User
		if err := tx.Where("id = ?", input.BidderID).First(&bidder).Error; err != nil {
			return fmt.Errorf("failed to get bidder: %w", err)
		}

		// 4. Announce the bid on the feed. Bids carry no audit transaction
		// until accepted.
		feed, err := appendFeedEvent(tx, string(domain.FeedEventBid),
			fmt.Sprintf("%s bid %s SOL", bidder.DisplayName(), domain.FormatSOL(bid.AmountLamports)), nil)
		if err != nil {
			return err
		}

		bid.Bidder = bidder
		result.Bid = &bid
		result.Bidder = &bidder
		result.Feed = feed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AcceptBid accepts one bid on the seller's ACTIVE listing
func (s *pgStore) AcceptBid(ctx context.Context, input AcceptBidInput) (*SaleResult, error) {
	var result SaleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Resolve the bid and check it targets the addressed listing
		var bid schema.Bid
		err := tx.Where("id = ?", input.BidID).First(&bid).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBidNotFound
			}
			return fmt.Errorf("failed to get bid: %w", err)
		}
		if bid.ListingID != input.ListingID {
			return domain.ErrBidNotFound
		}

		// 2. Lock the listing row, same serialization point as PurchaseListing
		var listing schema.Listing
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", bid.ListingID).
			First(&listing).Error
		if err != nil {
			return fmt.Errorf("failed to lock listing: %w", err)
		}
		if listing.SellerID != input.SellerID {
			return domain.ErrNotSeller
		}
		if listing.Status != schema.ListingStatusActive {
			return domain.ErrListingNotActive
		}

		var nft schema.NFT
		if err := tx.Where("id = ?", listing.NFTID).First(&nft).Error; err != nil {
			return fmt.Errorf("failed to get nft: %w", err)
		}
		var seller schema.User
		if err := tx.Where("id = ?", listing.SellerID).First(&seller).Error; err != nil {
			return fmt.Errorf("failed to get seller: %w", err)
		}

		// 3. Accept the winning bid
		now := time.Now().UTC()
		err = tx.Model(&bid).Updates(map[string]interface{}{
			"status":      schema.BidStatusAccepted,
			"accepted_at": now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to accept bid: %w", err)
		}

		// 4. Close the listing
		if err := tx.Model(&listing).Update("status", schema.ListingStatusSold).Error; err != nil {
			return fmt.Errorf("failed to close listing: %w", err)
		}

		// 5. Transfer ownership to the bidder
		if err := tx.Model(&nft).Update("owner_id", bid.BidderID).Error; err != nil {
			return fmt.Errorf("failed to transfer ownership: %w", err)
		}

		// 6. Cancel the losing bids
		err = tx.Model(&schema.Bid{}).
			Where("listing_id = ? AND status = ? AND id <> ?",
				listing.ID, schema.BidStatusActive, bid.ID).
			Update("status", schema.BidStatusCancelled).Error
		if err != nil {
			return fmt.Errorf("failed to cancel bids: %w", err)
		}

		// 7. Record the BID_ACCEPTED audit transaction at the bid amount
		message := fmt.Sprintf("Bid accepted for %s", nft.Name)
		txn := schema.Transaction{
			EventType:     schema.TransactionEventBidAccepted,
			NFTID:         &nft.ID,
			PriceLamports: &bid.AmountLamports,
			FromUserID:    &listing.SellerID,
			ToUserID:      &bid.BidderID,
			Message:       &message,
		}
		if err := recordTransaction(tx, &txn); err != nil {
			return err
		}

		// 8. Announce the acceptance on the feed
		feed, err := appendFeedEvent(tx, string(domain.FeedEventBidAccepted),
			fmt.Sprintf("%s accepted bid on %s", seller.DisplayName(), nft.Name), nil)
		if err != nil {
			return err
		}

		listing.NFT = nft
		listing.Seller = seller
		result.Listing = &listing
		result.NFT = &nft
		result.Transaction = &txn
		result.Feed = feed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetFeedEvents retrieves the most recent feed events
func (s *pgStore) GetFeedEvents(ctx context.Context, limit int) ([]schema.FeedEvent, error) {
	var events []schema.FeedEvent
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get feed events: %w", err)
	}
	return events, nil
}

// PruneFeedEvents deletes the oldest rows past the retention cap
func (s *pgStore) PruneFeedEvents(ctx context.Context, keep int) (int64, error) {
	var pruned int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&schema.FeedEvent{}).Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count feed events: %w", err)
		}
		excess := total - int64(keep)
		if excess <= 0 {
			return nil
		}

		var ids []int64
		err := tx.Model(&schema.FeedEvent{}).
			Order("created_at ASC, id ASC").
			Limit(int(excess)).
			Pluck("id", &ids).Error
		if err != nil {
			return fmt.Errorf("failed to select prunable feed events: %w", err)
		}

		res := tx.Delete(&schema.FeedEvent{}, ids)
		if res.Error != nil {
			return fmt.Errorf("failed to prune feed events: %w", res.Error)
		}
		pruned = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pruned, nil
}

// GetToolboxRows retrieves a user's toolbox rows
func (s *pgStore) GetToolboxRows(ctx context.Context, userID int64) ([]schema.ToolboxRow, error) {
	var rows []schema.ToolboxRow
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get toolbox rows: %w", err)
	}
	return rows, nil
}

// SaveToolboxRows replaces a user's toolbox set in a single transaction
func (s *pgStore) SaveToolboxRows(ctx context.Context, userID int64, rows []ToolboxRowInput) ([]schema.ToolboxRow, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Delete rows omitted from the incoming set
		keepIDs := make([]int64, 0, len(rows))
		for _, row := range rows {
			if row.ID != nil {
				keepIDs = append(keepIDs, *row.ID)
			}
		}
		del := tx.Where("user_id = ?", userID)
		if len(keepIDs) > 0 {
			del = del.Where("id NOT IN ?", keepIDs)
		}
		if err := del.Delete(&schema.ToolboxRow{}).Error; err != nil {
			return fmt.Errorf("failed to delete toolbox rows: %w", err)
		}

		// 2. Update surviving rows, create the rest. Unknown or foreign IDs
		// update nothing and are dropped silently.
		for _, row := range rows {
			if row.ID != nil {
				err := tx.Model(&schema.ToolboxRow{}).
					Where("id = ? AND user_id = ?", *row.ID, userID).
					Updates(map[string]interface{}{
						"label":   row.Label,
						"content": row.Content,
					}).Error
				if err != nil {
					return fmt.Errorf("failed to update toolbox row: %w", err)
				}
				continue
			}
			created := schema.ToolboxRow{
				UserID:  userID,
				Label:   row.Label,
				Content: row.Content,
			}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("failed to create toolbox row: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetToolboxRows(ctx, userID)
}
