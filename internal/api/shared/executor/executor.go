package executor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/echelon-room/marketplace/internal/api/shared/dto"
	apierrors "github.com/echelon-room/marketplace/internal/api/shared/errors"
	"github.com/echelon-room/marketplace/internal/auth"
	"github.com/echelon-room/marketplace/internal/domain"
	"github.com/echelon-room/marketplace/internal/logger"
	"github.com/echelon-room/marketplace/internal/messaging"
	"github.com/echelon-room/marketplace/internal/store"
	"github.com/echelon-room/marketplace/internal/store/schema"
	"github.com/echelon-room/marketplace/internal/uri"
)

// FeedSettings controls feed paging and retention
type FeedSettings struct {
	// MaxEvents is the retention cap; older rows are pruned
	MaxEvents int
	// DefaultLimit applies when a feed request carries no limit
	DefaultLimit int
}

// Executor is the interface for the API executor. It owns the business logic
// between the HTTP handlers and the store.
type Executor interface {
	// DevLogin upserts the principal's user and issues a session token
	DevLogin(ctx context.Context, req *dto.DevLoginRequest) (*dto.AuthResponse, error)
	// CreateNonce issues a single-use wallet challenge
	CreateNonce(ctx context.Context, wallet string) (*dto.NonceResponse, error)

	// GetProfile returns the caller's profile
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	// UpdateProfile updates the caller's codename and avatar
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)

	// MintNFT creates an NFT owned by the caller
	MintNFT(ctx context.Context, userID int64, req *dto.MintNFTRequest) (*dto.NFTResponse, error)
	// GetMyNFTs returns the NFTs the caller currently holds
	GetMyNFTs(ctx context.Context, userID int64) ([]dto.NFTResponse, error)
	// GetNFT returns one NFT, nil when missing
	GetNFT(ctx context.Context, nftID int64) (*dto.NFTResponse, error)
	// GetNFTBids returns all bids ever placed against an NFT
	GetNFTBids(ctx context.Context, nftID int64) ([]dto.BidResponse, error)
	// GetNFTTransactions returns the audit trail for an NFT
	GetNFTTransactions(ctx context.Context, nftID int64) ([]dto.TransactionResponse, error)

	// GetActiveListings returns the open marketplace
	GetActiveListings(ctx context.Context) ([]dto.ListingResponse, error)
	// CreateListing lists an NFT the caller owns
	CreateListing(ctx context.Context, sellerID int64, req *dto.CreateListingRequest) (*dto.ListingResponse, error)
	// PurchaseListing buys a listing at the asking price
	PurchaseListing(ctx context.Context, listingID, buyerID int64) error
	// PlaceBid places a bid on a listing
	PlaceBid(ctx context.Context, listingID, bidderID int64, req *dto.PlaceBidRequest) (*dto.BidResponse, error)
	// AcceptBid settles a listing against one of its bids
	AcceptBid(ctx context.Context, listingID, bidID, sellerID int64) error

	// GetFeed returns recent feed events, newest first
	GetFeed(ctx context.Context, limit int) ([]dto.FeedEventResponse, error)

	// GetToolbox returns the caller's toolbox rows
	GetToolbox(ctx context.Context, userID int64) ([]dto.ToolboxRowResponse, error)
	// SaveToolbox replaces the caller's toolbox rows
	SaveToolbox(ctx context.Context, userID int64, req *dto.SaveToolboxRequest) ([]dto.ToolboxRowResponse, error)
}

type executor struct {
	store       store.Store
	broadcaster messaging.Broadcaster
	tokens      *auth.TokenIssuer
	nonces      *auth.NonceStore
	feed        FeedSettings
}

// NewExecutor creates the shared executor
func NewExecutor(s store.Store, broadcaster messaging.Broadcaster, tokens *auth.TokenIssuer, nonces *auth.NonceStore, feed FeedSettings) Executor {
	return &executor{
		store:       s,
		broadcaster: broadcaster,
		tokens:      tokens,
		nonces:      nonces,
		feed:        feed,
	}
}

// publishFeedEvent pushes the committed feed row to live clients and prunes
// the feed back to its retention cap. Both are best-effort; the database row
// is already committed.
func (e *executor) publishFeedEvent(ctx context.Context, event *schema.FeedEvent) {
	if event == nil {
		return
	}

	err := e.broadcaster.Broadcast(ctx, &domain.FeedEvent{
		EventCode: domain.FeedEventCode(event.EventCode),
		Message:   event.Message,
		TxSig:     event.TxSig,
		CreatedAt: event.CreatedAt,
	})
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "failed to broadcast feed event"))
	}

	if _, err := e.store.PruneFeedEvents(ctx, e.feed.MaxEvents); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "failed to prune feed events"))
	}
}

func (e *executor) DevLogin(ctx context.Context, req *dto.DevLoginRequest) (*dto.AuthResponse, error) {
	var codename *string
	if req.Codename != nil {
		trimmed := strings.TrimSpace(*req.Codename)
		codename = &trimmed
	}

	user, err := e.store.UpsertUser(ctx, store.UpsertUserInput{
		Principal: req.NormalizedPrincipal(),
		Codename:  codename,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to upsert user: %v", err))
	}

	token, err := e.tokens.Issue(user)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to issue token: %v", err))
	}

	return &dto.AuthResponse{
		Token:     token,
		User:      dto.MapUserToDTO(user),
		ExpiresIn: int64(e.tokens.TTL().Seconds()),
	}, nil
}

func (e *executor) CreateNonce(_ context.Context, wallet string) (*dto.NonceResponse, error) {
	nonce, message, err := e.nonces.Create(wallet)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to create nonce: %v", err))
	}
	return &dto.NonceResponse{Nonce: nonce, Message: message}, nil
}

func (e *executor) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user: %v", err))
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.MapUserToDTO(user)
	return &resp, nil
}

func (e *executor) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user: %v", err))
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	updated, err := e.store.UpsertUser(ctx, store.UpsertUserInput{
		Principal: user.Principal,
		Codename:  req.Codename,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update user: %v", err))
	}

	resp := dto.MapUserToDTO(updated)
	return &resp, nil
}

// validateImageData accepts either an http(s) URL or an image data URI whose
// payload sniffs as a real image
func validateImageData(imageData string) error {
	result := uri.CheckImageData(imageData)
	if !result.Valid {
		detail := "image_data is not valid"
		if result.Error != nil {
			detail = *result.Error
		}
		return apierrors.NewValidationError("image_data must be an http(s) URL or an image data URI", detail)
	}
	return nil
}

func (e *executor) MintNFT(ctx context.Context, userID int64, req *dto.MintNFTRequest) (*dto.NFTResponse, error) {
	if req.ImageData != nil {
		if err := validateImageData(*req.ImageData); err != nil {
			return nil, err
		}
	}

	var description *string
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		description = &trimmed
	}

	result, err := e.store.MintNFT(ctx, store.MintNFTInput{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Description: description,
		ImageURI:    req.ImageData,
		Collection:  req.Collection,
		Attributes:  req.Attributes,
	})
	if err != nil {
		return nil, err
	}

	e.publishFeedEvent(ctx, result.Feed)

	resp := dto.MapNFTToDTO(result.NFT)
	return &resp, nil
}

func (e *executor) GetMyNFTs(ctx context.Context, userID int64) ([]dto.NFTResponse, error) {
	nfts, err := e.store.GetNFTsByOwner(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get nfts: %v", err))
	}

	responses := make([]dto.NFTResponse, 0, len(nfts))
	for i := range nfts {
		responses = append(responses, dto.MapNFTToDTO(&nfts[i]))
	}
	return responses, nil
}

func (e *executor) GetNFT(ctx context.Context, nftID int64) (*dto.NFTResponse, error) {
	nft, err := e.store.GetNFTByID(ctx, nftID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get nft: %v", err))
	}
	if nft == nil {
		return nil, nil
	}
	resp := dto.MapNFTToDTO(nft)
	return &resp, nil
}

func (e *executor) GetNFTBids(ctx context.Context, nftID int64) ([]dto.BidResponse, error) {
	bids, err := e.store.GetNFTBids(ctx, nftID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get bids: %v", err))
	}

	responses := make([]dto.BidResponse, 0, len(bids))
	for i := range bids {
		responses = append(responses, dto.MapBidToDTO(&bids[i]))
	}
	return responses, nil
}

func (e *executor) GetNFTTransactions(ctx context.Context, nftID int64) ([]dto.TransactionResponse, error) {
	txns, err := e.store.GetNFTTransactions(ctx, nftID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get transactions: %v", err))
	}

	responses := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		responses = append(responses, dto.MapTransactionToDTO(&txns[i]))
	}
	return responses, nil
}

func (e *executor) GetActiveListings(ctx context.Context) ([]dto.ListingResponse, error) {
	listings, err := e.store.GetActiveListings(ctx)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get listings: %v", err))
	}

	responses := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		responses = append(responses, dto.MapListingToDTO(&listings[i]))
	}
	return responses, nil
}

func (e *executor) CreateListing(ctx context.Context, sellerID int64, req *dto.CreateListingRequest) (*dto.ListingResponse, error) {
	result, err := e.store.CreateListing(ctx, store.CreateListingInput{
		NFTID:         req.NFTID,
		SellerID:      sellerID,
		PriceLamports: req.PriceLamports.String(),
	})
	if err != nil {
		return nil, err
	}

	e.publishFeedEvent(ctx, result.Feed)

	resp := dto.MapListingToDTO(result.Listing)
	return &resp, nil
}

func (e *executor) PurchaseListing(ctx context.Context, listingID, buyerID int64) error {
	result, err := e.store.PurchaseListing(ctx, listingID, buyerID)
	if err != nil {
		return err
	}

	e.publishFeedEvent(ctx, result.Feed)
	return nil
}

func (e *executor) PlaceBid(ctx context.Context, listingID, bidderID int64, req *dto.PlaceBidRequest) (*dto.BidResponse, error) {
	result, err := e.store.PlaceBid(ctx, store.PlaceBidInput{
		ListingID:      listingID,
		BidderID:       bidderID,
		AmountLamports: req.AmountLamports.String(),
	})
	if err != nil {
		return nil, err
	}

	e.publishFeedEvent(ctx, result.Feed)

	resp := dto.MapBidToDTO(result.Bid)
	return &resp, nil
}

func (e *executor) AcceptBid(ctx context.Context, listingID, bidID, sellerID int64) error {
	result, err := e.store.AcceptBid(ctx, store.AcceptBidInput{
		ListingID: listingID,
		BidID:     bidID,
		SellerID:  sellerID,
	})
	if err != nil {
		return err
	}

	e.publishFeedEvent(ctx, result.Feed)
	return nil
}

func (e *executor) GetFeed(ctx context.Context, limit int) ([]dto.FeedEventResponse, error) {
	if limit <= 0 {
		limit = e.feed.DefaultLimit
	}
	if limit > e.feed.MaxEvents {
		limit = e.feed.MaxEvents
	}

	events, err := e.store.GetFeedEvents(ctx, limit)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get feed events: %v", err))
	}

	responses := make([]dto.FeedEventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, dto.MapFeedEventToDTO(&events[i]))
	}
	return responses, nil
}

func (e *executor) GetToolbox(ctx context.Context, userID int64) ([]dto.ToolboxRowResponse, error) {
	rows, err := e.store.GetToolboxRows(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get toolbox rows: %v", err))
	}

	responses := make([]dto.ToolboxRowResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, dto.MapToolboxRowToDTO(&rows[i]))
	}
	return responses, nil
}

func (e *executor) SaveToolbox(ctx context.Context, userID int64, req *dto.SaveToolboxRequest) ([]dto.ToolboxRowResponse, error) {
	inputs := make([]store.ToolboxRowInput, 0, len(req.Rows))
	for _, row := range req.Rows {
		inputs = append(inputs, store.ToolboxRowInput{
			ID:      row.ID,
			Label:   strings.TrimSpace(row.Label),
			Content: row.Content,
		})
	}

	rows, err := e.store.SaveToolboxRows(ctx, userID, inputs)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to save toolbox rows: %v", err))
	}

	responses := make([]dto.ToolboxRowResponse, 0, len(rows))
	for i := range rows {
		responses = append(responses, dto.MapToolboxRowToDTO(&rows[i]))
	}
	return responses, nil
}
