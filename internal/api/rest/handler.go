package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/echelon-room/marketplace/internal/api/middleware"
	"github.com/echelon-room/marketplace/internal/api/shared/dto"
	"github.com/echelon-room/marketplace/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// DevLogin exchanges a principal for a session token (no signature check)
	// POST /api/v1/auth/dev-login
	DevLogin(c *gin.Context)

	// CreateNonce issues a single-use wallet challenge
	// POST /api/v1/auth/nonce
	CreateNonce(c *gin.Context)

	// GetProfile returns the caller's profile
	// GET /api/v1/profiles/me
	GetProfile(c *gin.Context)

	// UpdateProfile updates the caller's codename and avatar
	// PUT /api/v1/profiles/me
	UpdateProfile(c *gin.Context)

	// MintNFT creates an NFT owned by the caller
	// POST /api/v1/nfts
	MintNFT(c *gin.Context)

	// GetMyNFTs returns the NFTs the caller currently holds
	// GET /api/v1/nfts/mine
	GetMyNFTs(c *gin.Context)

	// GetNFT returns one NFT with its listing history
	// GET /api/v1/nfts/:nft_id
	GetNFT(c *gin.Context)

	// GetNFTBids returns all bids ever placed against an NFT
	// GET /api/v1/nfts/:nft_id/bids
	GetNFTBids(c *gin.Context)

	// GetNFTTransactions returns the audit trail for an NFT
	// GET /api/v1/nfts/:nft_id/transactions
	GetNFTTransactions(c *gin.Context)

	// GetListings returns the active listings with bids and best bid
	// GET /api/v1/listings
	GetListings(c *gin.Context)

	// CreateListing lists an NFT the caller owns
	// POST /api/v1/listings
	CreateListing(c *gin.Context)

	// PurchaseListing buys a listing at the asking price
	// POST /api/v1/listings/:listing_id/purchase
	PurchaseListing(c *gin.Context)

	// PlaceBid places a bid on a listing
	// POST /api/v1/listings/:listing_id/bids
	PlaceBid(c *gin.Context)

	// AcceptBid settles a listing against one of its bids
	// POST /api/v1/listings/:listing_id/bids/:bid_id/accept
	AcceptBid(c *gin.Context)

	// GetFeed returns recent feed events, newest first
	// GET /api/v1/feed?limit=<limit>
	GetFeed(c *gin.Context)

	// GetToolbox returns the caller's toolbox rows
	// GET /api/v1/toolbox
	GetToolbox(c *gin.Context)

	// SaveToolbox replaces the caller's toolbox rows
	// PUT /api/v1/toolbox
	SaveToolbox(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *handler) DevLogin(c *gin.Context) {
	var req dto.DevLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.executor.DevLogin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(result))
}

func (h *handler) CreateNonce(c *gin.Context) {
	var req dto.NonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	result, err := h.executor.CreateNonce(c.Request.Context(), req.Wallet)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(result))
}

func (h *handler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profile, err := h.executor.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(profile))
}

func (h *handler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.executor.UpdateProfile(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(profile))
}

func (h *handler) MintNFT(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.MintNFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	nft, err := h.executor.MintNFT(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDataResponse(nft))
}

func (h *handler) GetMyNFTs(c *gin.Context) {
	user := middleware.CurrentUser(c)

	nfts, err := h.executor.GetMyNFTs(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(nfts))
}

func (h *handler) GetNFT(c *gin.Context) {
	nftID, ok := parseIDParam(c, "nft_id")
	if !ok {
		return
	}

	nft, err := h.executor.GetNFT(c.Request.Context(), nftID)
	if err != nil {
		respondError(c, err)
		return
	}
	if nft == nil {
		respondNotFound(c, "NFT not found")
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(nft))
}

func (h *handler) GetNFTBids(c *gin.Context) {
	nftID, ok := parseIDParam(c, "nft_id")
	if !ok {
		return
	}

	bids, err := h.executor.GetNFTBids(c.Request.Context(), nftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(bids))
}

func (h *handler) GetNFTTransactions(c *gin.Context) {
	nftID, ok := parseIDParam(c, "nft_id")
	if !ok {
		return
	}

	txns, err := h.executor.GetNFTTransactions(c.Request.Context(), nftID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(txns))
}

func (h *handler) GetListings(c *gin.Context) {
	listings, err := h.executor.GetActiveListings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(listings))
}

func (h *handler) CreateListing(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	listing, err := h.executor.CreateListing(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDataResponse(listing))
}

func (h *handler) PurchaseListing(c *gin.Context) {
	user := middleware.CurrentUser(c)

	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}

	if err := h.executor.PurchaseListing(c.Request.Context(), listingID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) PlaceBid(c *gin.Context) {
	user := middleware.CurrentUser(c)

	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}

	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	bid, err := h.executor.PlaceBid(c.Request.Context(), listingID, user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewDataResponse(bid))
}

func (h *handler) AcceptBid(c *gin.Context) {
	user := middleware.CurrentUser(c)

	listingID, ok := parseIDParam(c, "listing_id")
	if !ok {
		return
	}
	bidID, ok := parseIDParam(c, "bid_id")
	if !ok {
		return
	}

	if err := h.executor.AcceptBid(c.Request.Context(), listingID, bidID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) GetFeed(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.executor.GetFeed(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(events))
}

func (h *handler) GetToolbox(c *gin.Context) {
	user := middleware.CurrentUser(c)

	rows, err := h.executor.GetToolbox(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(rows))
}

func (h *handler) SaveToolbox(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// The body is a bare JSON array of rows
	var rows []dto.ToolboxRowRequest
	if err := c.ShouldBindJSON(&rows); err != nil {
		respondBadRequest(c, "Invalid payload", err.Error())
		return
	}
	req := dto.SaveToolboxRequest{Rows: rows}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.executor.SaveToolbox(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(saved))
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
