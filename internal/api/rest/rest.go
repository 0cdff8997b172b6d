package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/echelon-room/marketplace/internal/api/middleware"
	"github.com/echelon-room/marketplace/internal/auth"
	"github.com/echelon-room/marketplace/internal/store"
)

// SetupRoutes configures all REST API routes. Everything under /api/v1
// except the auth endpoints requires a bearer session token.
func SetupRoutes(router *gin.Engine, handler Handler, tokens *auth.TokenIssuer, s store.Store) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")

	// Auth endpoints (open)
	v1.POST("/auth/dev-login", handler.DevLogin)
	v1.POST("/auth/nonce", handler.CreateNonce)

	// Everything else rides behind authentication
	authed := v1.Group("", middleware.Auth(tokens, s))
	{
		// Profile endpoints
		authed.GET("/profiles/me", handler.GetProfile)
		authed.PUT("/profiles/me", handler.UpdateProfile)

		// NFT endpoints
		authed.POST("/nfts", handler.MintNFT)
		authed.GET("/nfts/mine", handler.GetMyNFTs)
		authed.GET("/nfts/:nft_id", handler.GetNFT)
		authed.GET("/nfts/:nft_id/bids", handler.GetNFTBids)
		authed.GET("/nfts/:nft_id/transactions", handler.GetNFTTransactions)

		// Listing endpoints
		authed.GET("/listings", handler.GetListings)
		authed.POST("/listings", handler.CreateListing)
		authed.POST("/listings/:listing_id/purchase", handler.PurchaseListing)
		authed.POST("/listings/:listing_id/bids", handler.PlaceBid)
		authed.POST("/listings/:listing_id/bids/:bid_id/accept", handler.AcceptBid)

		// Activity feed
		authed.GET("/feed", handler.GetFeed)

		// Toolbox endpoints
		authed.GET("/toolbox", handler.GetToolbox)
		authed.PUT("/toolbox", handler.SaveToolbox)
	}
}
