package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/echelon-room/marketplace/internal/api/shared/errors"
	"github.com/echelon-room/marketplace/internal/domain"
	"github.com/echelon-room/marketplace/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// statusForCode maps API error codes onto HTTP status codes
func statusForCode(code apierrors.ErrorCode) int {
	switch code {
	case apierrors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case apierrors.ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case apierrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apierrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apierrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apierrors.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// mapDomainError converts business rule violations into API errors.
// Unknown errors come back nil and are treated as internal.
func mapDomainError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, domain.ErrNFTNotFound):
		return apierrors.NewNotFoundError("NFT not found")
	case errors.Is(err, domain.ErrListingNotFound):
		return apierrors.NewNotFoundError("Listing not found")
	case errors.Is(err, domain.ErrBidNotFound):
		return apierrors.NewNotFoundError("Bid not found for this listing")
	case errors.Is(err, domain.ErrUserNotFound):
		return apierrors.NewNotFoundError("User not found")
	case errors.Is(err, domain.ErrNotOwner):
		return apierrors.NewForbiddenError("Only the owner can list this NFT")
	case errors.Is(err, domain.ErrNotSeller):
		return apierrors.NewForbiddenError("Only the seller can accept bids")
	case errors.Is(err, domain.ErrOwnerBid):
		return apierrors.NewForbiddenError("The owner cannot bid on their own listing")
	case errors.Is(err, domain.ErrSellerPurchase):
		return apierrors.NewForbiddenError("The seller cannot purchase their own listing")
	case errors.Is(err, domain.ErrActiveListingExists):
		return apierrors.NewConflictError("NFT already has an active listing")
	case errors.Is(err, domain.ErrListingNotActive):
		return apierrors.NewConflictError("Listing is no longer active")
	default:
		return nil
	}
}

// respondError renders any error from the executor. Business rule violations
// and structured API errors keep their status; everything else is logged and
// hidden behind an opaque 500.
func respondError(c *gin.Context, err error) {
	if apiErr := mapDomainError(err); apiErr != nil {
		c.JSON(statusForCode(apiErr.Code), apiErr)
		return
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		status := statusForCode(apiErr.Code)
		if status == http.StatusInternalServerError {
			logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
			c.JSON(status, apierrors.NewInternalError("Internal server error"))
			return
		}
		c.JSON(status, apiErr)
		return
	}

	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError("Internal server error"))
}
