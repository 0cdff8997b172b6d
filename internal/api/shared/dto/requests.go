package dto

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/datatypes"

	apierrors "github.com/echelon-room/marketplace/internal/api/shared/errors"
	"github.com/echelon-room/marketplace/internal/domain"
)

const (
	minPrincipalLength = 3
	maxPrincipalLength = 128
	minCodenameLength  = 2
	maxCodenameLength  = 64
	maxNFTNameLength   = 120
	maxDescription     = 2000
	maxToolboxLabel    = 120
	maxToolboxContent  = 10000
)

var principalPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// DevLoginRequest represents the request body for the development login
type DevLoginRequest struct {
	Principal string  `json:"principal"`
	Codename  *string `json:"codename,omitempty"`
}

// Validate validates the request body
func (r *DevLoginRequest) Validate() error {
	principal := strings.TrimSpace(r.Principal)
	if len(principal) < minPrincipalLength || len(principal) > maxPrincipalLength {
		return apierrors.NewValidationError(fmt.Sprintf("principal must be %d to %d characters", minPrincipalLength, maxPrincipalLength))
	}
	if !principalPattern.MatchString(principal) {
		return apierrors.NewValidationError("principal may only contain alphanumeric, dash, underscore")
	}
	if r.Codename != nil {
		codename := strings.TrimSpace(*r.Codename)
		if len(codename) < minCodenameLength || len(codename) > maxCodenameLength {
			return apierrors.NewValidationError(fmt.Sprintf("codename must be %d to %d characters", minCodenameLength, maxCodenameLength))
		}
	}
	return nil
}

// NormalizedPrincipal returns the trimmed, case-folded principal
func (r *DevLoginRequest) NormalizedPrincipal() string {
	return strings.ToLower(strings.TrimSpace(r.Principal))
}

// NonceRequest represents the request body for issuing a wallet challenge
type NonceRequest struct {
	Wallet string `json:"wallet"`
}

// Validate validates the request body
func (r *NonceRequest) Validate() error {
	if strings.TrimSpace(r.Wallet) == "" {
		return apierrors.NewValidationError("wallet is required")
	}
	return nil
}

// MintNFTRequest represents the request body for minting an NFT
type MintNFTRequest struct {
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	ImageData   *string        `json:"image_data,omitempty"`
	Collection  *string        `json:"collection,omitempty"`
	Attributes  datatypes.JSON `json:"attributes,omitempty"`
}

// Validate validates the request body. The image payload itself is checked by
// the executor, which sniffs data URIs for a real image type.
func (r *MintNFTRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return apierrors.NewValidationError("name is required")
	}
	if len(name) > maxNFTNameLength {
		return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", maxNFTNameLength))
	}
	if r.Description != nil && len(strings.TrimSpace(*r.Description)) > maxDescription {
		return apierrors.NewValidationError(fmt.Sprintf("description must be at most %d characters", maxDescription))
	}
	return nil
}

// CreateListingRequest represents the request body for creating a listing
type CreateListingRequest struct {
	NFTID         int64           `json:"nft_id"`
	PriceLamports domain.Lamports `json:"price_lamports"`
}

// Validate validates the request body
func (r *CreateListingRequest) Validate() error {
	if r.NFTID <= 0 {
		return apierrors.NewValidationError("nft_id must be a positive integer")
	}
	if r.PriceLamports.IsZero() {
		return apierrors.NewValidationError("price_lamports is required")
	}
	return nil
}

// PlaceBidRequest represents the request body for placing a bid
type PlaceBidRequest struct {
	AmountLamports domain.Lamports `json:"amount_lamports"`
}

// Validate validates the request body
func (r *PlaceBidRequest) Validate() error {
	if r.AmountLamports.IsZero() {
		return apierrors.NewValidationError("amount_lamports is required")
	}
	return nil
}

// UpdateProfileRequest represents the request body for updating the caller's profile
type UpdateProfileRequest struct {
	Codename  *string `json:"codename,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Validate validates the request body
func (r *UpdateProfileRequest) Validate() error {
	if r.Codename != nil {
		codename := strings.TrimSpace(*r.Codename)
		if len(codename) < minCodenameLength || len(codename) > maxCodenameLength {
			return apierrors.NewValidationError(fmt.Sprintf("codename must be %d to %d characters", minCodenameLength, maxCodenameLength))
		}
	}
	if r.AvatarURL != nil && strings.TrimSpace(*r.AvatarURL) == "" {
		return apierrors.NewValidationError("avatar_url must not be empty")
	}
	return nil
}

// ToolboxRowRequest represents one row in a toolbox save request
type ToolboxRowRequest struct {
	ID      *int64 `json:"id,omitempty"`
	Label   string `json:"label"`
	Content string `json:"content"`
}

// SaveToolboxRequest represents the request body replacing the caller's toolbox
type SaveToolboxRequest struct {
	Rows []ToolboxRowRequest `json:"rows"`
}

// Validate validates the request body
func (r *SaveToolboxRequest) Validate() error {
	for i, row := range r.Rows {
		if row.ID != nil && *row.ID <= 0 {
			return apierrors.NewValidationError(fmt.Sprintf("rows[%d].id must be a positive integer", i))
		}
		label := strings.TrimSpace(row.Label)
		if label == "" || len(label) > maxToolboxLabel {
			return apierrors.NewValidationError(fmt.Sprintf("rows[%d].label must be 1 to %d characters", i, maxToolboxLabel))
		}
		if len(row.Content) > maxToolboxContent {
			return apierrors.NewValidationError(fmt.Sprintf("rows[%d].content must be at most %d characters", i, maxToolboxContent))
		}
	}
	return nil
}
