package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/echelon-room/marketplace/internal/api/shared/errors"
	"github.com/echelon-room/marketplace/internal/auth"
	"github.com/echelon-room/marketplace/internal/logger"
	"github.com/echelon-room/marketplace/internal/store"
	"github.com/echelon-room/marketplace/internal/store/schema"
)

const currentUserKey = "current_user"

// AuthResult holds the result of authentication
type AuthResult struct {
	Success bool
	User    *schema.User
	Error   error
}

// Authenticate validates the Authorization header, resolves the token's
// subject against the user table and returns the authentication result
func Authenticate(c *gin.Context, tokens *auth.TokenIssuer, s store.Store) AuthResult {
	result := AuthResult{Success: false}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		result.Error = errors.New("missing Authorization header")
		return result
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		result.Error = errors.New("invalid Authorization header format")
		return result
	}

	claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		result.Error = err
		return result
	}

	userID, err := claims.UserID()
	if err != nil {
		result.Error = err
		return result
	}

	user, err := s.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		result.Error = err
		return result
	}
	if user == nil {
		result.Error = errors.New("user not found")
		return result
	}

	result.Success = true
	result.User = user
	return result
}

// Auth returns a gin middleware that requires a valid bearer session token
// and attaches the resolved user to the request context
func Auth(tokens *auth.TokenIssuer, s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := Authenticate(c, tokens, s)

		if !result.Success {
			logger.Warn("Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(currentUserKey, result.User)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Auth, or nil
func CurrentUser(c *gin.Context) *schema.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*schema.User)
	if !ok {
		return nil
	}
	return user
}
