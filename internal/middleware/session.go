package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
	"github.com/noah-isme/school-admin-api/pkg/response"
)

// ContextUserKey is the gin context key storing session claims.
const ContextUserKey = "currentUser"

// ContextAccountKey is the gin context key storing account claims.
const ContextAccountKey = "currentAccount"

// TokenHeader is the request header carrying either token class.
const TokenHeader = "token"

// Session protects routes by requiring a valid session token.
func Session(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)
		if raw == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Token is required"))
			c.Abort()
			return
		}

		claims, err := tokens.VerifySessionToken(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// Account protects the session-exchange route with an account token.
func Account(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(TokenHeader)
		if raw == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Token is required"))
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccountToken(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextAccountKey, claims)
		c.Next()
	}
}

// SessionClaims extracts the session claims the Session middleware stored.
func SessionClaims(c *gin.Context) (*models.SessionClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.SessionClaims)
	return claims, ok
}

// AccountClaims extracts the account claims the Account middleware stored.
func AccountClaims(c *gin.Context) (*models.AccountClaims, bool) {
	value, exists := c.Get(ContextAccountKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.AccountClaims)
	return claims, ok
}
