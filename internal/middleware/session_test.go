package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/config"
)

func newGuardedRouter(tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/session", Session(tokens), func(c *gin.Context) {
		claims, ok := SessionClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"schoolId": claims.SchoolID})
	})
	r.GET("/account", Account(tokens), func(c *gin.Context) {
		claims, ok := AccountClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "claims missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	return r
}

func testTokens() *service.TokenService {
	return service.NewTokenService(config.TokenConfig{
		AccountSecret:     "account-secret",
		SessionSecret:     "session-secret",
		AccountExpiration: time.Hour,
		SessionExpiration: time.Hour,
	})
}

func TestSessionMiddlewareMissingToken(t *testing.T) {
	r := newGuardedRouter(testTokens())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is required")
}

func TestSessionMiddlewareInvalidToken(t *testing.T) {
	r := newGuardedRouter(testTokens())

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(TokenHeader, "garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestSessionMiddlewareValidToken(t *testing.T) {
	tokens := testTokens()
	r := newGuardedRouter(tokens)

	signed, err := tokens.IssueSessionToken(service.SessionTokenParams{
		UserID:   "u1",
		UserKey:  "alice",
		Role:     models.RoleSchoolAdmin,
		SchoolID: "school-1",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(TokenHeader, signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "school-1")
}

func TestSessionMiddlewareRejectsAccountToken(t *testing.T) {
	tokens := testTokens()
	r := newGuardedRouter(tokens)

	signed, err := tokens.IssueAccountToken("u1", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(TokenHeader, signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAccountMiddlewareValidToken(t *testing.T) {
	tokens := testTokens()
	r := newGuardedRouter(tokens)

	signed, err := tokens.IssueAccountToken("u1", "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.Header.Set(TokenHeader, signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}
