package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/config"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// TokenService issues and verifies the two token classes. Account tokens are
// long-lived and prove identity only; session tokens are shorter-lived and
// carry role, tenant and device scope. The secrets are separate so a session
// secret rotation does not invalidate issued account tokens.
type TokenService struct {
	config config.TokenConfig
}

// NewTokenService constructs a TokenService.
func NewTokenService(cfg config.TokenConfig) *TokenService {
	return &TokenService{config: cfg}
}

// IssueAccountToken signs a long-lived account token for the user.
func (s *TokenService) IssueAccountToken(userID, userKey string) (string, error) {
	now := time.Now().UTC()
	claims := &models.AccountClaims{
		UserID:  userID,
		UserKey: userKey,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccountExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccountSecret))
	if err != nil {
		return "", fmt.Errorf("sign account token: %w", err)
	}
	return signed, nil
}

// SessionTokenParams carries the scope minted into a session token.
type SessionTokenParams struct {
	UserID    string
	UserKey   string
	Role      models.UserRole
	SchoolID  string
	SessionID string
	DeviceID  string
}

// IssueSessionToken signs a session token carrying role, tenant and device.
func (s *TokenService) IssueSessionToken(p SessionTokenParams) (string, error) {
	now := time.Now().UTC()
	claims := &models.SessionClaims{
		UserID:    p.UserID,
		UserKey:   p.UserKey,
		Role:      p.Role,
		SchoolID:  p.SchoolID,
		SessionID: p.SessionID,
		DeviceID:  p.DeviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.SessionExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifyAccountToken parses and validates an account token. Verification
// fails closed: malformed, expired or mis-signed tokens never yield claims.
func (s *TokenService) VerifyAccountToken(tokenString string) (*models.AccountClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AccountClaims{}, s.keyFunc(s.config.AccountSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.AccountClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// VerifySessionToken parses and validates a session token.
func (s *TokenService) VerifySessionToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, s.keyFunc(s.config.SessionSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *TokenService) keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}
}
