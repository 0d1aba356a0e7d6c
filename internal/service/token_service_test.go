package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/pkg/config"
)

func newTokenService() *TokenService {
	return NewTokenService(config.TokenConfig{
		AccountSecret:     "account-secret",
		SessionSecret:     "session-secret",
		AccountExpiration: time.Hour,
		SessionExpiration: time.Hour,
	})
}

func TestTokenServiceAccountRoundTrip(t *testing.T) {
	svc := newTokenService()

	signed, err := svc.IssueAccountToken("u1", "alice")
	require.NoError(t, err)

	claims, err := svc.VerifyAccountToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "alice", claims.UserKey)
}

func TestTokenServiceSessionRoundTrip(t *testing.T) {
	svc := newTokenService()

	signed, err := svc.IssueSessionToken(SessionTokenParams{
		UserID:    "u1",
		UserKey:   "alice",
		Role:      models.RoleSchoolAdmin,
		SchoolID:  "school-1",
		SessionID: "sess-1",
		DeviceID:  "device-1",
	})
	require.NoError(t, err)

	claims, err := svc.VerifySessionToken(signed)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSchoolAdmin, claims.Role)
	assert.Equal(t, "school-1", claims.SchoolID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "device-1", claims.DeviceID)
}

func TestTokenServiceRejectsCrossClassTokens(t *testing.T) {
	svc := newTokenService()

	account, err := svc.IssueAccountToken("u1", "alice")
	require.NoError(t, err)

	// Signed with the account secret, so it must not verify as a session token.
	_, err = svc.VerifySessionToken(account)
	assert.Error(t, err)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService(config.TokenConfig{
		AccountSecret:     "account-secret",
		SessionSecret:     "session-secret",
		AccountExpiration: -time.Minute,
		SessionExpiration: -time.Minute,
	})

	signed, err := svc.IssueAccountToken("u1", "alice")
	require.NoError(t, err)

	_, err = svc.VerifyAccountToken(signed)
	assert.Error(t, err)
}

func TestTokenServiceRejectsTampered(t *testing.T) {
	svc := newTokenService()

	signed, err := svc.IssueAccountToken("u1", "alice")
	require.NoError(t, err)

	_, err = svc.VerifyAccountToken(signed + "x")
	assert.Error(t, err)

	other := NewTokenService(config.TokenConfig{AccountSecret: "different", SessionSecret: "different", AccountExpiration: time.Hour, SessionExpiration: time.Hour})
	_, err = other.VerifyAccountToken(signed)
	assert.Error(t, err)
}
