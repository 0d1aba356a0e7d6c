package models

import "github.com/golang-jwt/jwt/v5"

// AccountClaims is the payload of the long-lived account token. It proves
// account identity only and is used solely to mint session tokens.
type AccountClaims struct {
	UserID  string `json:"userId"`
	UserKey string `json:"userKey"`
	jwt.RegisteredClaims
}

// SessionClaims is the payload of the short-lived session token carried with
// every authenticated request. SchoolID is empty for superadmins.
type SessionClaims struct {
	UserID    string   `json:"userId"`
	UserKey   string   `json:"userKey"`
	Role      UserRole `json:"role"`
	SchoolID  string   `json:"schoolId,omitempty"`
	SessionID string   `json:"sessionId"`
	DeviceID  string   `json:"deviceId"`
	jwt.RegisteredClaims
}
