package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims represents the session token claims
type Claims struct {
	UserID string `json:"userID"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// TokenManager signs and verifies session tokens. The signing secret and the
// token lifetime are threaded through from the configuration instead of
// living in package globals.
type TokenManager struct {
	Secret []byte
	TTL    time.Duration
}

// NewTokenManager creates a TokenManager with the given secret and lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{Secret: []byte(secret), TTL: ttl}
}

// Generate issues a signed session token for a user.
func (tm *TokenManager) Generate(userID, role string) (string, error) {
	expirationTime := time.Now().Add(tm.TTL)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.Secret)
}

// Parse verifies a session token and returns its claims.
func (tm *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return tm.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorSignatureInvalid)
	}
	return claims, nil
}
