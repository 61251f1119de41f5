package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT claims issued by the identity provider.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager validates (and, for tooling and tests, issues) access
// tokens. Token issuance for real users lives in the identity service;
// this service only needs the subject to pick a storage backend.
type TokenManager struct {
	secret         string
	accessTokenTTL time.Duration
	issuer         string
}

// NewTokenManager creates a new token manager.
func NewTokenManager(secret string, accessTokenTTL time.Duration, issuer string) *TokenManager {
	return &TokenManager{
		secret:         secret,
		accessTokenTTL: accessTokenTTL,
		issuer:         issuer,
	}
}

// GenerateAccessToken generates a signed access token for the user.
func (tm *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.accessTokenTTL)

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    tm.issuer,
			Subject:   userID.String(),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tm.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateAccessToken parses and validates a token and returns the
// user ID it was issued for.
func (tm *TokenManager) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	if claims.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("token has no user id")
	}

	return claims.UserID, nil
}
