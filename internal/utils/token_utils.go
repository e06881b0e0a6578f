package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kshitijraj/authbot_app/internal/apperrors"
)

// Token type markers. A refresh token must never be accepted where an access
// token is required, and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the JWT payload: standard registered claims plus a type
// marker distinguishing access tokens from refresh tokens.
type TokenClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateJWT signs a token of the given type for the subject user ID.
func GenerateJWT(userID string, tokenType string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string, validates its signature and
// standard claims, and checks the type marker. Invalid input of any kind
// (bad signature, malformed, expired, wrong type) comes back as an error
// wrapping apperrors.ErrInvalidToken; it never panics.
func ParseAndValidateJWT(tokenString string, expectedType string, secretKey string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Reject tokens that are not HMAC-signed to avoid algorithm confusion.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())

	if err != nil {
		return nil, errors.Join(apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, errors.Join(apperrors.ErrInvalidToken, errors.New("unexpected token type"))
	}
	if claims.Subject == "" {
		return nil, errors.Join(apperrors.ErrInvalidToken, errors.New("token has no subject"))
	}

	return claims, nil
}
