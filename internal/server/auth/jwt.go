// Package auth implements the stateless token codec: issuing and verifying
// compact HMAC-signed identity tokens. Verification is pure and never touches
// storage; resolving the subject against the user store is the caller's job.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/natekim416/tuckserver/internal/common"
)

// TokenValidity is the fixed lifetime of every issued token. There is no
// refresh or rotation mechanism; logging in again issues a fresh token.
const TokenValidity = 7 * 24 * time.Hour

// Claims carries the token payload: the user id in the standard subject
// claim plus issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a token for userID valid for TokenValidity from now.
func GenerateToken(userID string, secretKey []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString against secretKey as of now and
// returns the subject user id. Failures are reported as exactly one of
// common.ErrTokenExpired, common.ErrInvalidSignature or
// common.ErrMalformedToken; the HTTP boundary collapses all three.
func GetUserIDFromToken(tokenString string, secretKey []byte, now time.Time) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrInvalidSignature
		default:
			return "", common.ErrMalformedToken
		}
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrMalformedToken
	}

	return claims.Subject, nil
}
