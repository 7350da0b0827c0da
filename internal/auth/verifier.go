// Package auth verifies tokens issued by the external identity provider.
//
// The provider itself (token issuance, key management, account lifecycle) is
// an external collaborator. This package only checks that a presented bearer
// token is valid and extracts the provider-side identifier that links it to a
// local user row.
package auth

import (
	"context"
	"errors"

	"proconnect/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier validates an externally issued bearer token and returns the
// provider-side subject identifier. It is injected into the request-handling
// layer at process start.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// JWTVerifier verifies HMAC-signed JWTs against the identity provider's
// shared secret, issuer and audience.
type JWTVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTVerifier returns a verifier configured from application config.
func NewJWTVerifier(cfg *config.Config) *JWTVerifier {
	return &JWTVerifier{
		secret:   []byte(cfg.AuthJWTSecret),
		issuer:   cfg.AuthIssuer,
		audience: cfg.AuthAudience,
	}
}

// Verify parses and validates the token and returns its subject claim.
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != v.issuer {
		return "", ErrInvalidToken
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != v.audience {
		return "", ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}

	return sub, nil
}
