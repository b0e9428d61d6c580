package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is stamped on every ops API token and required when parsing.
const Issuer = "pinkslip"

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// OpsClaims identify a caller of the read-only ops API. A token with a
// GuildID may only read that guild; an empty GuildID reads any guild.
type OpsClaims struct {
	GuildID string `json:"guild_id,omitempty"`
	jwt.RegisteredClaims
}

// CanRead reports whether the token grants access to guildID
func (c *OpsClaims) CanRead(guildID string) bool {
	return c.GuildID == "" || c.GuildID == guildID
}

// IssueToken signs an HS256 token for subject. A zero ttl never expires.
func IssueToken(secret []byte, subject, guildID string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := OpsClaims{
		GuildID: guildID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   Issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, issuer and expiry.
func ParseToken(secret []byte, raw string) (*OpsClaims, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &OpsClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
