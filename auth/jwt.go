// Package auth issues and validates the symmetric-signed bearer token that
// carries a player's stable identity across requests.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lguibr/arbiter/models"
)

// defaultTTL is how long an issued token remains valid. The spec names no
// expiry requirement beyond "expired tokens are rejected with 401"; a day is
// long enough that a lobby/match session never outlives its own token.
const defaultTTL = 24 * time.Hour

// Claims carries the player identity embedded in the token: {id, name}, per
// the external interface contract (§6). No password or role claims exist —
// there is no notion of an account beyond the identity itself.
type Claims struct {
	PlayerID string `json:"id"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs and validates tokens with a single process-global secret.
// The signing key is immutable configuration for the process's lifetime
// (§9: "the token-signing key is process-global immutable configuration").
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer around secret. secret must be non-empty; the
// caller (config loading) is responsible for rejecting a blank JWT secret
// before the server starts accepting requests.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: defaultTTL}
}

// Issue mints a signed token for player.
func (i *Issuer) Issue(player models.Player) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("auth: jwt secret is required")
	}
	now := time.Now().UTC()
	claims := Claims{
		PlayerID: player.ID.String(),
		Name:     player.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   player.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Validate parses and verifies tokenString, returning the player identity it
// carries. A non-UUID id claim is rejected, per §6.
func (i *Issuer) Validate(tokenString string) (models.Player, error) {
	if len(i.secret) == 0 {
		return models.Player{}, fmt.Errorf("auth: jwt secret is required")
	}

	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil {
		return models.Player{}, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return models.Player{}, fmt.Errorf("invalid token")
	}

	id, err := models.ParseID(claims.PlayerID)
	if err != nil {
		return models.Player{}, fmt.Errorf("invalid player id in token: %w", err)
	}

	return models.Player{ID: id, Name: claims.Name}, nil
}
