package appleauth

import (
	"crypto/ecdsa"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Audience is the fixed audience Apple expects in the client-secret JWT.
const Audience = "https://appleid.apple.com"

// Secrets are short-lived and regenerated per token exchange.
const secretTTL = 5 * time.Minute

// Config holds the Sign in with Apple credential material. All four fields
// are required before Apple can be offered as a login provider.
type Config struct {
	TeamID     string
	KeyID      string
	ClientID   string
	PrivateKey string // PEM-encoded EC (P-256) private key
}

// Configured reports whether every required field is non-blank. It gates
// Apple's registration in the provider list.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.TeamID) != "" &&
		strings.TrimSpace(c.KeyID) != "" &&
		strings.TrimSpace(c.ClientID) != "" &&
		strings.TrimSpace(c.PrivateKey) != ""
}

// ParseKey validates the configured private key. Called once at startup so a
// malformed key fails provider registration instead of the first login.
func (c Config) ParseKey() (*ecdsa.PrivateKey, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("appleauth: incomplete configuration")
	}
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(c.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("appleauth: invalid private key: %w", err)
	}
	return key, nil
}

// ClientSecret generates the signed assertion Apple accepts as client_secret
// at its token endpoint. The secret is valid for five minutes, so callers
// must generate a fresh one per exchange rather than caching it.
func (c Config) ClientSecret() (string, error) {
	key, err := c.ParseKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.TeamID,
		"iat": now.Unix(),
		"exp": now.Add(secretTTL).Unix(),
		"aud": Audience,
		"sub": c.ClientID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = c.KeyID

	secret, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("appleauth: failed to sign client secret: %w", err)
	}
	return secret, nil
}
