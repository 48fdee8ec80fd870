package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"friend-scheduler-backend/pkg/appleauth"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	appleIssuer  = "https://appleid.apple.com"
	appleJWKSURL = "https://appleid.apple.com/auth/keys"
)

var appleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://appleid.apple.com/auth/authorize",
	TokenURL: "https://appleid.apple.com/auth/token",
	// Apple requires client_secret_post
	AuthStyle: oauth2.AuthStyleInParams,
}

// appleUserPayload is the "user" form field Apple posts to the redirect URI
// on the user's very first consent. Later logins omit it entirely.
type appleUserPayload struct {
	Name struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"name"`
	Email string `json:"email"`
}

type appleProvider struct {
	creds       appleauth.Config
	redirectURI string

	jwksOnce sync.Once
	jwks     *keyfunc.JWKS
	jwksErr  error
}

// NewApple builds the Apple provider. The caller must have validated the
// credential config first; registration is gated on creds.Configured().
func NewApple(creds appleauth.Config, redirectURI string) Provider {
	return &appleProvider{creds: creds, redirectURI: redirectURI}
}

func (p *appleProvider) ID() string {
	return "apple"
}

// oauthConfig assembles the exchange config with the given client secret.
// The secret lives five minutes, so it is generated per call rather than at
// provider construction.
func (p *appleProvider) oauthConfig(clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.creds.ClientID,
		ClientSecret: clientSecret,
		RedirectURL:  p.redirectURI,
		Scopes:       []string{"name", "email"},
		Endpoint:     appleEndpoint,
	}
}

func (p *appleProvider) AuthCodeURL(state string) string {
	// Apple mandates response_mode=form_post when name/email scopes are
	// requested; the callback arrives as a cross-site POST.
	cfg := p.oauthConfig("")
	return cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("response_mode", "form_post"))
}

// keyfunc lazily fetches Apple's signing keys, shared across logins and
// refreshed in the background.
func (p *appleProvider) keyfunc() (jwt.Keyfunc, error) {
	p.jwksOnce.Do(func() {
		p.jwks, p.jwksErr = keyfunc.Get(appleJWKSURL, keyfunc.Options{
			RefreshInterval: time.Hour,
			RefreshErrorHandler: func(err error) {
				log.Printf("[Auth] Apple JWKS refresh failed: %v", err)
			},
		})
	})
	if p.jwksErr != nil {
		return nil, fmt.Errorf("apple: fetching JWKS: %w", p.jwksErr)
	}
	return p.jwks.Keyfunc, nil
}

func (p *appleProvider) Exchange(ctx context.Context, code string, form url.Values) (*Claims, *oauth2.Token, error) {
	secret, err := p.creds.ClientSecret()
	if err != nil {
		return nil, nil, err
	}

	token, err := p.oauthConfig(secret).Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("apple: exchanging code: %w", err)
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		return nil, nil, fmt.Errorf("apple: token response missing id_token")
	}

	kf, err := p.keyfunc()
	if err != nil {
		return nil, nil, err
	}

	claims, err := parseAppleIDToken(rawIDToken, kf, p.creds.ClientID)
	if err != nil {
		return nil, nil, err
	}

	// Merge the first-consent user payload, when present.
	if raw := form.Get("user"); raw != "" {
		var payload appleUserPayload
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			claims.GivenName = payload.Name.FirstName
			claims.FamilyName = payload.Name.LastName
			if claims.Email == "" {
				claims.Email = payload.Email
			}
		}
	}

	return claims, token, nil
}

// parseAppleIDToken verifies the id_token signature against Apple's JWKS
// and checks issuer and audience before reading sub/email.
func parseAppleIDToken(rawIDToken string, kf jwt.Keyfunc, clientID string) (*Claims, error) {
	var idClaims jwt.MapClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
		jwt.WithIssuer(appleIssuer),
		jwt.WithAudience(clientID),
	)
	if _, err := parser.ParseWithClaims(rawIDToken, &idClaims, kf); err != nil {
		return nil, fmt.Errorf("apple: verifying id_token: %w", err)
	}

	claims := &Claims{}
	if sub, ok := idClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if email, ok := idClaims["email"].(string); ok {
		claims.Email = email
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("apple: id_token missing sub claim")
	}
	return claims, nil
}
