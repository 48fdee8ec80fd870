package provider

import (
	"context"
	"net/url"

	"golang.org/x/oauth2"
)

// Claims is the identity information a provider hands back after a completed
// authorization-code exchange. Fields a provider cannot supply stay empty.
type Claims struct {
	Subject    string // provider-scoped "sub"
	Email      string
	Name       string // flat display name (Google)
	GivenName  string // structured name parts (Apple, first consent only)
	FamilyName string
	Picture    string
}

// Provider is one configured identity provider.
type Provider interface {
	// ID is the registration identifier, e.g. "google" or "apple".
	ID() string

	// AuthCodeURL builds the authorization redirect for the given CSRF state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for tokens and identity claims.
	// form carries the raw callback parameters; Apple reads its
	// first-consent "user" payload from it.
	Exchange(ctx context.Context, code string, form url.Values) (*Claims, *oauth2.Token, error)
}
