package provider

import (
	"log"

	"friend-scheduler-backend/pkg/appleauth"
	"friend-scheduler-backend/pkg/config"
)

// Registry holds the identity providers available for login, assembled once
// at startup.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry registers Google unconditionally and Apple only when its
// credential material is complete. A malformed Apple key is a hard
// configuration error, surfaced here instead of at login time.
func NewRegistry(cfg *config.Config) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider)}

	r.add(NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI))

	appleCreds := appleauth.Config{
		TeamID:     cfg.AppleTeamID,
		KeyID:      cfg.AppleKeyID,
		ClientID:   cfg.AppleClientID,
		PrivateKey: cfg.ApplePrivateKey,
	}
	if appleCreds.Configured() {
		if _, err := appleCreds.ParseKey(); err != nil {
			return nil, err
		}
		r.add(NewApple(appleCreds, cfg.AppleRedirectURI))
	} else {
		log.Println("[Auth] Apple credentials not configured, Apple sign-in disabled")
	}

	return r, nil
}

func (r *Registry) add(p Provider) {
	r.providers[p.ID()] = p
	r.order = append(r.order, p.ID())
}

// Lookup returns the provider registered under id, if any.
func (r *Registry) Lookup(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// IDs lists registered provider identifiers in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}
