package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenProvider exchanges the stored refresh token for a short-lived access
// token. The token is fetched fresh per call and never cached or persisted.
type TokenProvider struct {
	cfg          *oauth2.Config
	refreshToken string
}

func NewTokenProvider(clientID, clientSecret, refreshToken string) *TokenProvider {
	return &TokenProvider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
		},
		refreshToken: refreshToken,
	}
}

// AccessToken performs the refresh-token exchange. The caller must treat the
// returned value as a secret: it is never written to logs or disk.
func (p *TokenProvider) AccessToken(ctx context.Context) (string, error) {
	if p.refreshToken == "" {
		return "", fmt.Errorf("google refresh token not configured")
	}
	src := p.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken})
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("google token exchange failed: %w", err)
	}
	return tok.AccessToken, nil
}
