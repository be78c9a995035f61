// Package identity integrates the external identity provider that owns
// signup, login and session lifecycle. The application never checks
// credentials itself; it runs the provider's OAuth2 authorization-code
// flow and reads the resulting profile.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/ameliahb/go-inner-library/internal/config"
)

// CallbackPath is where the provider redirects after login. It must match
// the application configuration registered with the provider.
const CallbackPath = "/auth/callback"

// User is the profile the provider reports for an authenticated user.
type User struct {
	ID        string `json:"sub"`
	Email     string `json:"email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
}

// DisplayName returns the user's name, falling back to the email address.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// Provider runs the OAuth2 flow against the identity provider.
type Provider struct {
	oauth       *oauth2.Config
	userinfoURL string
}

// New creates a Provider from configuration.
func New(cfg *config.Config) *Provider {
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.IdentityClientID,
			ClientSecret: cfg.IdentityClientSecret,
			RedirectURL:  cfg.BaseURL + CallbackPath,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.IdentityAuthURL,
				TokenURL: cfg.IdentityTokenURL,
			},
		},
		userinfoURL: cfg.IdentityUserinfoURL,
	}
}

// AuthCodeURL returns the provider's login URL carrying the CSRF state.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades the callback code for a token.
func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}

// FetchUser reads the authenticated user's profile from the provider's
// userinfo endpoint.
func (p *Provider) FetchUser(ctx context.Context, token *oauth2.Token) (*User, error) {
	client := p.oauth.Client(ctx, token)

	resp, err := client.Get(p.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("userinfo response missing subject")
	}
	return &user, nil
}
