// Package oauth implements the OAuth collaborator: PKCE authorization URL
// construction and the authorization-code exchange.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/social-verify-api/internal/config"
	"github.com/social-verify-api/internal/domain"
	"github.com/social-verify-api/internal/pkg/token"
)

// Client builds authorize URLs and exchanges codes against the provider's
// token endpoint.
type Client struct {
	clientID     string
	authorizeURL string
	tokenURL     string
	redirectURL  string
	client       *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		clientID:     cfg.OAuthClientID,
		authorizeURL: cfg.OAuthAuthorizeURL,
		tokenURL:     cfg.OAuthTokenURL,
		redirectURL:  cfg.OAuthRedirectURL,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// AuthorizationURL builds the S256 PKCE authorize URL for a handshake.
func (c *Client) AuthorizationURL(state, codeVerifier string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURL)
	q.Set("scope", "users.read tweet.read")
	q.Set("state", state)
	q.Set("code_challenge", token.CodeChallengeS256(codeVerifier))
	q.Set("code_challenge_method", "S256")
	return c.authorizeURL + "?" + q.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"data"`
}

// ExchangeCode redeems the authorization code with the PKCE verifier and
// fetches the authenticated profile as evidence.
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (*domain.ProfileEvidence, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("redirect_uri", c.redirectURL)
	form.Set("code_verifier", codeVerifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth token exchange: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth token endpoint returned %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}
	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode token response: %v: %w", err, domain.ErrUnavailable)
	}

	return c.fetchProfile(ctx, tok.AccessToken)
}

func (c *Client) fetchProfile(ctx context.Context, accessToken string) (*domain.ProfileEvidence, error) {
	// The users/me endpoint lives next to the token endpoint on the same API host.
	meURL := strings.TrimSuffix(c.tokenURL, "/oauth2/token") + "/users/me"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, meURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oauth profile fetch: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oauth profile endpoint returned %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}
	var me meResponse
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("decode profile response: %v: %w", err, domain.ErrUnavailable)
	}
	return &domain.ProfileEvidence{
		ProfileID: me.Data.ID,
		Handle:    me.Data.Username,
		Name:      me.Data.Name,
	}, nil
}
