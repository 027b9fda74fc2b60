// Package twitter implements the social-platform collaborator: profile bio
// and tweet lookups over the platform's REST API.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/social-verify-api/internal/config"
	"github.com/social-verify-api/internal/domain"
)

// Client calls the social platform API with an app bearer token.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.SocialAPIBaseURL,
		token:   cfg.SocialAPIToken,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type userResponse struct {
	Data struct {
		ID          string `json:"id"`
		Username    string `json:"username"`
		Description string `json:"description"`
	} `json:"data"`
}

type tweetResponse struct {
	Data struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		AuthorID string `json:"author_id"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
}

// GetProfile fetches a user's profile by handle. The bio text lives in the
// profile description field.
func (c *Client) GetProfile(ctx context.Context, handle string) (*domain.Profile, error) {
	u := fmt.Sprintf("%s/users/by/username/%s?user.fields=description", c.baseURL, url.PathEscape(handle))
	var resp userResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Data.ID == "" {
		return nil, fmt.Errorf("profile %q not found: %w", handle, domain.ErrNotFound)
	}
	return &domain.Profile{
		Handle:  resp.Data.Username,
		BioText: resp.Data.Description,
	}, nil
}

// GetTweet fetches a tweet by numeric id, expanding the author so callers
// can cross-check the posting handle.
func (c *Client) GetTweet(ctx context.Context, tweetID string) (*domain.Tweet, error) {
	u := fmt.Sprintf("%s/tweets/%s?expansions=author_id&user.fields=username", c.baseURL, url.PathEscape(tweetID))
	var resp tweetResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Data.ID == "" {
		return nil, fmt.Errorf("tweet %q not found: %w", tweetID, domain.ErrNotFound)
	}
	t := &domain.Tweet{ID: resp.Data.ID, Text: resp.Data.Text}
	for _, usr := range resp.Includes.Users {
		if usr.ID == resp.Data.AuthorID {
			t.AuthorHandle = usr.Username
			break
		}
	}
	return t, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("social platform request: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("social platform resource: %w", domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("social platform returned %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode social platform response: %v: %w", err, domain.ErrUnavailable)
	}
	return nil
}
