// Package flare implements the attestation-network collaborator. Matched
// evidence is submitted for validator consensus; no verification record is
// committed without a successful attestation.
package flare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/social-verify-api/internal/config"
	"github.com/social-verify-api/internal/domain"
)

// Client submits attestation requests over HTTP. The call can take seconds;
// the orchestrator awaits it before committing anything.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		endpoint: cfg.AttestationURL,
		apiKey:   cfg.AttestationAPIKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type attestationResponse struct {
	AttestationID    string `json:"attestation_id"`
	Proof            string `json:"proof"`
	ConsensusReached bool   `json:"consensus_reached"`
	ValidatorCount   int    `json:"validator_count"`
}

// SubmitAttestation sends the matched evidence to the attestation network
// and returns the consensus result. A response without consensus is
// reported as a collaborator failure; the caller must not commit.
func (c *Client) SubmitAttestation(ctx context.Context, input *domain.AttestationInput) (*domain.Attestation, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal attestation input: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("attestation request: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attestation network returned %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	var ar attestationResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("decode attestation response: %v: %w", err, domain.ErrUnavailable)
	}
	if !ar.ConsensusReached {
		return nil, fmt.Errorf("attestation consensus not reached (%d validators): %w", ar.ValidatorCount, domain.ErrUnavailable)
	}
	return &domain.Attestation{
		AttestationID:    ar.AttestationID,
		Proof:            ar.Proof,
		ConsensusReached: ar.ConsensusReached,
		ValidatorCount:   ar.ValidatorCount,
	}, nil
}
