// Package verification orchestrates the wallet-to-social-handle proof flows:
// bio-code challenges, single-shot tweet checks, and the OAuth handshake.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/social-verify-api/internal/domain"
	"github.com/social-verify-api/internal/pkg/id"
	"github.com/social-verify-api/internal/pkg/identity"
	pkgtoken "github.com/social-verify-api/internal/pkg/token"
)

// tweetURLRe extracts the numeric status id from a twitter.com or x.com URL.
var tweetURLRe = regexp.MustCompile(`(?:twitter\.com|x\.com)/[^/]+/status/(\d+)`)

var tweetIDRe = regexp.MustCompile(`^\d+$`)

// ChallengeStore persists in-flight bio challenges keyed by (wallet, handle).
// Get does not auto-expire; the orchestrator checks expiresAt itself.
type ChallengeStore interface {
	Put(ctx context.Context, c *domain.Challenge) error
	Get(ctx context.Context, wallet, handle string) (*domain.Challenge, error)
	Delete(ctx context.Context, wallet, handle string) error
}

// OAuthStateStore persists pending OAuth handshakes keyed by state token.
type OAuthStateStore interface {
	Put(ctx context.Context, s *domain.OAuthState) error
	Get(ctx context.Context, state string) (*domain.OAuthState, error)
	Delete(ctx context.Context, state string) error
}

// VerificationStore persists completed records, one per wallet. Put must be
// an atomic insert that fails with domain.ErrConflict when a record exists.
type VerificationStore interface {
	Put(ctx context.Context, rec *domain.VerificationRecord) error
	Get(ctx context.Context, wallet string) (*domain.VerificationRecord, error)
	Has(ctx context.Context, wallet string) (bool, error)
	List(ctx context.Context) ([]domain.VerificationRecord, error)
}

// SocialAPI fetches public evidence from the social platform.
type SocialAPI interface {
	GetProfile(ctx context.Context, handle string) (*domain.Profile, error)
	GetTweet(ctx context.Context, tweetID string) (*domain.Tweet, error)
}

// OAuthProvider builds authorize URLs and redeems authorization codes.
type OAuthProvider interface {
	AuthorizationURL(state, codeVerifier string) string
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*domain.ProfileEvidence, error)
}

// AttestationSubmitter submits matched evidence for validator consensus.
type AttestationSubmitter interface {
	SubmitAttestation(ctx context.Context, input *domain.AttestationInput) (*domain.Attestation, error)
}

// EvidenceArchive stores an audit snapshot of a committed record.
type EvidenceArchive interface {
	ArchiveRecord(ctx context.Context, rec *domain.VerificationRecord) (string, error)
}

// EventPublisher announces committed records to downstream consumers.
type EventPublisher interface {
	PublishVerified(ctx context.Context, rec *domain.VerificationRecord) error
}

// BioChallenge is the response to a bio-flow initiation.
type BioChallenge struct {
	Code             string `json:"code"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// OAuthInitiation is the response to an OAuth-flow initiation.
type OAuthInitiation struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// Status is the read-only verification state of a wallet.
type Status struct {
	Verified bool                       `json:"verified"`
	Record   *domain.VerificationRecord `json:"record,omitempty"`
}

type Service interface {
	InitiateBio(ctx context.Context, wallet, handle string) (*BioChallenge, error)
	CompleteBio(ctx context.Context, wallet, handle string) (*domain.VerificationRecord, error)
	VerifyTweet(ctx context.Context, wallet, handle, tweetRef string) (*domain.VerificationRecord, error)
	InitiateOAuth(ctx context.Context, wallet, handle string) (*OAuthInitiation, error)
	CompleteOAuthCallback(ctx context.Context, code, state, errParam string) (*domain.VerificationRecord, error)
	GetStatus(ctx context.Context, wallet string) (*Status, error)
	List(ctx context.Context) ([]domain.VerificationRecord, error)
}

// Deps bundles the orchestrator's injected stores and collaborators.
// Archive and Publisher may be nil; their work is best-effort.
type Deps struct {
	Challenges    ChallengeStore
	OAuthStates   OAuthStateStore
	Verifications VerificationStore
	Social        SocialAPI
	OAuth         OAuthProvider
	Attester      AttestationSubmitter
	Archive       EvidenceArchive
	Publisher     EventPublisher

	ChallengeTTL     time.Duration
	MaxAttempts      int
	RequiredHashtags []string
}

type service struct {
	deps Deps
}

func NewService(deps Deps) Service {
	if deps.ChallengeTTL <= 0 {
		deps.ChallengeTTL = 10 * time.Minute
	}
	if deps.MaxAttempts <= 0 {
		deps.MaxAttempts = 5
	}
	return &service{deps: deps}
}

func (s *service) InitiateBio(ctx context.Context, wallet, handle string) (*BioChallenge, error) {
	wallet, handle, err := s.identities(ctx, wallet, handle)
	if err != nil {
		return nil, err
	}

	code, err := pkgtoken.NewVerificationCode()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &domain.Challenge{
		WalletAddress: wallet,
		SocialHandle:  handle,
		Code:          code,
		CreatedAt:     now.Unix(),
		ExpiresAt:     now.Add(s.deps.ChallengeTTL).Unix(),
	}
	if err := s.deps.Challenges.Put(ctx, c); err != nil {
		return nil, err
	}
	return &BioChallenge{
		Code:             code,
		ExpiresInSeconds: int(s.deps.ChallengeTTL.Seconds()),
	}, nil
}

func (s *service) CompleteBio(ctx context.Context, wallet, handle string) (*domain.VerificationRecord, error) {
	wallet, handle, err := s.identities(ctx, wallet, handle)
	if err != nil {
		return nil, err
	}

	c, err := s.deps.Challenges.Get(ctx, wallet, handle)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no pending challenge for this wallet and handle: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if c.Expired(time.Now()) {
		if err := s.deps.Challenges.Delete(ctx, wallet, handle); err != nil {
			slog.Warn("failed to delete expired challenge", "wallet", wallet, "handle", handle, "err", err)
		}
		return nil, fmt.Errorf("challenge expired: %w", domain.ErrExpired)
	}
	if c.Attempts >= s.deps.MaxAttempts {
		return nil, fmt.Errorf("challenge attempt limit reached: %w", domain.ErrTooManyAttempts)
	}
	c.Attempts++
	if err := s.deps.Challenges.Put(ctx, c); err != nil {
		return nil, err
	}

	profile, err := s.deps.Social.GetProfile(ctx, handle)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(strings.ToLower(profile.BioText), strings.ToLower(c.Code)) {
		// Challenge stays in place: the caller may fix their bio and retry
		// until the attempt limit or expiry.
		return nil, fmt.Errorf("verification code not found in profile bio: %w", domain.ErrEvidenceMismatch)
	}

	rec, err := s.commit(ctx, wallet, handle, domain.MethodBio, domain.Evidence{Code: c.Code})
	if err != nil {
		return nil, err
	}
	// Deleted only after attestation and commit succeed, so an attestation
	// failure leaves the challenge retryable.
	if err := s.deps.Challenges.Delete(ctx, wallet, handle); err != nil {
		slog.Warn("failed to delete completed challenge", "wallet", wallet, "handle", handle, "err", err)
	}
	return rec, nil
}

func (s *service) VerifyTweet(ctx context.Context, wallet, handle, tweetRef string) (*domain.VerificationRecord, error) {
	wallet, handle, err := s.identities(ctx, wallet, handle)
	if err != nil {
		return nil, err
	}
	tweetID, err := extractTweetID(tweetRef)
	if err != nil {
		return nil, err
	}

	tweet, err := s.deps.Social.GetTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	text := strings.ToLower(tweet.Text)
	if !strings.Contains(text, wallet) {
		return nil, fmt.Errorf("wallet address not found in tweet: %w", domain.ErrEvidenceMismatch)
	}
	for _, tag := range s.deps.RequiredHashtags {
		if !strings.Contains(text, strings.ToLower(tag)) {
			return nil, fmt.Errorf("required hashtag %s missing from tweet: %w", tag, domain.ErrEvidenceMismatch)
		}
	}

	return s.commit(ctx, wallet, handle, domain.MethodTweet, domain.Evidence{
		TweetID:   tweet.ID,
		TweetText: tweet.Text,
	})
}

func (s *service) InitiateOAuth(ctx context.Context, wallet, handle string) (*OAuthInitiation, error) {
	wallet, handle, err := s.identities(ctx, wallet, handle)
	if err != nil {
		return nil, err
	}

	state, err := pkgtoken.NewStateToken()
	if err != nil {
		return nil, err
	}
	verifier, err := pkgtoken.NewCodeVerifier()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	st := &domain.OAuthState{
		State:         state,
		WalletAddress: wallet,
		SocialHandle:  handle,
		CodeVerifier:  verifier,
		CreatedAt:     now.Unix(),
		ExpiresAt:     now.Add(s.deps.ChallengeTTL).Unix(),
	}
	if err := s.deps.OAuthStates.Put(ctx, st); err != nil {
		return nil, err
	}
	return &OAuthInitiation{
		AuthorizationURL: s.deps.OAuth.AuthorizationURL(state, verifier),
		State:            state,
		ExpiresInSeconds: int(s.deps.ChallengeTTL.Seconds()),
	}, nil
}

func (s *service) CompleteOAuthCallback(ctx context.Context, code, state, errParam string) (*domain.VerificationRecord, error) {
	if errParam != "" {
		return nil, fmt.Errorf("oauth provider returned %q: %w", errParam, domain.ErrBadRequest)
	}
	if code == "" || state == "" {
		return nil, fmt.Errorf("code and state are required: %w", domain.ErrBadRequest)
	}

	st, err := s.deps.OAuthStates.Get(ctx, state)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid or expired state: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	// Single use: consumed on first lookup, before the exchange, success or not.
	if err := s.deps.OAuthStates.Delete(ctx, state); err != nil {
		slog.Warn("failed to delete consumed oauth state", "state", state, "err", err)
	}
	if st.Expired(time.Now()) {
		return nil, fmt.Errorf("invalid or expired state: %w", domain.ErrUnauthorized)
	}

	evidence, err := s.deps.OAuth.ExchangeCode(ctx, code, st.CodeVerifier)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(evidence.Handle, st.SocialHandle) {
		return nil, fmt.Errorf("authenticated profile %q does not match requested handle %q: %w",
			evidence.Handle, st.SocialHandle, domain.ErrEvidenceMismatch)
	}

	return s.commit(ctx, st.WalletAddress, st.SocialHandle, domain.MethodOAuth, domain.Evidence{
		ProfileID:     evidence.ProfileID,
		ProfileHandle: evidence.Handle,
		ProfileName:   evidence.Name,
	})
}

func (s *service) GetStatus(ctx context.Context, wallet string) (*Status, error) {
	wallet, err := identity.Wallet(wallet)
	if err != nil {
		return nil, err
	}
	rec, err := s.deps.Verifications.Get(ctx, wallet)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &Status{Verified: false}, nil
		}
		return nil, err
	}
	return &Status{Verified: true, Record: rec}, nil
}

func (s *service) List(ctx context.Context) ([]domain.VerificationRecord, error) {
	return s.deps.Verifications.List(ctx)
}

// identities validates and normalizes both inputs and rejects wallets that
// already hold a record. Runs before any store mutation in every flow.
func (s *service) identities(ctx context.Context, wallet, handle string) (string, string, error) {
	wallet, err := identity.Wallet(wallet)
	if err != nil {
		return "", "", err
	}
	handle, err = identity.Handle(handle)
	if err != nil {
		return "", "", err
	}
	verified, err := s.deps.Verifications.Has(ctx, wallet)
	if err != nil {
		return "", "", err
	}
	if verified {
		return "", "", fmt.Errorf("wallet already verified: %w", domain.ErrConflict)
	}
	return wallet, handle, nil
}

// commit runs the shared tail of every flow: attest, insert the record
// atomically, then archive and publish best-effort. Nothing is stored unless
// attestation succeeds.
func (s *service) commit(ctx context.Context, wallet, handle, method string, evidence domain.Evidence) (*domain.VerificationRecord, error) {
	att, err := s.deps.Attester.SubmitAttestation(ctx, &domain.AttestationInput{
		WalletAddress: wallet,
		SocialHandle:  handle,
		Method:        method,
		Evidence:      evidence,
	})
	if err != nil {
		return nil, err
	}

	rec := &domain.VerificationRecord{
		RecordID:      id.New(),
		WalletAddress: wallet,
		SocialHandle:  handle,
		Method:        method,
		Evidence:      evidence,
		Attestation:   *att,
		Verified:      true,
		VerifiedAt:    time.Now().UTC(),
	}
	if err := s.deps.Verifications.Put(ctx, rec); err != nil {
		return nil, err
	}

	if s.deps.Archive != nil {
		if _, err := s.deps.Archive.ArchiveRecord(ctx, rec); err != nil {
			slog.Warn("failed to archive evidence snapshot", "wallet", wallet, "record", rec.RecordID, "err", err)
		}
	}
	if s.deps.Publisher != nil {
		if err := s.deps.Publisher.PublishVerified(ctx, rec); err != nil {
			slog.Warn("failed to publish verified event", "wallet", wallet, "record", rec.RecordID, "err", err)
		}
	}
	return rec, nil
}

func extractTweetID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if tweetIDRe.MatchString(ref) {
		return ref, nil
	}
	if m := tweetURLRe.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	return "", fmt.Errorf("invalid tweet reference %q: %w", ref, domain.ErrBadRequest)
}
