// Package memory contains concurrency-safe in-memory implementations of the
// verification stores. Used when AWS is not configured and in tests; entries
// do not survive a restart, which is acceptable for verification attempts.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/social-verify-api/internal/domain"
)

// ChallengeStore is a mutex-guarded map of in-flight bio challenges, keyed
// by wallet_handle. No eviction: entries are removed by the completion path
// or by the orchestrator's lazy expiry check.
type ChallengeStore struct {
	mu   sync.RWMutex
	data map[string]domain.Challenge
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{data: make(map[string]domain.Challenge)}
}

func (s *ChallengeStore) Put(ctx context.Context, c *domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[c.Key()] = *c
	return nil
}

func (s *ChallengeStore) Get(ctx context.Context, wallet, handle string) (*domain.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[wallet+"_"+handle]
	if !ok {
		return nil, fmt.Errorf("challenge not found: %w", domain.ErrNotFound)
	}
	return &c, nil
}

func (s *ChallengeStore) Delete(ctx context.Context, wallet, handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, wallet+"_"+handle)
	return nil
}

// OAuthStateStore is a mutex-guarded map of pending OAuth handshakes keyed
// by the state token.
type OAuthStateStore struct {
	mu   sync.RWMutex
	data map[string]domain.OAuthState
}

func NewOAuthStateStore() *OAuthStateStore {
	return &OAuthStateStore{data: make(map[string]domain.OAuthState)}
}

func (s *OAuthStateStore) Put(ctx context.Context, st *domain.OAuthState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[st.State] = *st
	return nil
}

func (s *OAuthStateStore) Get(ctx context.Context, state string) (*domain.OAuthState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.data[state]
	if !ok {
		return nil, fmt.Errorf("oauth state not found: %w", domain.ErrNotFound)
	}
	return &st, nil
}

func (s *OAuthStateStore) Delete(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, state)
	return nil
}

// VerificationStore holds completed records keyed by wallet address.
type VerificationStore struct {
	mu   sync.RWMutex
	data map[string]domain.VerificationRecord
}

func NewVerificationStore() *VerificationStore {
	return &VerificationStore{data: make(map[string]domain.VerificationRecord)}
}

// Put inserts atomically: the exists check and the write share one critical
// section, so concurrent completions for the same wallet resolve
// first-committer-wins with domain.ErrConflict for the loser.
func (s *VerificationStore) Put(ctx context.Context, rec *domain.VerificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[rec.WalletAddress]; ok {
		return fmt.Errorf("wallet already verified: %w", domain.ErrConflict)
	}
	s.data[rec.WalletAddress] = *rec
	return nil
}

func (s *VerificationStore) Get(ctx context.Context, wallet string) (*domain.VerificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[wallet]
	if !ok {
		return nil, fmt.Errorf("verification record not found: %w", domain.ErrNotFound)
	}
	return &rec, nil
}

func (s *VerificationStore) Has(ctx context.Context, wallet string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[wallet]
	return ok, nil
}

func (s *VerificationStore) List(ctx context.Context) ([]domain.VerificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]domain.VerificationRecord, 0, len(s.data))
	for _, rec := range s.data {
		recs = append(recs, rec)
	}
	return recs, nil
}
