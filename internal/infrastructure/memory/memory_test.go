package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/social-verify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeStore_RoundTrip(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "0xabc", "alice")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, s.Put(ctx, &domain.Challenge{
		WalletAddress: "0xabc",
		SocialHandle:  "alice",
		Code:          "AAAA1111",
	}))

	got, err := s.Get(ctx, "0xabc", "alice")
	require.NoError(t, err)
	assert.Equal(t, "AAAA1111", got.Code)

	// Put overwrites: a re-initiation replaces the prior challenge.
	require.NoError(t, s.Put(ctx, &domain.Challenge{
		WalletAddress: "0xabc",
		SocialHandle:  "alice",
		Code:          "BBBB2222",
	}))
	got, err = s.Get(ctx, "0xabc", "alice")
	require.NoError(t, err)
	assert.Equal(t, "BBBB2222", got.Code)

	require.NoError(t, s.Delete(ctx, "0xabc", "alice"))
	_, err = s.Get(ctx, "0xabc", "alice")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Deleting an absent entry is not an error.
	assert.NoError(t, s.Delete(ctx, "0xabc", "alice"))
}

func TestChallengeStore_KeyedPerPair(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.Challenge{WalletAddress: "0xabc", SocialHandle: "alice", Code: "A"}))
	require.NoError(t, s.Put(ctx, &domain.Challenge{WalletAddress: "0xabc", SocialHandle: "bob", Code: "B"}))

	got, err := s.Get(ctx, "0xabc", "alice")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Code)
	got, err = s.Get(ctx, "0xabc", "bob")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Code)
}

func TestChallengeStore_GetReturnsCopy(t *testing.T) {
	s := NewChallengeStore()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, &domain.Challenge{WalletAddress: "0xabc", SocialHandle: "alice", Attempts: 0}))

	got, err := s.Get(ctx, "0xabc", "alice")
	require.NoError(t, err)
	got.Attempts = 99

	// Mutating the returned value must not leak into the store.
	again, err := s.Get(ctx, "0xabc", "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Attempts)
}

func TestOAuthStateStore_RoundTrip(t *testing.T) {
	s := NewOAuthStateStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.OAuthState{State: "tok-1", WalletAddress: "0xabc"}))

	got, err := s.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", got.WalletAddress)

	require.NoError(t, s.Delete(ctx, "tok-1"))
	_, err = s.Get(ctx, "tok-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerificationStore_PutIsInsertOnly(t *testing.T) {
	s := NewVerificationStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.VerificationRecord{WalletAddress: "0xabc", Method: domain.MethodBio}))

	err := s.Put(ctx, &domain.VerificationRecord{WalletAddress: "0xabc", Method: domain.MethodTweet})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// The first write wins.
	got, err := s.Get(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodBio, got.Method)
}

func TestVerificationStore_ConcurrentPut_SingleWinner(t *testing.T) {
	s := NewVerificationStore()
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	errs := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Put(ctx, &domain.VerificationRecord{WalletAddress: "0xabc"})
		}()
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		if err == nil {
			wins++
		} else if errors.Is(err, domain.ErrConflict) {
			conflicts++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)
}

func TestVerificationStore_HasAndList(t *testing.T) {
	s := NewVerificationStore()
	ctx := context.Background()

	has, err := s.Has(ctx, "0xabc")
	require.NoError(t, err)
	assert.False(t, has)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)

	require.NoError(t, s.Put(ctx, &domain.VerificationRecord{WalletAddress: "0xabc"}))
	require.NoError(t, s.Put(ctx, &domain.VerificationRecord{WalletAddress: "0xdef"}))

	has, err = s.Has(ctx, "0xabc")
	require.NoError(t, err)
	assert.True(t, has)

	recs, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
