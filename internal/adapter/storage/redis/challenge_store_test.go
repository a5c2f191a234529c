package redis

import (
	"context"
	"testing"
	"time"

	"e-wallet-core/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChallenge() domain.TransferChallenge {
	return domain.TransferChallenge{
		Secret:   "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP",
		IssuedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestChallengeStore_PutAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewChallengeStore(client)
	ctx := context.Background()

	userID := uuid.New()
	challenge := newTestChallenge()

	// Get before put => nil
	result, err := store.Get(ctx, userID, domain.ChallengePurposeTransfer)
	assert.NoError(t, err)
	assert.Nil(t, result)

	err = store.Put(ctx, userID, domain.ChallengePurposeTransfer, challenge, 15*time.Minute)
	require.NoError(t, err)

	result, err = store.Get(ctx, userID, domain.ChallengePurposeTransfer)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, challenge.Secret, result.Secret)
	assert.True(t, challenge.IssuedAt.Equal(result.IssuedAt))
}

func TestChallengeStore_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewChallengeStore(client)
	ctx := context.Background()

	userID := uuid.New()

	err := store.Put(ctx, userID, domain.ChallengePurposeTransfer, newTestChallenge(), 1*time.Second)
	require.NoError(t, err)

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := store.Get(ctx, userID, domain.ChallengePurposeTransfer)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired challenge should return nil")
}

func TestChallengeStore_PurposeIsolation(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewChallengeStore(client)
	ctx := context.Background()

	userID := uuid.New()
	transfer := newTestChallenge()
	login := newTestChallenge()
	login.Secret = "LOGINSECRETLOGINSECRETLOGINSECRE"

	require.NoError(t, store.Put(ctx, userID, domain.ChallengePurposeTransfer, transfer, time.Hour))
	require.NoError(t, store.Put(ctx, userID, domain.ChallengePurposeLogin, login, time.Hour))

	// Clearing the login challenge must not touch the transfer challenge.
	require.NoError(t, store.Clear(ctx, userID, domain.ChallengePurposeLogin))

	result, err := store.Get(ctx, userID, domain.ChallengePurposeTransfer)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, transfer.Secret, result.Secret)

	gone, err := store.Get(ctx, userID, domain.ChallengePurposeLogin)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestChallengeStore_PutReplaces(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewChallengeStore(client)
	ctx := context.Background()

	userID := uuid.New()
	first := newTestChallenge()
	second := newTestChallenge()
	second.Secret = "SECONDSECRETSECONDSECRETSECONDSE"

	require.NoError(t, store.Put(ctx, userID, domain.ChallengePurposeTransfer, first, time.Hour))
	require.NoError(t, store.Put(ctx, userID, domain.ChallengePurposeTransfer, second, time.Hour))

	result, err := store.Get(ctx, userID, domain.ChallengePurposeTransfer)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, second.Secret, result.Secret)
}

func TestChallengeStore_ClearMissingIsNoop(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewChallengeStore(client)

	err := store.Clear(context.Background(), uuid.New(), domain.ChallengePurposeTransfer)
	assert.NoError(t, err)
}
