package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"e-wallet-core/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// ChallengeStore implements ports.ChallengeStore using Redis. Challenges
// are keyed by purpose and user, so each user holds at most one active
// challenge per flow, and the Redis TTL bounds the challenge lifetime even
// if the process never clears it.
type ChallengeStore struct {
	client *goredis.Client
	prefix string
}

// NewChallengeStore creates a new Redis-backed challenge store.
func NewChallengeStore(client *goredis.Client) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		prefix: "challenge:",
	}
}

func (s *ChallengeStore) key(userID uuid.UUID, purpose domain.ChallengePurpose) string {
	return fmt.Sprintf("%s%s:%s", s.prefix, purpose, userID)
}

// Put stores a challenge, replacing any existing one for this user+purpose.
func (s *ChallengeStore) Put(ctx context.Context, userID uuid.UUID, purpose domain.ChallengePurpose, challenge domain.TransferChallenge, ttl time.Duration) error {
	payload, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID, purpose), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis challenge put: %w", err)
	}
	return nil
}

// Get retrieves the active challenge for this user+purpose.
// Returns nil, nil if none exists.
func (s *ChallengeStore) Get(ctx context.Context, userID uuid.UUID, purpose domain.ChallengePurpose) (*domain.TransferChallenge, error) {
	val, err := s.client.Get(ctx, s.key(userID, purpose)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis challenge get: %w", err)
	}

	challenge := &domain.TransferChallenge{}
	if err := json.Unmarshal(val, challenge); err != nil {
		return nil, fmt.Errorf("unmarshal challenge: %w", err)
	}
	return challenge, nil
}

// Clear consumes the challenge for this user+purpose. Clearing a missing
// challenge is a no-op.
func (s *ChallengeStore) Clear(ctx context.Context, userID uuid.UUID, purpose domain.ChallengePurpose) error {
	if err := s.client.Del(ctx, s.key(userID, purpose)).Err(); err != nil {
		return fmt.Errorf("redis challenge clear: %w", err)
	}
	return nil
}
