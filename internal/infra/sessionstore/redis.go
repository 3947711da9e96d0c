package sessionstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "checkout:session:"

const (
	// minTTL keeps a session alive long enough to be swept by completion
	// even when its logical expiry is imminent.
	minTTL = time.Minute
	// skewBuffer pads the backing TTL past the logical expiry so completion,
	// not Redis, decides when a session is expired.
	skewBuffer = 5 * time.Minute
)

// RedisStore holds ephemeral checkout sessions under a TTL sized from the
// session's logical expiry. The backing TTL is a safety net against orphaned
// sessions; logical expiry is enforced by the orchestrator.
type RedisStore struct {
	client *redis.Client
	clock  clock.Clock
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, clk clock.Clock, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		clock:  clk,
		logger: logger,
	}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

// ttlFor computes the backing TTL: time until logical expiry plus the skew
// buffer, floored at minTTL.
func ttlFor(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now) + skewBuffer
	if ttl < minTTL {
		ttl = minTTL
	}
	return ttl
}

func (s *RedisStore) Save(ctx context.Context, sess *checkout.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return infra.WrapRepoErr("failed to serialize session", err, infra.KindSerialization)
	}

	ttl := ttlFor(sess.ExpiresAt, s.clock.Now())
	if err := s.client.Set(ctx, sessionKey(sess.SessionID), payload, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to save session", err, infra.KindUnavailable)
	}
	return nil
}

// FindByID treats a corrupted payload as not found: a session that cannot be
// deserialized cannot be completed and should not crash the caller.
func (s *RedisStore) FindByID(ctx context.Context, sessionID string) (*checkout.Session, error) {
	value, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find session", err, infra.KindUnavailable)
	}

	var sess checkout.Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		s.logger.Warn("discarding corrupted session payload", "session_id", sessionID, "error", err.Error())
		return nil, infra.WrapRepoErr("session payload corrupted", err, infra.KindNotFound)
	}
	return &sess, nil
}

// DeleteByID is idempotent; deleting an absent key is not an error.
func (s *RedisStore) DeleteByID(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return infra.WrapRepoErr("failed to delete session", err, infra.KindUnavailable)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, infra.WrapRepoErr("failed to check session existence", err, infra.KindUnavailable)
	}
	return n > 0, nil
}
