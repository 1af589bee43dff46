package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KingDaeWon/dw-web/internal/auth"
)

const refreshKeyPrefix = "refresh_token:"

// RefreshTokenRepository keeps the single current refresh token per member.
// Upsert replaces any prior value; Rotate replaces it only when the caller
// still holds the current value.
type RefreshTokenRepository interface {
	Get(ctx context.Context, memberID string) (string, error)
	Upsert(ctx context.Context, memberID, token string) error
	Rotate(ctx context.Context, memberID, current, next string) error
	Delete(ctx context.Context, memberID string) error
}

type refreshTokenRepository struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

// NewRefreshTokenRepository returns a Redis-backed implementation. Stored
// values expire with the refresh token TTL so abandoned sessions age out.
func NewRefreshTokenRepository(client *redis.Client, ttl, timeout time.Duration) RefreshTokenRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &refreshTokenRepository{client: client, ttl: ttl, timeout: timeout}
}

func (r *refreshTokenRepository) Get(ctx context.Context, memberID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	value, err := r.client.Get(ctx, refreshKey(memberID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", auth.ErrSessionNotFound
		}
		return "", storeError(err)
	}
	return value, nil
}

func (r *refreshTokenRepository) Upsert(ctx context.Context, memberID, token string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, refreshKey(memberID), token, r.ttl).Err(); err != nil {
		return storeError(err)
	}
	return nil
}

// Rotate performs a compare-and-set on the member's refresh token. The WATCH
// guarantees that a racing rotation for the same member invalidates this
// transaction instead of silently overwriting the winner's value.
func (r *refreshTokenRepository) Rotate(ctx context.Context, memberID, current, next string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	key := refreshKey(memberID)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return auth.ErrSessionNotFound
			}
			return storeError(err)
		}
		if stored != current {
			return auth.ErrRefreshMismatch
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, r.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrSessionNotFound), errors.Is(err, auth.ErrRefreshMismatch), errors.Is(err, auth.ErrStoreUnavailable):
		return err
	case errors.Is(err, redis.TxFailedErr):
		// The value changed between read and write; the caller's token is stale.
		return auth.ErrRefreshMismatch
	default:
		return storeError(err)
	}
}

func (r *refreshTokenRepository) Delete(ctx context.Context, memberID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Del(ctx, refreshKey(memberID)).Err(); err != nil {
		return storeError(err)
	}
	return nil
}

func refreshKey(memberID string) string {
	return refreshKeyPrefix + memberID
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
}
