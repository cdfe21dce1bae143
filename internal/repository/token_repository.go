package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepo persists refresh-token hashes in Redis with an explicit
// TTL.  Only the SHA-256 hash of a refresh token is ever stored; the
// raw token is returned to the client once and never kept server-side.
// Keys expire on their own, so no sweeper is needed.  A per-user set
// of hashes allows revoking every session of a user at once.
type TokenRepo struct {
	rdb *redis.Client
}

// NewTokenRepo returns a TokenRepo bound to the given Redis client.
func NewTokenRepo(rdb *redis.Client) *TokenRepo { return &TokenRepo{rdb: rdb} }

// ErrTokenNotFound is returned when a refresh token hash is unknown,
// expired or revoked.
var ErrTokenNotFound = errors.New("refresh token not found")

func refreshKey(hash string) string  { return "refresh:" + hash }
func userTokensKey(id uint64) string { return "user_tokens:" + strconv.FormatUint(id, 10) }

// StoreRefresh records a refresh token hash for the user.  The key
// carries the token's full TTL; the per-user index is refreshed to at
// least the same lifetime.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, refreshKey(tokenHash), strconv.FormatUint(userID, 10), ttl).Err(); err != nil {
		return err
	}
	if err := r.rdb.SAdd(ctx, userTokensKey(userID), tokenHash).Err(); err != nil {
		return err
	}
	return r.rdb.Expire(ctx, userTokensKey(userID), ttl).Err()
}

// ValidateRefresh returns the owning user ID when a live token hash
// exists.  Expired hashes vanish from Redis and surface as
// ErrTokenNotFound.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	val, err := r.rdb.Get(ctx, refreshKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrTokenNotFound
	}
	return userID, nil
}

// RevokeByHash invalidates a single refresh token.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	val, err := r.rdb.Get(ctx, refreshKey(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrTokenNotFound
	}
	if err != nil {
		return err
	}
	if userID, perr := strconv.ParseUint(val, 10, 64); perr == nil {
		_ = r.rdb.SRem(ctx, userTokensKey(userID), tokenHash).Err()
	}
	return r.rdb.Del(ctx, refreshKey(tokenHash)).Err()
}

// RevokeAllForUser invalidates every live refresh token of a user.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	hashes, err := r.rdb.SMembers(ctx, userTokensKey(userID)).Result()
	if err != nil {
		return err
	}
	for _, h := range hashes {
		if err := r.rdb.Del(ctx, refreshKey(h)).Err(); err != nil {
			return err
		}
	}
	return r.rdb.Del(ctx, userTokensKey(userID)).Err()
}
