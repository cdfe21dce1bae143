package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRefresh(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewTokenRepo(rdb)

	ttl := 24 * time.Hour
	mock.ExpectSet("refresh:abc", "42", ttl).SetVal("OK")
	mock.ExpectSAdd("user_tokens:42", "abc").SetVal(1)
	mock.ExpectExpire("user_tokens:42", ttl).SetVal(true)

	err := repo.StoreRefresh(context.Background(), 42, "abc", ttl)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefresh(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewTokenRepo(rdb)

	mock.ExpectGet("refresh:abc").SetVal("42")
	userID, err := repo.ValidateRefresh(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshUnknownHash(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewTokenRepo(rdb)

	mock.ExpectGet("refresh:missing").RedisNil()
	_, err := repo.ValidateRefresh(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeByHash(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewTokenRepo(rdb)

	mock.ExpectGet("refresh:abc").SetVal("42")
	mock.ExpectSRem("user_tokens:42", "abc").SetVal(1)
	mock.ExpectDel("refresh:abc").SetVal(1)

	err := repo.RevokeByHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevokeByHashUnknown(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewTokenRepo(rdb)

	mock.ExpectGet("refresh:gone").RedisNil()
	err := repo.RevokeByHash(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRevokeAllForUser(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	repo := NewTokenRepo(rdb)

	mock.ExpectSMembers("user_tokens:42").SetVal([]string{"a", "b"})
	mock.ExpectDel("refresh:a").SetVal(1)
	mock.ExpectDel("refresh:b").SetVal(1)
	mock.ExpectDel("user_tokens:42").SetVal(1)

	err := repo.RevokeAllForUser(context.Background(), 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
