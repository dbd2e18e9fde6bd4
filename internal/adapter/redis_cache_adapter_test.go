package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"mcqgen/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const extractedKey = "mcqgen:extract:text:9f86d081884c7d65"

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(extractedKey).SetVal("page one text")
		val, err := adapter.Get(ctx, extractedKey)
		assert.NoError(t, err)
		assert.Equal(t, "page one text", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(extractedKey).SetErr(redis.Nil)
		val, err := adapter.Get(ctx, extractedKey)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection reset")
		mock.ExpectGet(extractedKey).SetErr(redisErr)
		val, err := adapter.Get(ctx, extractedKey)
		assert.ErrorIs(t, err, redisErr)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()
	ttl := 24 * time.Hour

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(extractedKey, "text", ttl).SetVal("OK")
		assert.NoError(t, adapter.Set(ctx, extractedKey, "text", ttl))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("OOM command not allowed")
		mock.ExpectSet(extractedKey, "text", ttl).SetErr(redisErr)
		assert.ErrorIs(t, adapter.Set(ctx, extractedKey, "text", ttl), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, adapter.Ping(ctx))

	redisErr := errors.New("dial tcp: connection refused")
	mock.ExpectPing().SetErr(redisErr)
	assert.ErrorIs(t, adapter.Ping(ctx), redisErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
