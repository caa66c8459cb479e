package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	"post-board-service/internal/infrastructure/logger"
)

func newTestCache(t *testing.T) (*PostCache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	client := NewClientFromRedis(db, logger.New("test"))
	return NewPostCache(client, logger.New("test"), time.Minute), mock
}

func TestPostCache_GetPost(t *testing.T) {
	detail := &model.PostDetail{
		ID:        7,
		Title:     "title",
		Content:   "content",
		Author:    "alice",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	payload, err := json.Marshal(detail)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mocks   func(m redismock.ClientMock)
		want    *model.PostDetail
		wantErr error
	}{
		{
			name: "hit",
			mocks: func(m redismock.ClientMock) {
				m.ExpectGet("post:7").SetVal(string(payload))
			},
			want: detail,
		},
		{
			name: "miss",
			mocks: func(m redismock.ClientMock) {
				m.ExpectGet("post:7").RedisNil()
			},
			wantErr: custom_errors.ErrCacheMiss,
		},
		{
			name: "tombstone reads as miss",
			mocks: func(m redismock.ClientMock) {
				m.ExpectGet("post:7").SetVal("null")
			},
			wantErr: custom_errors.ErrCacheMiss,
		},
		{
			name: "redis error",
			mocks: func(m redismock.ClientMock) {
				m.ExpectGet("post:7").SetErr(errors.New("connection refused"))
			},
			wantErr: errors.New("failed to get post from cache"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache, m := newTestCache(t)
			tt.mocks(m)

			got, err := cache.GetPost(context.Background(), 7)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, custom_errors.ErrCacheMiss) {
					assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, m.ExpectationsWereMet())
		})
	}
}

func TestPostCache_SetPost(t *testing.T) {
	detail := &model.PostDetail{ID: 3, Title: "t", Content: "c", Author: "bob"}
	payload, err := json.Marshal(detail)
	require.NoError(t, err)

	t.Run("fills empty key", func(t *testing.T) {
		cache, m := newTestCache(t)
		m.ExpectSetNX("post:3", payload, time.Minute).SetVal(true)

		require.NoError(t, cache.SetPost(context.Background(), detail))
		assert.NoError(t, m.ExpectationsWereMet())
	})

	t.Run("never overwrites an existing key", func(t *testing.T) {
		cache, m := newTestCache(t)
		m.ExpectSetNX("post:3", payload, time.Minute).SetVal(false)

		require.NoError(t, cache.SetPost(context.Background(), detail))
		assert.NoError(t, m.ExpectationsWereMet())
	})

	t.Run("redis error", func(t *testing.T) {
		cache, m := newTestCache(t)
		m.ExpectSetNX("post:3", payload, time.Minute).SetErr(errors.New("boom"))

		assert.Error(t, cache.SetPost(context.Background(), detail))
		assert.NoError(t, m.ExpectationsWereMet())
	})

	t.Run("nil post", func(t *testing.T) {
		cache, _ := newTestCache(t)
		assert.Error(t, cache.SetPost(context.Background(), nil))
	})
}

func TestPostCache_InvalidatePost(t *testing.T) {
	cache, m := newTestCache(t)
	m.ExpectSet("post:3", []byte("null"), defaultTombstoneTTL).SetVal("OK")
	m.ExpectSet("post:5", []byte("null"), defaultTombstoneTTL).SetErr(errors.New("boom"))

	assert.NoError(t, cache.InvalidatePost(context.Background(), 3))
	assert.Error(t, cache.InvalidatePost(context.Background(), 5))
	assert.NoError(t, m.ExpectationsWereMet())
}

func TestPostCache_InvalidateThenFill(t *testing.T) {
	detail := &model.PostDetail{ID: 3, Title: "stale", Content: "c", Author: "bob"}
	payload, err := json.Marshal(detail)
	require.NoError(t, err)

	cache, m := newTestCache(t)
	m.ExpectSet("post:3", []byte("null"), defaultTombstoneTTL).SetVal("OK")
	m.ExpectSetNX("post:3", payload, time.Minute).SetVal(false)
	m.ExpectGet("post:3").SetVal("null")

	ctx := context.Background()
	require.NoError(t, cache.InvalidatePost(ctx, 3))
	require.NoError(t, cache.SetPost(ctx, detail))

	got, err := cache.GetPost(ctx, 3)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
	assert.Nil(t, got)
	assert.NoError(t, m.ExpectationsWereMet())
}

func TestClient_Ping(t *testing.T) {
	db, m := redismock.NewClientMock()
	client := NewClientFromRedis(db, logger.New("test"))

	m.ExpectPing().SetVal("PONG")
	m.ExpectPing().SetErr(errors.New("connection refused"))

	assert.NoError(t, client.Ping(context.Background()))
	assert.Error(t, client.Ping(context.Background()))
	assert.NoError(t, m.ExpectationsWereMet())
}

func TestNewPostCache_DefaultTTL(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cache := NewPostCache(NewClientFromRedis(db, logger.New("test")), logger.New("test"), 0)
	assert.Equal(t, defaultPostTTL, cache.ttl)
	assert.Equal(t, defaultTombstoneTTL, cache.tombstoneTTL)
}
