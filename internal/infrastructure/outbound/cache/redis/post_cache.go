package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
)

const (
	postCacheKeyPrefix = "post:"
	defaultPostTTL     = 30 * time.Minute
	// tombstoneTTL must outlast any read that started before an invalidation.
	defaultTombstoneTTL = time.Minute
)

// PostCache stores post details as JSON. An invalidated key holds JSON null
// for tombstoneTTL: reads treat it as a miss and fills (SET NX) cannot
// replace it, so a read racing an update or delete never restores stale data.
type PostCache struct {
	client       *Client
	log          ports.Logger
	ttl          time.Duration
	tombstoneTTL time.Duration
}

// NewPostCache falls back to 30 minutes when ttl is not positive.
func NewPostCache(client *Client, log ports.Logger, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = defaultPostTTL
	}
	return &PostCache{
		client:       client,
		log:          log,
		ttl:          ttl,
		tombstoneTTL: defaultTombstoneTTL,
	}
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.PostDetail, error) {
	var post *model.PostDetail
	if err := p.client.Get(ctx, postKey(postID), &post); err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get post from cache: %w", err)
	}
	if post == nil {
		p.log.Debug("Post cache tombstone", slog.Int64("post_id", postID))
		return nil, custom_errors.ErrCacheMiss
	}
	return post, nil
}

// SetPost fills the cache only when the key is empty.
func (p *PostCache) SetPost(ctx context.Context, post *model.PostDetail) error {
	if post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	stored, err := p.client.SetNX(ctx, postKey(post.ID), post, p.ttl)
	if err != nil {
		return fmt.Errorf("failed to set post cache: %w", err)
	}
	if !stored {
		p.log.Debug("Post cache fill skipped, key already set", slog.Int64("post_id", post.ID))
		return nil
	}

	p.log.Debug("Post cached successfully",
		slog.Int64("post_id", post.ID),
		slog.Duration("ttl", p.ttl))
	return nil
}

func (p *PostCache) InvalidatePost(ctx context.Context, postID int64) error {
	if err := p.client.Set(ctx, postKey(postID), nil, p.tombstoneTTL); err != nil {
		return fmt.Errorf("failed to invalidate post cache: %w", err)
	}
	return nil
}

func postKey(postID int64) string {
	return postCacheKeyPrefix + strconv.FormatInt(postID, 10)
}
