package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	post_service "post-board-service/internal/domain/ports/input/post"
	output "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/domain/ports/output/cache"
)

const invalidateAttempts = 3

// PostServiceCacheDecorator serves GetPostByID from the post cache and
// invalidates entries after a successful update or delete. Listings are
// never cached.
type PostServiceCacheDecorator struct {
	service   post_service.Service
	postCache cache.PostCache
	log       output.Logger
	metrics   output.MetricsProvider

	invalidateBackoff time.Duration
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metrics,

		invalidateBackoff: 50 * time.Millisecond,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (int64, error) {
	return d.service.CreatePost(ctx, post)
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.PostDetail, error) {
	d.log.Debug("Getting post by ID with cache decorator", slog.Int64("post_id", id))

	cacheStart := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(cacheStart))
	if err == nil {
		d.log.Debug("Post found in cache", slog.Int64("post_id", id))
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	} else {
		d.metrics.IncrementCacheMisses()
	}

	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return post, nil
	}

	setStart := time.Now()
	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(setStart))

	return post, nil
}

func (d *PostServiceCacheDecorator) ListPostsDesc(ctx context.Context) ([]*model.PostListItem, error) {
	return d.service.ListPostsDesc(ctx)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (int64, error) {
	updatedID, err := d.service.UpdatePost(ctx, id, post)
	if err != nil {
		return 0, err
	}
	d.invalidate(ctx, id, "update")
	return updatedID, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, id int64) error {
	if err := d.service.DeletePost(ctx, id); err != nil {
		return err
	}
	d.invalidate(ctx, id, "delete")
	return nil
}

// invalidate retries on a detached context: a lost invalidation would leave
// the pre-mutation detail cached for the full TTL.
func (d *PostServiceCacheDecorator) invalidate(ctx context.Context, id int64, op string) {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	defer func() { d.metrics.RecordCacheOperationDuration("post_invalidate", time.Since(start)) }()

	var err error
	for attempt := 1; attempt <= invalidateAttempts; attempt++ {
		if err = d.postCache.InvalidatePost(ctx, id); err == nil {
			return
		}
		d.log.Warn("Failed to invalidate post cache",
			slog.String("op", op),
			slog.Int64("post_id", id),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		if attempt < invalidateAttempts {
			time.Sleep(d.invalidateBackoff * time.Duration(attempt))
		}
	}
	d.log.Error("Giving up on post cache invalidation, entry may be stale until TTL",
		slog.String("op", op),
		slog.Int64("post_id", id),
		slog.String("error", err.Error()))
}
