package cache

import (
	"context"

	model "post-board-service/internal/domain/models"
)

// PostCache holds post detail projections. After InvalidatePost, GetPost
// reports a miss and SetPost is a no-op until the marker expires.
//
//go:generate mockery --name PostCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename PostCache.go
type PostCache interface {
	GetPost(ctx context.Context, postID int64) (*model.PostDetail, error)
	// SetPost stores post only if nothing is cached under its id.
	SetPost(ctx context.Context, post *model.PostDetail) error
	InvalidatePost(ctx context.Context, postID int64) error
}
