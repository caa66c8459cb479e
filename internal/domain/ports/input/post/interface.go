package post_service

import (
	"context"

	model "post-board-service/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/service --outpkg mocks --filename Service.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (int64, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetail, error)
	ListPostsDesc(ctx context.Context) ([]*model.PostListItem, error)
	UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (int64, error)
	DeletePost(ctx context.Context, id int64) error
}
