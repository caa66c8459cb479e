package post_repository

import (
	"context"

	model "post-board-service/internal/domain/models"
)

// Repository is the store-side contract for posts.
//
// GetByID returns custom_errors.PostNotFoundError when the id is absent.
// Update writes title, content and updated_at only.
// ListDesc orders by created_at DESC, id DESC.
//
//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename Repository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	ListDesc(ctx context.Context) ([]*model.Post, error)
}
