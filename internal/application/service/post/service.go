package post_service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	post_repository "post-board-service/internal/domain/ports/output/post"
)

// Service runs every mutation inside its own transaction. Reads by id go
// through postRepo directly; the listing uses a read-only transaction.
type Service struct {
	postRepo post_repository.Repository
	uow      ports.UnitOfWork
	log      ports.Logger
	metrics  ports.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	uow ports.UnitOfWork,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *Service {
	return &Service{
		postRepo: postRepo,
		uow:      uow,
		log:      log,
		metrics:  metrics,
	}
}

func (s *Service) CreatePost(ctx context.Context, post *model.CreatePostDTO) (int64, error) {
	var id int64
	err := s.inTx(ctx, ports.TxOptions{}, func(repo post_repository.Repository) error {
		created, err := repo.Create(ctx, post.ToEntity())
		if err != nil {
			s.log.Error("Failed to create post", slog.String("author", post.Author), slog.String("error", err.Error()))
			return err
		}
		id = created.ID
		return nil
	})
	s.metrics.IncrementPostOperations("create", err == nil)
	if err != nil {
		return 0, err
	}

	s.log.Info("Post created", slog.Int64("post_id", id), slog.String("author", post.Author))
	return id, nil
}

func (s *Service) UpdatePost(ctx context.Context, id int64, post *model.UpdatePostDTO) (int64, error) {
	err := s.inTx(ctx, ports.TxOptions{}, func(repo post_repository.Repository) error {
		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			s.logLookupError("update", id, err)
			return err
		}

		existing.Update(post.Title, post.Content)
		if _, err := repo.Update(ctx, existing); err != nil {
			s.log.Error("Failed to update post", slog.Int64("post_id", id), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	s.metrics.IncrementPostOperations("update", err == nil)
	if err != nil {
		return 0, err
	}

	s.log.Info("Post updated", slog.Int64("post_id", id))
	return id, nil
}

func (s *Service) GetPostByID(ctx context.Context, id int64) (*model.PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	s.metrics.IncrementPostOperations("get", err == nil)
	if err != nil {
		s.logLookupError("get", id, err)
		return nil, err
	}
	return model.NewPostDetail(post), nil
}

func (s *Service) ListPostsDesc(ctx context.Context) ([]*model.PostListItem, error) {
	items := make([]*model.PostListItem, 0)
	err := s.inTx(ctx, ports.TxOptions{ReadOnly: true}, func(repo post_repository.Repository) error {
		posts, err := repo.ListDesc(ctx)
		if err != nil {
			s.log.Error("Failed to list posts", slog.String("error", err.Error()))
			return err
		}
		for _, p := range posts {
			items = append(items, model.NewPostListItem(p))
		}
		return nil
	})
	s.metrics.IncrementPostOperations("list", err == nil)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) DeletePost(ctx context.Context, id int64) error {
	err := s.inTx(ctx, ports.TxOptions{}, func(repo post_repository.Repository) error {
		if _, err := repo.GetByID(ctx, id); err != nil {
			s.logLookupError("delete", id, err)
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			s.log.Error("Failed to delete post", slog.Int64("post_id", id), slog.String("error", err.Error()))
			return err
		}
		return nil
	})
	s.metrics.IncrementPostOperations("delete", err == nil)
	if err != nil {
		return err
	}

	s.log.Info("Post deleted", slog.Int64("post_id", id))
	return nil
}

// inTx commits when fn returns nil and rolls back on every other exit,
// panics included. Rollback ignores the caller's cancellation.
func (s *Service) inTx(ctx context.Context, opts ports.TxOptions, fn func(repo post_repository.Repository) error) error {
	tx, err := s.uow.Begin(ctx, opts)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w: %w", custom_errors.ErrDatabaseQuery, custom_errors.ErrTxBegin, err)
	}

	var txCommitted bool
	defer func() {
		if txCommitted {
			return
		}
		if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
		}
		s.metrics.IncrementTransactions("rollback")
	}()

	if err := fn(tx.PostRepository()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w: %w", custom_errors.ErrDatabaseQuery, custom_errors.ErrTxCommit, err)
	}
	txCommitted = true
	s.metrics.IncrementTransactions("commit")
	return nil
}

func (s *Service) logLookupError(op string, id int64, err error) {
	if errors.Is(err, custom_errors.ErrPostNotFound) {
		s.log.Debug("Post not found", slog.String("op", op), slog.Int64("post_id", id))
		return
	}
	s.log.Error("Failed to get post", slog.String("op", op), slog.Int64("post_id", id), slog.String("error", err.Error()))
}
