package post_repository_sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
)

const postColumns = `id, title, content, author, created_at, updated_at`

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostRepository struct {
	db      dbtx
	log     ports.Logger
	metrics ports.MetricsProvider
	now     func() time.Time
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	r.log.Debug("Creating new post", slog.String("author", post.Author), slog.String("title", post.Title))

	now := r.now().UTC().UnixNano()
	query := `
		INSERT INTO posts (title, content, author, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + postColumns

	created, err := scanPost(r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Author, now, now))
	if err != nil {
		r.observe("post_create", start, false)
		r.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	r.observe("post_create", start, true)
	r.log.Debug("Successfully created post", slog.Int64("id", created.ID))
	return created, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	r.log.Debug("Getting post by ID", slog.Int64("id", id))

	post, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.observe("post_get_by_id", start, true)
			return nil, custom_errors.NewPostNotFound(id)
		}
		r.observe("post_get_by_id", start, false)
		r.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	r.observe("post_get_by_id", start, true)
	return post, nil
}

func (r *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	r.log.Debug("Updating post", slog.Int64("id", post.ID))

	query := `
		UPDATE posts SET title = ?, content = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query, post.Title, post.Content, r.now().UTC().UnixNano(), post.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.observe("post_update", start, true)
			return nil, custom_errors.NewPostNotFound(post.ID)
		}
		r.observe("post_update", start, false)
		r.log.Error("Error updating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	r.observe("post_update", start, true)
	return updated, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	r.log.Debug("Deleting post", slog.Int64("id", id))

	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		r.observe("post_delete", start, false)
		r.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		r.observe("post_delete", start, false)
		return fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}
	r.observe("post_delete", start, true)
	if affected == 0 {
		return custom_errors.NewPostNotFound(id)
	}
	return nil
}

func (r *PostRepository) ListDesc(ctx context.Context) ([]*model.Post, error) {
	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.observe("post_list_desc", start, false)
		r.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.observe("post_list_desc", start, false)
			r.log.Error("Error scanning post during ListDesc", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseScan, err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		r.observe("post_list_desc", start, false)
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	r.observe("post_list_desc", start, true)
	return posts, nil
}

func (r *PostRepository) observe(queryType string, start time.Time, success bool) {
	r.metrics.IncrementDatabaseQueries(queryType, success)
	r.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*model.Post, error) {
	var (
		post                 model.Post
		createdAt, updatedAt int64
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Author, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	post.CreatedAt = time.Unix(0, createdAt).UTC()
	post.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return &post, nil
}
