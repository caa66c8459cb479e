package post_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/outbound/repository/postgres/db"
)

const postColumns = `id, title, content, author, created_at, updated_at`

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.String("author", post.Author), slog.String("title", post.Title))

	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}

	args := pgx.NamedArgs{
		"title":      post.Title,
		"content":    post.Content,
		"author":     post.Author,
		"created_at": now,
		"updated_at": now,
	}

	query := `
		INSERT INTO posts (title, content, author, created_at, updated_at)
		VALUES (@title, @content, @author, @created_at, @updated_at)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_create", start, false)
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", createdPost.ID))
	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id`

	post, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.observe("post_get_by_id", start, true)
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.NewPostNotFound(id)
		}
		p.observe("post_get_by_id", start, false)
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	p.observe("post_get_by_id", start, true)
	return post, nil
}

func (p *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", post.ID))

	args := pgx.NamedArgs{
		"id":         post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true},
	}
	query := `
		UPDATE posts SET title = @title, content = @content, updated_at = @updated_at
		WHERE id = @id
		RETURNING ` + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.observe("post_update", start, true)
			p.log.Debug("Post not found by id during Update", slog.Int64("id", post.ID))
			return nil, custom_errors.NewPostNotFound(post.ID)
		}
		p.observe("post_update", start, false)
		p.log.Error("Error updating post", slog.Int64("id", post.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	p.observe("post_update", start, true)
	return updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id))

	args := pgx.NamedArgs{"id": id}
	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, args)
	if err != nil {
		p.observe("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}
	p.observe("post_delete", start, true)
	if result.RowsAffected() == 0 {
		return custom_errors.NewPostNotFound(id)
	}
	return nil
}

func (p *PostRepository) ListDesc(ctx context.Context) ([]*model.Post, error) {
	start := time.Now()

	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		p.observe("post_list_desc", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.observe("post_list_desc", start, false)
			p.log.Error("Error scanning post during ListDesc", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseScan, err)
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		p.observe("post_list_desc", start, false)
		p.log.Error("Error iterating rows during ListDesc", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrDatabaseQuery, err)
	}

	p.observe("post_list_desc", start, true)
	p.log.Debug("Listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		post      model.Post
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Author,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	post.CreatedAt = createdAt.Time
	post.UpdatedAt = updatedAt.Time
	return &post, nil
}
