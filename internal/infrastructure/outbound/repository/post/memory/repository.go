package memory

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"post-board-service/internal/custom_errors"
	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
)

type table struct {
	posts  map[int64]*model.Post
	nextID int64
}

func newTable() *table {
	return &table{posts: make(map[int64]*model.Post), nextID: 1}
}

func (t *table) clone() *table {
	c := &table{posts: make(map[int64]*model.Post, len(t.posts)), nextID: t.nextID}
	for id, p := range t.posts {
		cp := *p
		c.posts[id] = &cp
	}
	return c
}

// access abstracts where a repository reads and writes: the committed table
// of a Store, or the private copy held by an open transaction.
type access interface {
	read(fn func(t *table)) error
	write(ctx context.Context, fn func(t *table) error) error
}

type PostRepository struct {
	log  ports.Logger
	now  func() time.Time
	data access
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	var result model.Post
	err := p.data.write(ctx, func(t *table) error {
		now := p.now().UTC()
		newPost := &model.Post{
			ID:        t.nextID,
			Title:     post.Title,
			Content:   post.Content,
			Author:    post.Author,
			CreatedAt: now,
			UpdatedAt: now,
		}
		t.nextID++
		t.posts[newPost.ID] = newPost
		result = *newPost
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug("Created post in memory", slog.Int64("id", result.ID))
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var (
		result model.Post
		found  bool
	)
	err := p.data.read(func(t *table) {
		if post, ok := t.posts[id]; ok {
			result = *post
			found = true
		}
	})
	if err != nil {
		return nil, err
	}
	if !found {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.NewPostNotFound(id)
	}
	return &result, nil
}

func (p *PostRepository) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	var result model.Post
	err := p.data.write(ctx, func(t *table) error {
		existing, ok := t.posts[post.ID]
		if !ok {
			return custom_errors.NewPostNotFound(post.ID)
		}
		existing.Title = post.Title
		existing.Content = post.Content
		existing.UpdatedAt = p.now().UTC()
		result = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	return p.data.write(ctx, func(t *table) error {
		if _, ok := t.posts[id]; !ok {
			return custom_errors.NewPostNotFound(id)
		}
		delete(t.posts, id)
		return nil
	})
}

func (p *PostRepository) ListDesc(ctx context.Context) ([]*model.Post, error) {
	result := make([]*model.Post, 0)
	err := p.data.read(func(t *table) {
		for _, post := range t.posts {
			postCopy := *post
			result = append(result, &postCopy)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}
