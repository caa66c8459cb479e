package post_repository_sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	ports "post-board-service/internal/domain/ports/output"
	post_repository "post-board-service/internal/domain/ports/output/post"
)

// Store owns the sqlite handle and acts as the unit of work for it.
type Store struct {
	db      *sql.DB
	log     ports.Logger
	metrics ports.MetricsProvider
	now     func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now for created_at / updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open creates the parent directory when needed. Use ":memory:" for a
// private in-memory database; the pool is then pinned to one connection.
func Open(path string, log ports.Logger, metrics ports.MetricsProvider, opts ...Option) (*Store, error) {
	inMemory := path == ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if inMemory {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, log: log, metrics: metrics, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	if path != ":memory:" {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	q.Set("_txlock", "immediate")
	return path + "?" + q.Encode()
}

// DB exposes the handle for migrations.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PostRepository returns an autocommit repository over the handle.
func (s *Store) PostRepository() post_repository.Repository {
	return s.repository(s.db)
}

func (s *Store) Begin(ctx context.Context, opts ports.TxOptions) (ports.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: opts.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return &Transaction{tx: tx, repo: s.repository(tx)}, nil
}

func (s *Store) repository(db dbtx) *PostRepository {
	return &PostRepository{db: db, log: s.log, metrics: s.metrics, now: s.now}
}

type Transaction struct {
	tx   *sql.Tx
	repo *PostRepository
}

func (t *Transaction) PostRepository() post_repository.Repository {
	return t.repo
}

func (t *Transaction) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.tx.Commit()
}

func (t *Transaction) Rollback(_ context.Context) error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
