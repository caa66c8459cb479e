package memory

import (
	"context"
	"sync"
	"time"

	ports "post-board-service/internal/domain/ports/output"
	post_repository "post-board-service/internal/domain/ports/output/post"
)

// Store is an in-process post table with serializable transactions: one
// transaction (or autocommit write) at a time works on a private copy that
// replaces the committed table on Commit.
type Store struct {
	log ports.Logger
	now func() time.Time

	// writer is a one-slot semaphore so waiting for it can be cancelled.
	writer chan struct{}
	mu     sync.RWMutex
	data   *table
}

type Option func(*Store)

// WithClock replaces time.Now for created_at / updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(log ports.Logger, opts ...Option) *Store {
	s := &Store{log: log, now: time.Now, writer: make(chan struct{}, 1), data: newTable()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PostRepository returns an autocommit repository over the committed table.
func (s *Store) PostRepository() post_repository.Repository {
	return &PostRepository{log: s.log, now: s.now, data: committed{s}}
}

func (s *Store) Begin(ctx context.Context, opts ports.TxOptions) (ports.Transaction, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()
	return &Transaction{store: s, work: work, readOnly: opts.ReadOnly}, nil
}

func (s *Store) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writer
}

type committed struct{ s *Store }

func (c committed) read(fn func(t *table)) error {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	fn(c.s.data)
	return nil
}

func (c committed) write(ctx context.Context, fn func(t *table) error) error {
	if err := c.s.acquire(ctx); err != nil {
		return err
	}
	defer c.s.release()
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return fn(c.s.data)
}

type Transaction struct {
	store    *Store
	work     *table
	readOnly bool

	mu   sync.Mutex
	done bool
}

func (t *Transaction) PostRepository() post_repository.Repository {
	return &PostRepository{log: t.store.log, now: t.store.now, data: t}
}

func (t *Transaction) read(fn func(tb *table)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	fn(t.work)
	return nil
}

func (t *Transaction) write(_ context.Context, fn func(tb *table) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	if t.readOnly {
		return errReadOnly
	}
	return fn(t.work)
}

func (t *Transaction) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	if err := ctx.Err(); err != nil {
		t.finish()
		return err
	}
	if !t.readOnly {
		t.store.mu.Lock()
		t.store.data = t.work
		t.store.mu.Unlock()
	}
	t.finish()
	return nil
}

func (t *Transaction) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *Transaction) finish() {
	t.done = true
	t.work = nil
	t.store.release()
}
