package ports

import (
	"context"

	post_repository "post-board-service/internal/domain/ports/output/post"
)

type TxOptions struct {
	ReadOnly bool
}

//go:generate mockery --name UnitOfWork --dir . --output ../../../../mocks/uow --outpkg mocks --filename UnitOfWork.go
type UnitOfWork interface {
	Begin(ctx context.Context, opts TxOptions) (Transaction, error)
}

// Transaction scopes a repository to one unit of work. Rollback after Commit
// or a previous Rollback returns nil.
//
//go:generate mockery --name Transaction --dir . --output ../../../../mocks/uow --outpkg mocks --filename Transaction.go
type Transaction interface {
	PostRepository() post_repository.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
