package custom_errors

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrDatabaseQuery = errors.New("database query failed")
	ErrDatabaseScan  = errors.New("database scan failed")
	ErrTxBegin       = errors.New("failed to begin transaction")
	ErrTxCommit      = errors.New("failed to commit transaction")

	ErrCacheMiss = errors.New("cache miss")

	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// PostNotFoundError names the identity whose lookup came back empty.
// errors.Is(err, ErrPostNotFound) holds for every value of this type.
type PostNotFoundError struct {
	ID int64
}

func NewPostNotFound(id int64) error {
	return &PostNotFoundError{ID: id}
}

func (e *PostNotFoundError) Error() string {
	return fmt.Sprintf("post not found: id=%d", e.ID)
}

func (e *PostNotFoundError) Unwrap() error {
	return ErrPostNotFound
}

// NotFoundID extracts the offending identity from a not-found error chain.
func NotFoundID(err error) (int64, bool) {
	var nf *PostNotFoundError
	if errors.As(err, &nf) {
		return nf.ID, true
	}
	return 0, false
}
