package memory

import "errors"

var (
	errTxClosed = errors.New("memory: transaction already closed")
	errReadOnly = errors.New("memory: write in read-only transaction")
)
