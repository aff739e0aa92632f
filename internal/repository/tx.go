package repository

import (
	"context"
)

// Tx is the common shape of a database transaction handle.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
