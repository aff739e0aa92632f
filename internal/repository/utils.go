package repository

import (
	"context"
	"strings"

	"github.com/feedspin/feedspin/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// A commit already closed the tx; rollback-after-commit is expected noise
		if !strings.Contains(err.Error(), "closed") {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
