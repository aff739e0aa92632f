package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
)

// Loyalty defines the data access for the points ledger. The ledger is
// append-only: balances are computed as SUM(points), never stored.
type Loyalty interface {
	// GetClient returns domain.ErrLoyaltyClientNotFound for unknown clients.
	GetClient(ctx context.Context, clientID uuid.UUID) (*domain.LoyaltyClient, error)

	GetBalance(ctx context.Context, clientID uuid.UUID) (int, error)

	// AppendTransaction records a credit (earn or bonus).
	AppendTransaction(ctx context.Context, tx *domain.PointsTransaction) error

	// AppendWelcome records the welcome credit, conditioned on no prior
	// welcome row for the client. Returns false when one already exists.
	AppendWelcome(ctx context.Context, tx *domain.PointsTransaction) (bool, error)

	// AppendRedemption records a debit conditioned on the client's balance
	// covering it at write time. Returns false when the balance is short.
	AppendRedemption(ctx context.Context, tx *domain.PointsTransaction) (bool, error)

	ListTransactions(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.PointsTransaction, error)
}
