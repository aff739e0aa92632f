package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/repository"
)

// LoyaltyRepository implements repository.Loyalty for PostgreSQL.
// The ledger is append-only: every method inserts or reads, nothing updates.
type LoyaltyRepository struct {
	db *pgxpool.Pool
}

// NewLoyaltyRepository creates a new LoyaltyRepository
func NewLoyaltyRepository(db *pgxpool.Pool) *LoyaltyRepository {
	return &LoyaltyRepository{db: db}
}

var _ repository.Loyalty = (*LoyaltyRepository)(nil)

// GetClient retrieves a loyalty client with their computed balance.
// Returns domain.ErrLoyaltyClientNotFound for unknown clients.
func (r *LoyaltyRepository) GetClient(ctx context.Context, clientID uuid.UUID) (*domain.LoyaltyClient, error) {
	query := `
		SELECT c.client_id, c.merchant_id, c.created_at,
		       COALESCE(SUM(t.points), 0)
		FROM loyalty_clients c
		LEFT JOIN points_transactions t ON t.client_id = c.client_id
		WHERE c.client_id = $1
		GROUP BY c.client_id, c.merchant_id, c.created_at
	`

	var client domain.LoyaltyClient
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&client.ID, &client.MerchantID, &client.CreatedAt, &client.Balance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoyaltyClientNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLoyaltyClient, err)
	}
	return &client, nil
}

// GetBalance computes the client's balance as the sum of their ledger entries
func (r *LoyaltyRepository) GetBalance(ctx context.Context, clientID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(points), 0)
		FROM points_transactions
		WHERE client_id = $1
	`

	var balance int
	if err := r.db.QueryRow(ctx, query, clientID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return balance, nil
}

// AppendTransaction records a credit (earn or bonus)
func (r *LoyaltyRepository) AppendTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	query := `
		INSERT INTO points_transactions (transaction_id, client_id, merchant_id, kind, points, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		tx.ID, tx.ClientID, tx.MerchantID, string(tx.Kind), tx.Points, tx.Note, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	return nil
}

// AppendWelcome inserts the welcome credit conditioned on no prior welcome
// row for the client. The client row is locked first so two concurrent
// grants serialize and only one insert passes the check.
// Returns false when a welcome row already exists.
func (r *LoyaltyRepository) AppendWelcome(ctx context.Context, tx *domain.PointsTransaction) (bool, error) {
	return r.conditionalInsert(ctx, tx, `
		INSERT INTO points_transactions (transaction_id, client_id, merchant_id, kind, points, note, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE NOT EXISTS (
			SELECT 1 FROM points_transactions
			WHERE client_id = $2 AND kind = $4
		)
	`)
}

// AppendRedemption inserts a debit conditioned on the client's balance
// covering it at write time. The client row lock serializes concurrent
// redemptions so two of them cannot overdraw.
func (r *LoyaltyRepository) AppendRedemption(ctx context.Context, tx *domain.PointsTransaction) (bool, error) {
	return r.conditionalInsert(ctx, tx, `
		INSERT INTO points_transactions (transaction_id, client_id, merchant_id, kind, points, note, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE (
			SELECT COALESCE(SUM(points), 0) FROM points_transactions
			WHERE client_id = $2
		) >= -$5::integer
	`)
}

// conditionalInsert runs a guarded ledger insert inside a transaction that
// holds the client row lock for the duration of the check-and-insert.
func (r *LoyaltyRepository) conditionalInsert(ctx context.Context, tx *domain.PointsTransaction, query string) (bool, error) {
	pgTx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	defer safeRollback(ctx, pgTx)

	var clientID uuid.UUID
	err = pgTx.QueryRow(ctx,
		`SELECT client_id FROM loyalty_clients WHERE client_id = $1 FOR UPDATE`, tx.ClientID,
	).Scan(&clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrLoyaltyClientNotFound
		}
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}

	tag, err := pgTx.Exec(ctx, query,
		tx.ID, tx.ClientID, tx.MerchantID, string(tx.Kind), tx.Points, tx.Note, tx.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}

	if err := pgTx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListTransactions returns the client's ledger entries, newest first
func (r *LoyaltyRepository) ListTransactions(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.PointsTransaction, error) {
	query := `
		SELECT transaction_id, client_id, merchant_id, kind, points, note, created_at
		FROM points_transactions
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	var txs []domain.PointsTransaction
	for rows.Next() {
		var t domain.PointsTransaction
		var kind string
		if err := rows.Scan(&t.ID, &t.ClientID, &t.MerchantID, &kind, &t.Points, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
		}
		t.Kind = domain.TransactionKind(kind)
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	return txs, nil
}
