// Package loyalty maintains per-client points balances as an append-only
// transaction ledger. A balance is always SUM(points) over the client's
// transactions; it is never stored or overwritten, which keeps the ledger
// auditable and makes every mutation idempotent to replay analysis.
package loyalty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/logger"
	"github.com/feedspin/feedspin/internal/repository"
)

// Service defines the interface for loyalty ledger operations
type Service interface {
	// Credit appends an earn or bonus transaction.
	Credit(ctx context.Context, clientID uuid.UUID, kind domain.TransactionKind, points int, note string) (*domain.PointsTransaction, error)

	// GrantWelcome appends the one-time welcome credit. A second grant for
	// the same client returns domain.ErrWelcomeAlreadyGranted.
	GrantWelcome(ctx context.Context, clientID uuid.UUID, points int) (*domain.PointsTransaction, error)

	// Redeem appends a debit. Balance coverage is checked by the store at
	// write time, so concurrent redemptions cannot overdraw.
	Redeem(ctx context.Context, clientID uuid.UUID, points int, note string) (*domain.PointsTransaction, error)

	GetBalance(ctx context.Context, clientID uuid.UUID) (int, error)
	History(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.PointsTransaction, error)
}

type service struct {
	repo repository.Loyalty
	now  func() time.Time
}

// NewService creates a new loyalty service
func NewService(repo repository.Loyalty) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Credit(ctx context.Context, clientID uuid.UUID, kind domain.TransactionKind, points int, note string) (*domain.PointsTransaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", domain.ErrInvalidInput)
	}
	if !kind.Credit() || kind == domain.TransactionWelcome {
		return nil, fmt.Errorf("%w: kind %s is not a plain credit", domain.ErrInvalidInput, kind)
	}

	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loyalty client: %w", err)
	}

	tx := &domain.PointsTransaction{
		ID:         uuid.New(),
		ClientID:   client.ID,
		MerchantID: client.MerchantID,
		Kind:       kind,
		Points:     points,
		Note:       note,
		CreatedAt:  s.now(),
	}
	if err := s.repo.AppendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}
	return tx, nil
}

func (s *service) GrantWelcome(ctx context.Context, clientID uuid.UUID, points int) (*domain.PointsTransaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", domain.ErrInvalidInput)
	}

	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loyalty client: %w", err)
	}

	tx := &domain.PointsTransaction{
		ID:         uuid.New(),
		ClientID:   client.ID,
		MerchantID: client.MerchantID,
		Kind:       domain.TransactionWelcome,
		Points:     points,
		CreatedAt:  s.now(),
	}
	granted, err := s.repo.AppendWelcome(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to append welcome transaction: %w", err)
	}
	if !granted {
		return nil, domain.ErrWelcomeAlreadyGranted
	}
	return tx, nil
}

// Redeem records points as a negative delta. The store's conditional insert
// is the authority on coverage; the service never pre-computes the balance
// and writes from it.
func (s *service) Redeem(ctx context.Context, clientID uuid.UUID, points int, note string) (*domain.PointsTransaction, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", domain.ErrInvalidInput)
	}

	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loyalty client: %w", err)
	}

	tx := &domain.PointsTransaction{
		ID:         uuid.New(),
		ClientID:   client.ID,
		MerchantID: client.MerchantID,
		Kind:       domain.TransactionRedeem,
		Points:     -points,
		Note:       note,
		CreatedAt:  s.now(),
	}
	covered, err := s.repo.AppendRedemption(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to append redemption: %w", err)
	}
	if !covered {
		logger.FromContext(ctx).Info("Redemption rejected for insufficient balance",
			"client_id", clientID, "points", points)
		return nil, domain.ErrInsufficientPoints
	}
	return tx, nil
}

func (s *service) GetBalance(ctx context.Context, clientID uuid.UUID) (int, error) {
	if _, err := s.repo.GetClient(ctx, clientID); err != nil {
		return 0, fmt.Errorf("failed to get loyalty client: %w", err)
	}
	balance, err := s.repo.GetBalance(ctx, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (s *service) History(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.PointsTransaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	txs, err := s.repo.ListTransactions(ctx, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}
