package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/repository"
)

// SpinRepository implements repository.Spin for PostgreSQL
type SpinRepository struct {
	db *pgxpool.Pool
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *pgxpool.Pool) *SpinRepository {
	return &SpinRepository{db: db}
}

var _ repository.Spin = (*SpinRepository)(nil)

// GetWheelConfig loads a merchant's wheel settings and prize table.
// Returns domain.ErrMerchantNotFound when the merchant does not exist and
// domain.ErrWheelNotConfigured when the merchant has no wheel settings row.
func (r *SpinRepository) GetWheelConfig(ctx context.Context, merchantID uuid.UUID) (*domain.WheelConfig, error) {
	query := `
		SELECT w.unlucky_weight, w.retry_weight, w.max_wheel_segments,
		       w.coupon_ttl_seconds, w.redeemable_at_any_store
		FROM wheel_settings w
		WHERE w.merchant_id = $1
	`

	cfg := &domain.WheelConfig{MerchantID: merchantID}
	var ttlSeconds int
	err := r.db.QueryRow(ctx, query, merchantID).Scan(
		&cfg.UnluckyWeight, &cfg.RetryWeight, &cfg.MaxWheelSegments,
		&ttlSeconds, &cfg.RedeemableAtAnyStore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissingConfig(ctx, merchantID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWheelSettings, err)
	}
	cfg.CouponTTL = time.Duration(ttlSeconds) * time.Second

	prizes, err := r.getPrizes(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	cfg.Prizes = prizes

	return cfg, nil
}

// classifyMissingConfig distinguishes an unknown merchant from one that
// simply has not configured a wheel yet.
func (r *SpinRepository) classifyMissingConfig(ctx context.Context, merchantID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM merchants WHERE merchant_id = $1)`, merchantID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToGetWheelSettings, err)
	}
	if !exists {
		return domain.ErrMerchantNotFound
	}
	return domain.ErrWheelNotConfigured
}

func (r *SpinRepository) getPrizes(ctx context.Context, merchantID uuid.UUID) ([]domain.Prize, error) {
	query := `
		SELECT prize_id, merchant_id, prize_name, probability_weight, quantity, copies_on_wheel
		FROM prizes
		WHERE merchant_id = $1
		ORDER BY prize_id
	`

	rows, err := r.db.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPrizes, err)
	}
	defer rows.Close()

	var prizes []domain.Prize
	for rows.Next() {
		var p domain.Prize
		if err := rows.Scan(&p.ID, &p.MerchantID, &p.Name, &p.ProbabilityWeight, &p.Quantity, &p.CopiesOnWheel); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPrizes, err)
		}
		prizes = append(prizes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPrizes, err)
	}
	return prizes, nil
}

// GetStoreWithOrg retrieves a store joined with its organization
func (r *SpinRepository) GetStoreWithOrg(ctx context.Context, storeID uuid.UUID) (*domain.StoreContext, error) {
	return getStoreWithOrg(ctx, r.db, storeID)
}

// BeginSpinTx starts a transaction covering the writes of one spin
func (r *SpinRepository) BeginSpinTx(ctx context.Context) (repository.SpinTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginSpinTx, err)
	}
	return &spinTx{tx: tx}, nil
}

// spinTx implements repository.SpinTx
type spinTx struct {
	tx pgx.Tx
}

func (t *spinTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *spinTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// DecrementPrizeStock decrements quantity conditioned on quantity > 0 at
// write time. Untracked prizes (quantity = -1) never match and are not
// decremented; callers skip them before getting here.
func (t *spinTx) DecrementPrizeStock(ctx context.Context, prizeID uuid.UUID) (bool, error) {
	query := `
		UPDATE prizes
		SET quantity = quantity - 1
		WHERE prize_id = $1 AND quantity > 0
	`

	tag, err := t.tx.Exec(ctx, query, prizeID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToDecrementStock, err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateSpin inserts a spin record
func (t *spinTx) CreateSpin(ctx context.Context, spin *domain.Spin) error {
	query := `
		INSERT INTO spins (spin_id, merchant_id, store_id, outcome, prize_id, client_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := t.tx.Exec(ctx, query,
		spin.ID, spin.MerchantID, spin.StoreID, string(spin.Outcome),
		spin.PrizeID, spin.ClientKey, spin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertSpin, err)
	}
	return nil
}

// CreateCoupon inserts a coupon record
func (t *spinTx) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	query := `
		INSERT INTO coupons (coupon_id, spin_id, merchant_id, organization_id, won_at_store_id,
		                     code, prize_id, prize_name, expires_at, redeemable_at_any_store,
		                     used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := t.tx.Exec(ctx, query,
		coupon.ID, coupon.SpinID, coupon.MerchantID, coupon.OrganizationID, coupon.WonAtStoreID,
		coupon.Code, coupon.PrizeID, coupon.PrizeName, coupon.ExpiresAt, coupon.RedeemableAtAnyStore,
		coupon.Used, coupon.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertCoupon, err)
	}
	return nil
}
