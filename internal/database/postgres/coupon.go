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

// CouponRepository implements repository.Coupon for PostgreSQL
type CouponRepository struct {
	db *pgxpool.Pool
}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{db: db}
}

var _ repository.Coupon = (*CouponRepository)(nil)

const couponColumns = `coupon_id, spin_id, merchant_id, organization_id, won_at_store_id,
	code, prize_id, prize_name, expires_at, redeemable_at_any_store,
	used, used_at, redeemed_at_store_id, redeemed_by_staff_id, created_at`

func scanCoupon(row pgx.Row) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(
		&c.ID, &c.SpinID, &c.MerchantID, &c.OrganizationID, &c.WonAtStoreID,
		&c.Code, &c.PrizeID, &c.PrizeName, &c.ExpiresAt, &c.RedeemableAtAnyStore,
		&c.Used, &c.UsedAt, &c.RedeemedAtStoreID, &c.RedeemedByStaffID, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCouponByCode retrieves a coupon by its display code (returns nil, nil if not found)
func (r *CouponRepository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	coupon, err := scanCoupon(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCouponByCode, err)
	}
	return coupon, nil
}

// GetCoupon retrieves a coupon by ID.
// Returns domain.ErrCouponNotFound when no coupon carries the ID.
func (r *CouponRepository) GetCoupon(ctx context.Context, id uuid.UUID) (*domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE coupon_id = $1`

	coupon, err := scanCoupon(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCoupon, err)
	}
	return coupon, nil
}

// MarkRedeemed flips used from false to true as one conditional update.
// Rows affected is zero when another redemption already claimed the coupon.
func (r *CouponRepository) MarkRedeemed(ctx context.Context, couponID, storeID, staffID uuid.UUID, usedAt time.Time) (int64, error) {
	query := `
		UPDATE coupons
		SET used = TRUE, used_at = $2, redeemed_at_store_id = $3, redeemed_by_staff_id = $4
		WHERE coupon_id = $1 AND used = FALSE
	`

	tag, err := r.db.Exec(ctx, query, couponID, usedAt, storeID, staffID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMarkRedeemed, err)
	}
	return tag.RowsAffected(), nil
}
