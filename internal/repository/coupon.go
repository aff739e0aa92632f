package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
)

// Coupon defines the data access required by the coupon service
type Coupon interface {
	// GetCouponByCode returns nil, nil when no coupon carries the code.
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)

	GetCoupon(ctx context.Context, id uuid.UUID) (*domain.Coupon, error)

	// MarkRedeemed flips used from false to true as one conditional update and
	// returns the number of rows affected. Zero means another redemption won
	// the race (or the coupon does not exist); callers distinguish the two by
	// re-reading the coupon.
	MarkRedeemed(ctx context.Context, couponID, storeID, staffID uuid.UUID, usedAt time.Time) (int64, error)
}
