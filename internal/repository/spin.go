package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
)

// Spin defines the data access required by the spin service
type Spin interface {
	// GetWheelConfig loads a merchant's prize table and wheel settings.
	// Returns domain.ErrMerchantNotFound when the merchant does not exist.
	GetWheelConfig(ctx context.Context, merchantID uuid.UUID) (*domain.WheelConfig, error)

	GetStoreWithOrg(ctx context.Context, storeID uuid.UUID) (*domain.StoreContext, error)

	// BeginSpinTx opens a transaction covering stock decrement, spin recording
	// and coupon creation, so a winning spin is persisted atomically.
	BeginSpinTx(ctx context.Context) (SpinTx, error)
}

// SpinTx groups the writes of one spin into a single transaction.
type SpinTx interface {
	Tx

	// DecrementPrizeStock decrements quantity conditioned on quantity > 0 at
	// write time. Returns false when the stock was already exhausted; callers
	// must treat that as "prize not won", never as an error.
	DecrementPrizeStock(ctx context.Context, prizeID uuid.UUID) (bool, error)

	CreateSpin(ctx context.Context, spin *domain.Spin) error
	CreateCoupon(ctx context.Context, coupon *domain.Coupon) error
}
