package spin

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/feedspin/feedspin/internal/coupon"
	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/repository"
)

// MockSpinRepository is a testify mock for repository.Spin
type MockSpinRepository struct {
	mock.Mock
}

var _ repository.Spin = (*MockSpinRepository)(nil)

func (m *MockSpinRepository) GetWheelConfig(ctx context.Context, merchantID uuid.UUID) (*domain.WheelConfig, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WheelConfig), args.Error(1)
}

func (m *MockSpinRepository) GetStoreWithOrg(ctx context.Context, storeID uuid.UUID) (*domain.StoreContext, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreContext), args.Error(1)
}

func (m *MockSpinRepository) BeginSpinTx(ctx context.Context) (repository.SpinTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.SpinTx), args.Error(1)
}

// MockSpinTx is a testify mock for repository.SpinTx
type MockSpinTx struct {
	mock.Mock
}

var _ repository.SpinTx = (*MockSpinTx)(nil)

func (m *MockSpinTx) DecrementPrizeStock(ctx context.Context, prizeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, prizeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSpinTx) CreateSpin(ctx context.Context, spin *domain.Spin) error {
	args := m.Called(ctx, spin)
	return args.Error(0)
}

func (m *MockSpinTx) CreateCoupon(ctx context.Context, c *domain.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockSpinTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSpinTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCouponService is a testify mock for coupon.Service
type MockCouponService struct {
	mock.Mock
}

var _ coupon.Service = (*MockCouponService)(nil)

func (m *MockCouponService) Issue(draw domain.DrawResult, spinID uuid.UUID, store *domain.StoreContext, cfg *domain.WheelConfig) (*domain.Coupon, error) {
	args := m.Called(draw, spinID, store, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponService) ValidateForRedemption(ctx context.Context, code string, storeID, staffID uuid.UUID) (*coupon.ScanResult, error) {
	args := m.Called(ctx, code, storeID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.ScanResult), args.Error(1)
}

func (m *MockCouponService) Redeem(ctx context.Context, couponID, storeID, staffID uuid.UUID) (*domain.Coupon, error) {
	args := m.Called(ctx, couponID, storeID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
