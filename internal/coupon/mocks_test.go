package coupon

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/feedspin/feedspin/internal/domain"
)

// MockCouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetCoupon(ctx context.Context, id uuid.UUID) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) MarkRedeemed(ctx context.Context, couponID, storeID, staffID uuid.UUID, usedAt time.Time) (int64, error) {
	args := m.Called(ctx, couponID, storeID, staffID, usedAt)
	return int64(args.Int(0)), args.Error(1)
}

// MockStoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) GetStoreWithOrg(ctx context.Context, storeID uuid.UUID) (*domain.StoreContext, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoreContext), args.Error(1)
}

func (m *MockStoreRepository) GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.StaffMembership, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMembership), args.Error(1)
}
