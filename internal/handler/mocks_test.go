package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/feedspin/feedspin/internal/coupon"
	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/loyalty"
	"github.com/feedspin/feedspin/internal/spin"
	"github.com/feedspin/feedspin/internal/wheel"
)

// MockSpinService is a testify mock for spin.Service
type MockSpinService struct {
	mock.Mock
}

var _ spin.Service = (*MockSpinService)(nil)

func (m *MockSpinService) Spin(ctx context.Context, merchantID, storeID uuid.UUID, clientKey string) (*spin.Result, error) {
	args := m.Called(ctx, merchantID, storeID, clientKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spin.Result), args.Error(1)
}

func (m *MockSpinService) WheelSegments(ctx context.Context, merchantID uuid.UUID) ([]wheel.Segment, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wheel.Segment), args.Error(1)
}

func (m *MockSpinService) InvalidateConfig(merchantID uuid.UUID) {
	m.Called(merchantID)
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

// MockLoyaltyService is a testify mock for loyalty.Service
type MockLoyaltyService struct {
	mock.Mock
}

var _ loyalty.Service = (*MockLoyaltyService)(nil)

func (m *MockLoyaltyService) Credit(ctx context.Context, clientID uuid.UUID, kind domain.TransactionKind, points int, note string) (*domain.PointsTransaction, error) {
	args := m.Called(ctx, clientID, kind, points, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsTransaction), args.Error(1)
}

func (m *MockLoyaltyService) GrantWelcome(ctx context.Context, clientID uuid.UUID, points int) (*domain.PointsTransaction, error) {
	args := m.Called(ctx, clientID, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsTransaction), args.Error(1)
}

func (m *MockLoyaltyService) Redeem(ctx context.Context, clientID uuid.UUID, points int, note string) (*domain.PointsTransaction, error) {
	args := m.Called(ctx, clientID, points, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsTransaction), args.Error(1)
}

func (m *MockLoyaltyService) GetBalance(ctx context.Context, clientID uuid.UUID) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *MockLoyaltyService) History(ctx context.Context, clientID uuid.UUID, limit int) ([]domain.PointsTransaction, error) {
	args := m.Called(ctx, clientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PointsTransaction), args.Error(1)
}
