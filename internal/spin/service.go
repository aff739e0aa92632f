package spin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/coupon"
	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/draw"
	"github.com/feedspin/feedspin/internal/logger"
	"github.com/feedspin/feedspin/internal/metrics"
	"github.com/feedspin/feedspin/internal/repository"
	"github.com/feedspin/feedspin/internal/wheel"
)

// Result is what a spin request returns to the client.
type Result struct {
	Outcome domain.OutcomeKind `json:"outcome"`
	Prize   string             `json:"prize,omitempty"`
	Coupon  *domain.Coupon     `json:"coupon,omitempty"`
	SpinID  uuid.UUID          `json:"spin_id"`
}

// Service defines the interface for spin operations
type Service interface {
	// Spin runs one draw for a customer at a store and persists the outcome.
	Spin(ctx context.Context, merchantID, storeID uuid.UUID, clientKey string) (*Result, error)

	// WheelSegments returns the merchant's current wheel arrangement for
	// client rendering. Independent of any draw.
	WheelSegments(ctx context.Context, merchantID uuid.UUID) ([]wheel.Segment, error)

	// InvalidateConfig drops a merchant's cached configuration.
	InvalidateConfig(merchantID uuid.UUID)
}

type service struct {
	repo      repository.Spin
	engine    *draw.Engine
	couponSvc coupon.Service
	cache     *configCache
}

// NewService creates a new spin service
func NewService(repo repository.Spin, engine *draw.Engine, couponSvc coupon.Service) Service {
	return &service{
		repo:      repo,
		engine:    engine,
		couponSvc: couponSvc,
		cache:     newConfigCache(ConfigCacheSize, ConfigCacheTTL),
	}
}

func (s *service) Spin(ctx context.Context, merchantID, storeID uuid.UUID, clientKey string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSpinCalled, "merchant_id", merchantID, "store_id", storeID)

	cfg, err := s.getConfig(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	store, err := s.repo.GetStoreWithOrg(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetStore, err)
	}

	result, err := s.engine.Draw(*cfg)
	if err != nil {
		return nil, err
	}

	spinRecord := &domain.Spin{
		ID:         uuid.New(),
		MerchantID: merchantID,
		StoreID:    storeID,
		Outcome:    result.Kind,
		ClientKey:  clientKey,
		CreatedAt:  time.Now(),
	}

	persisted, err := s.persistSpin(ctx, spinRecord, result, store, cfg)
	if err != nil {
		return nil, err
	}

	metrics.SpinsTotal.WithLabelValues(string(persisted.Outcome)).Inc()
	return persisted, nil
}

// persistSpin writes the spin, the stock decrement and the coupon in one
// transaction. The decrement is conditioned on quantity > 0 at write time;
// losing that condition converts the outcome to unlucky rather than
// re-drawing, so a spin samples randomness exactly once.
func (s *service) persistSpin(ctx context.Context, spinRecord *domain.Spin, result domain.DrawResult, store *domain.StoreContext, cfg *domain.WheelConfig) (*Result, error) {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginSpinTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if result.Won() && s.prizeTracked(cfg, result.PrizeID) {
		decremented, err := tx.DecrementPrizeStock(ctx, result.PrizeID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement prize stock: %w", err)
		}
		if !decremented {
			log.Warn(LogMsgStockExhausted, "prize_id", result.PrizeID)
			s.cache.Invalidate(spinRecord.MerchantID)
			result = domain.DrawResult{Kind: domain.OutcomeUnlucky}
		}
	}

	spinRecord.Outcome = result.Kind
	if result.Won() {
		prizeID := result.PrizeID
		spinRecord.PrizeID = &prizeID
	}
	if err := tx.CreateSpin(ctx, spinRecord); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToRecordSpin, err)
	}

	out := &Result{Outcome: result.Kind, SpinID: spinRecord.ID}
	if result.Won() {
		issued, err := s.couponSvc.Issue(result, spinRecord.ID, store, cfg)
		if err != nil {
			return nil, err
		}
		if err := tx.CreateCoupon(ctx, issued); err != nil {
			return nil, fmt.Errorf("failed to create coupon: %w", err)
		}
		out.Prize = result.PrizeName
		out.Coupon = issued
		log.Info(LogMsgCouponIssued, "coupon_id", issued.ID, "prize", issued.PrizeName)
		metrics.CouponsIssued.Inc()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommit, err)
	}
	return out, nil
}

func (s *service) WheelSegments(ctx context.Context, merchantID uuid.UUID) ([]wheel.Segment, error) {
	cfg, err := s.getConfig(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	sources := wheel.FromConfig(*cfg, UnluckyLabel, RetryLabel)
	return wheel.Layout(sources, cfg.MaxWheelSegments), nil
}

func (s *service) InvalidateConfig(merchantID uuid.UUID) {
	s.cache.Invalidate(merchantID)
}

func (s *service) getConfig(ctx context.Context, merchantID uuid.UUID) (*domain.WheelConfig, error) {
	if cfg, ok := s.cache.Get(merchantID); ok {
		return cfg, nil
	}
	cfg, err := s.repo.GetWheelConfig(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetConfig, err)
	}
	s.cache.Set(merchantID, cfg)
	return cfg, nil
}

// prizeTracked reports whether the winning prize's stock is finite and so
// needs the conditional decrement.
func (s *service) prizeTracked(cfg *domain.WheelConfig, prizeID uuid.UUID) bool {
	for _, p := range cfg.Prizes {
		if p.ID == prizeID {
			return p.Quantity != domain.UnlimitedStock
		}
	}
	return false
}
