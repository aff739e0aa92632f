package coupon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/logger"
	"github.com/feedspin/feedspin/internal/redemption"
	"github.com/feedspin/feedspin/internal/repository"
)

// ScanResult is the outcome of validating a scanned code.
type ScanResult struct {
	Valid  bool           `json:"valid"`
	Reason string         `json:"reason,omitempty"`
	Coupon *domain.Coupon `json:"coupon,omitempty"`
}

// Scan reason codes surfaced to the dashboard. Authorization reasons come
// from the redemption package unchanged.
const (
	ReasonNotFound    = "not_found"
	ReasonAlreadyUsed = "already_used"
	ReasonExpired     = "expired"
)

// Service defines the interface for coupon lifecycle operations
type Service interface {
	// Issue builds the coupon record for a winning draw. Persistence belongs
	// to the caller's transaction; Issue itself writes nothing.
	Issue(draw domain.DrawResult, spinID uuid.UUID, store *domain.StoreContext, cfg *domain.WheelConfig) (*domain.Coupon, error)

	// ValidateForRedemption checks a scanned code without mutating anything.
	ValidateForRedemption(ctx context.Context, code string, storeID, staffID uuid.UUID) (*ScanResult, error)

	// Redeem performs the one-time redemption transition.
	Redeem(ctx context.Context, couponID, storeID, staffID uuid.UUID) (*domain.Coupon, error)
}

type service struct {
	repo       repository.Coupon
	stores     repository.Store
	authorizer redemption.Service
	now        func() time.Time
}

// NewService creates a new coupon service
func NewService(repo repository.Coupon, stores repository.Store, authorizer redemption.Service) Service {
	return &service{
		repo:       repo,
		stores:     stores,
		authorizer: authorizer,
		now:        time.Now,
	}
}

// NewServiceWithClock creates a coupon service with an injected time source.
func NewServiceWithClock(repo repository.Coupon, stores repository.Store, authorizer redemption.Service, now func() time.Time) Service {
	return &service{
		repo:       repo,
		stores:     stores,
		authorizer: authorizer,
		now:        now,
	}
}

// Issue copies the organization scope and the any-store flag from policy at
// issuance time. Policy changes after issuance never affect this coupon.
func (s *service) Issue(draw domain.DrawResult, spinID uuid.UUID, store *domain.StoreContext, cfg *domain.WheelConfig) (*domain.Coupon, error) {
	if !draw.Won() {
		return nil, fmt.Errorf("%w: outcome %s", domain.ErrNotAWinningSpin, draw.Kind)
	}

	code, err := GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate coupon code: %w", err)
	}

	now := s.now()
	coupon := &domain.Coupon{
		ID:           uuid.New(),
		SpinID:       spinID,
		MerchantID:   cfg.MerchantID,
		WonAtStoreID: store.Store.ID,
		Code:         code,
		PrizeID:      draw.PrizeID,
		PrizeName:    draw.PrizeName,
		ExpiresAt:    now.Add(cfg.CouponTTL),
		CreatedAt:    now,
	}
	if store.Organization != nil {
		orgID := store.Organization.ID
		coupon.OrganizationID = &orgID
		coupon.RedeemableAtAnyStore = cfg.RedeemableAtAnyStore
	}
	return coupon, nil
}

// ValidateForRedemption evaluates rejection reasons in a fixed order:
// not_found, already_used, expired, then authorization. Expiry is a property
// of the coupon alone, so it is diagnosed before any store relationship.
func (s *service) ValidateForRedemption(ctx context.Context, code string, storeID, staffID uuid.UUID) (*ScanResult, error) {
	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if coupon == nil {
		return &ScanResult{Valid: false, Reason: ReasonNotFound}, nil
	}
	if coupon.Used {
		return &ScanResult{Valid: false, Reason: ReasonAlreadyUsed, Coupon: coupon}, nil
	}
	if coupon.Expired(s.now()) {
		return &ScanResult{Valid: false, Reason: ReasonExpired, Coupon: coupon}, nil
	}

	store, err := s.stores.GetStoreWithOrg(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	decision, err := s.authorizer.Authorize(ctx, coupon, store, staffID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return &ScanResult{Valid: false, Reason: string(decision.Reason), Coupon: coupon}, nil
	}
	return &ScanResult{Valid: true, Reason: string(decision.Reason), Coupon: coupon}, nil
}

// Redeem flips used from false to true as a single conditional update at the
// persistence layer. Two concurrent scans of one coupon yield exactly one
// success; the loser gets a conflict carrying the winner's store and time.
func (s *service) Redeem(ctx context.Context, couponID, storeID, staffID uuid.UUID) (*domain.Coupon, error) {
	log := logger.FromContext(ctx)

	coupon, err := s.repo.GetCoupon(ctx, couponID)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	if coupon == nil {
		return nil, domain.ErrCouponNotFound
	}
	if coupon.Used {
		return nil, conflictFrom(coupon)
	}
	if coupon.Expired(s.now()) {
		return nil, &domain.CouponExpiredError{CouponID: coupon.ID, ExpiresAt: coupon.ExpiresAt}
	}

	store, err := s.stores.GetStoreWithOrg(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	decision, err := s.authorizer.Authorize(ctx, coupon, store, staffID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &redemption.DeniedError{Reason: decision.Reason}
	}

	usedAt := s.now()
	affected, err := s.repo.MarkRedeemed(ctx, couponID, storeID, staffID, usedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to mark coupon redeemed: %w", err)
	}
	if affected == 0 {
		// Lost the race: a concurrent scan redeemed it between our read and
		// the conditional write. Re-read for the winner's details.
		current, err := s.repo.GetCoupon(ctx, couponID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read coupon after conflict: %w", err)
		}
		if current == nil {
			return nil, domain.ErrCouponNotFound
		}
		log.Warn("Concurrent redemption conflict", "coupon_id", couponID, "store_id", storeID)
		return nil, conflictFrom(current)
	}

	coupon.Used = true
	coupon.UsedAt = &usedAt
	coupon.RedeemedAtStoreID = &storeID
	coupon.RedeemedByStaffID = &staffID
	log.Info("Coupon redeemed", "coupon_id", couponID, "store_id", storeID, "reason", decision.Reason)
	return coupon, nil
}

func conflictFrom(coupon *domain.Coupon) *domain.CouponConflictError {
	conflict := &domain.CouponConflictError{CouponID: coupon.ID}
	if coupon.UsedAt != nil {
		conflict.UsedAt = *coupon.UsedAt
	}
	if coupon.RedeemedAtStoreID != nil {
		conflict.RedeemedAtStoreID = *coupon.RedeemedAtStoreID
	}
	return conflict
}
