// Package redemption decides whether a coupon scan is legal at a given store.
//
// Two independent questions are answered in order: may this staff member scan
// at this register at all, and is this coupon redeemable at this register.
package redemption

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/logger"
	"github.com/feedspin/feedspin/internal/repository"
)

// Reason is a machine-readable authorization verdict detail.
type Reason string

const (
	// Allowed reasons
	ReasonSameStore      Reason = "same_store"
	ReasonCrossStore     Reason = "cross_store"
	ReasonLegacyMerchant Reason = "legacy_merchant"

	// Denied reasons
	ReasonWrongStore        Reason = "wrong_store"
	ReasonWrongOrganization Reason = "wrong_organization"
	ReasonAccessDenied      Reason = "access_denied"
)

// Decision is the authorizer's verdict on one scan.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

// Service defines the interface for redemption authorization
type Service interface {
	// Authorize evaluates staff access and coupon scope for a scan attempt.
	Authorize(ctx context.Context, coupon *domain.Coupon, scanning *domain.StoreContext, staffID uuid.UUID) (Decision, error)
}

type service struct {
	stores repository.Store
}

// NewService creates a new redemption authorizer
func NewService(stores repository.Store) Service {
	return &service{stores: stores}
}

func (s *service) Authorize(ctx context.Context, coupon *domain.Coupon, scanning *domain.StoreContext, staffID uuid.UUID) (Decision, error) {
	ok, err := s.staffMayScan(ctx, scanning, staffID)
	if err != nil {
		return Decision{}, err
	}
	if !ok {
		return Decision{Allowed: false, Reason: ReasonAccessDenied}, nil
	}

	return scopeDecision(coupon, scanning), nil
}

// staffMayScan gates on the scanning staff's relationship to the register:
// organization owners always may; everyone else needs an active membership
// with scanning rights whose store allowlist admits this store. Stores outside
// any organization are owner-operated and have no register-level gate here;
// merchant authentication is the surrounding API layer's concern.
func (s *service) staffMayScan(ctx context.Context, scanning *domain.StoreContext, staffID uuid.UUID) (bool, error) {
	org := scanning.Organization
	if org == nil {
		return true, nil
	}
	if org.OwnerID == staffID {
		return true, nil
	}

	membership, err := s.stores.GetMembership(ctx, org.ID, staffID)
	if err != nil {
		return false, fmt.Errorf("failed to get membership: %w", err)
	}
	if membership == nil || !membership.Active || !membership.CanScanCodes {
		return false, nil
	}
	if !membership.AllowsStore(scanning.Store.ID) {
		logger.FromContext(ctx).Warn("Scan blocked by store allowlist",
			"staff_id", staffID, "store_id", scanning.Store.ID)
		return false, nil
	}
	return true, nil
}

// scopeDecision applies the coupon-scoping table in fixed order; the first
// matching rule wins.
func scopeDecision(coupon *domain.Coupon, scanning *domain.StoreContext) Decision {
	// 1. Won at this register, or a same-merchant scan. Merchants predating
	// the organization model map one-to-one onto stores, so a merchant match
	// is treated as the same store.
	if coupon.WonAtStoreID == scanning.Store.ID || coupon.MerchantID == scanning.Store.MerchantID {
		return Decision{Allowed: true, Reason: ReasonSameStore}
	}

	sameOrg := coupon.OrganizationID != nil &&
		scanning.Store.OrganizationID != nil &&
		*coupon.OrganizationID == *scanning.Store.OrganizationID

	if sameOrg {
		// 2/3. Inside the issuing organization: either the coupon itself or
		// the organization policy must open cross-store redemption.
		orgAllows := scanning.Organization != nil && scanning.Organization.AllowCrossStoreRedemption
		if coupon.RedeemableAtAnyStore || orgAllows {
			return Decision{Allowed: true, Reason: ReasonCrossStore}
		}
		return Decision{Allowed: false, Reason: ReasonWrongStore}
	}

	// 4. Coupons issued before the organization model: merchant match is enough.
	if coupon.OrganizationID == nil && coupon.MerchantID == scanning.Store.MerchantID {
		return Decision{Allowed: true, Reason: ReasonLegacyMerchant}
	}

	// 5. Everything else is a different organization's coupon.
	return Decision{Allowed: false, Reason: ReasonWrongOrganization}
}
