package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Merchant/configuration errors
	ErrMsgMerchantNotFound   = "merchant not found"
	ErrMsgWheelNotConfigured = "wheel is not configured"

	// Coupon errors
	ErrMsgCouponNotFound    = "coupon not found"
	ErrMsgCouponAlreadyUsed = "coupon already used"
	ErrMsgCouponExpired     = "coupon expired"
	ErrMsgNotAWinningSpin   = "spin did not win a prize"

	// Store/organization errors
	ErrMsgStoreNotFound = "store not found"
	ErrMsgScanDenied    = "scan not permitted"

	// Loyalty errors
	ErrMsgLoyaltyClientNotFound = "loyalty client not found"
	ErrMsgInsufficientPoints    = "insufficient points"
	ErrMsgWelcomeAlreadyGranted = "welcome bonus already granted"

	// Prize stock errors
	ErrMsgPrizeOutOfStock = "prize out of stock"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrMerchantNotFound   = errors.New(ErrMsgMerchantNotFound)
	ErrWheelNotConfigured = errors.New(ErrMsgWheelNotConfigured)

	ErrCouponNotFound    = errors.New(ErrMsgCouponNotFound)
	ErrCouponAlreadyUsed = errors.New(ErrMsgCouponAlreadyUsed)
	ErrCouponExpired     = errors.New(ErrMsgCouponExpired)
	ErrNotAWinningSpin   = errors.New(ErrMsgNotAWinningSpin)

	ErrStoreNotFound = errors.New(ErrMsgStoreNotFound)
	ErrScanDenied    = errors.New(ErrMsgScanDenied)

	ErrLoyaltyClientNotFound = errors.New(ErrMsgLoyaltyClientNotFound)
	ErrInsufficientPoints    = errors.New(ErrMsgInsufficientPoints)
	ErrWelcomeAlreadyGranted = errors.New(ErrMsgWelcomeAlreadyGranted)

	ErrPrizeOutOfStock = errors.New(ErrMsgPrizeOutOfStock)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// CouponConflictError reports a redemption attempt against a coupon that was
// already redeemed. It carries the original redemption details so the caller
// can explain the conflict to an operator.
type CouponConflictError struct {
	CouponID          uuid.UUID
	UsedAt            time.Time
	RedeemedAtStoreID uuid.UUID
}

func (e *CouponConflictError) Error() string {
	return fmt.Sprintf("%s: redeemed at store %s at %s",
		ErrMsgCouponAlreadyUsed, e.RedeemedAtStoreID, e.UsedAt.Format(time.RFC3339))
}

// Is allows errors.Is(err, domain.ErrCouponAlreadyUsed) to match conflicts.
func (e *CouponConflictError) Is(target error) bool {
	return target == ErrCouponAlreadyUsed
}

// CouponExpiredError reports validation against a coupon past its expiry.
type CouponExpiredError struct {
	CouponID  uuid.UUID
	ExpiresAt time.Time
}

func (e *CouponExpiredError) Error() string {
	return fmt.Sprintf("%s: expired at %s", ErrMsgCouponExpired, e.ExpiresAt.Format(time.RFC3339))
}

// Is allows errors.Is(err, domain.ErrCouponExpired) to match expiry errors.
func (e *CouponExpiredError) Is(target error) bool {
	return target == ErrCouponExpired
}
