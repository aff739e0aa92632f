package handler

import (
	"errors"
	"net/http"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/redemption"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidUUIDParam  = "Invalid %s: must be a UUID"

	// Generic messages
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."

	// Spin messages
	ErrMsgMerchantNotFound   = "Merchant not found"
	ErrMsgWheelNotConfigured = "This merchant has not configured a wheel yet"
	ErrMsgStoreNotFound      = "Store not found"

	// Coupon messages
	ErrMsgCouponNotFound    = "Coupon not found"
	ErrMsgCouponAlreadyUsed = "This coupon has already been redeemed"
	ErrMsgCouponExpired     = "This coupon has expired"
	ErrMsgScanNotPermitted  = "This coupon cannot be redeemed at this store"

	// Loyalty messages
	ErrMsgClientNotFound        = "Loyalty client not found"
	ErrMsgInsufficientPoints    = "Not enough points"
	ErrMsgWelcomeAlreadyGranted = "Welcome bonus was already granted"
	ErrMsgInvalidPoints         = "Points amount is invalid"
)

// Machine-readable reason codes for error responses
const (
	ReasonCodeNotFound           = "not_found"
	ReasonCodeAlreadyUsed        = "already_used"
	ReasonCodeExpired            = "expired"
	ReasonCodeRateLimited        = "rate_limited"
	ReasonCodeNotConfigured      = "not_configured"
	ReasonCodeInsufficientPoints = "insufficient_points"
)

// mapServiceError maps domain errors to an HTTP status, a user-facing message
// and a machine-readable reason code. An empty reason means the response
// carries no reason field.
func mapServiceError(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgGenericServerError, ""
	}

	// Authorization denials carry their own reason code
	var denied *redemption.DeniedError
	if errors.As(err, &denied) {
		return http.StatusForbidden, ErrMsgScanNotPermitted, string(denied.Reason)
	}

	switch {
	case errors.Is(err, domain.ErrMerchantNotFound):
		return http.StatusNotFound, ErrMsgMerchantNotFound, ReasonCodeNotFound
	case errors.Is(err, domain.ErrWheelNotConfigured):
		return http.StatusNotFound, ErrMsgWheelNotConfigured, ReasonCodeNotConfigured
	case errors.Is(err, domain.ErrStoreNotFound):
		return http.StatusNotFound, ErrMsgStoreNotFound, ReasonCodeNotFound
	case errors.Is(err, domain.ErrCouponNotFound):
		return http.StatusNotFound, ErrMsgCouponNotFound, ReasonCodeNotFound
	case errors.Is(err, domain.ErrCouponAlreadyUsed):
		return http.StatusBadRequest, ErrMsgCouponAlreadyUsed, ReasonCodeAlreadyUsed
	case errors.Is(err, domain.ErrCouponExpired):
		return http.StatusBadRequest, ErrMsgCouponExpired, ReasonCodeExpired
	case errors.Is(err, domain.ErrLoyaltyClientNotFound):
		return http.StatusNotFound, ErrMsgClientNotFound, ReasonCodeNotFound
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusBadRequest, ErrMsgInsufficientPoints, ReasonCodeInsufficientPoints
	case errors.Is(err, domain.ErrWelcomeAlreadyGranted):
		return http.StatusBadRequest, ErrMsgWelcomeAlreadyGranted, ""
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidPoints, ""
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError, ""
}

// respondServiceError maps err and writes the response
func respondServiceError(w http.ResponseWriter, err error) {
	status, message, reason := mapServiceError(err)
	if reason == "" {
		respondError(w, status, message)
		return
	}
	respondReason(w, status, message, reason)
}
