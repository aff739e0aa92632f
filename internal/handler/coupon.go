package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/coupon"
	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/logger"
	"github.com/feedspin/feedspin/internal/metrics"
)

// CouponHandler serves the staff-facing scan and redeem endpoints
type CouponHandler struct {
	service coupon.Service
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(service coupon.Service) *CouponHandler {
	return &CouponHandler{service: service}
}

type ScanCouponRequest struct {
	Code    string    `json:"code" validate:"required,max=16"`
	StoreID uuid.UUID `json:"store_id" validate:"required"`
	StaffID uuid.UUID `json:"staff_id" validate:"required"`
}

// HandleScan validates a scanned coupon code without redeeming it.
// An invalid coupon is still a successful scan: the result carries the
// rejection reason for the register to display.
func (h *CouponHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanCouponRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Scan coupon"); err != nil {
		return
	}

	result, err := h.service.ValidateForRedemption(r.Context(), req.Code, req.StoreID, req.StaffID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to validate coupon", "error", err)
		respondServiceError(w, err)
		return
	}

	if !result.Valid {
		metrics.RedemptionsRejected.WithLabelValues(result.Reason).Inc()
	}
	respondJSON(w, http.StatusOK, result)
}

type RedeemCouponRequest struct {
	CouponID uuid.UUID `json:"coupon_id" validate:"required"`
	StoreID  uuid.UUID `json:"store_id" validate:"required"`
	StaffID  uuid.UUID `json:"staff_id" validate:"required"`
}

type RedeemCouponResponse struct {
	Success bool           `json:"success"`
	Coupon  *domain.Coupon `json:"coupon"`
}

// ConflictResponse reports a redemption that lost to an earlier one,
// including where and when the coupon was actually used.
type ConflictResponse struct {
	Error             string    `json:"error"`
	Reason            string    `json:"reason"`
	UsedAt            time.Time `json:"used_at"`
	RedeemedAtStoreID uuid.UUID `json:"redeemed_at_store_id"`
}

// HandleRedeem performs the one-time redemption transition
func (h *CouponHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemCouponRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Redeem coupon"); err != nil {
		return
	}

	redeemed, err := h.service.Redeem(r.Context(), req.CouponID, req.StoreID, req.StaffID)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Coupon redemption refused", "coupon_id", req.CouponID, "error", err)

		var conflict *domain.CouponConflictError
		if errors.As(err, &conflict) {
			metrics.RedemptionsRejected.WithLabelValues(ReasonCodeAlreadyUsed).Inc()
			respondJSON(w, http.StatusBadRequest, ConflictResponse{
				Error:             ErrMsgCouponAlreadyUsed,
				Reason:            ReasonCodeAlreadyUsed,
				UsedAt:            conflict.UsedAt,
				RedeemedAtStoreID: conflict.RedeemedAtStoreID,
			})
			return
		}

		status, message, reason := mapServiceError(err)
		if reason != "" {
			metrics.RedemptionsRejected.WithLabelValues(reason).Inc()
			respondReason(w, status, message, reason)
			return
		}
		respondError(w, status, message)
		return
	}

	metrics.CouponsRedeemed.Inc()
	respondJSON(w, http.StatusOK, RedeemCouponResponse{Success: true, Coupon: redeemed})
}
