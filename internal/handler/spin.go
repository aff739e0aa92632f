package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/logger"
	"github.com/feedspin/feedspin/internal/spin"
	"github.com/feedspin/feedspin/internal/wheel"
)

// SpinHandler serves the customer-facing wheel endpoints
type SpinHandler struct {
	service spin.Service
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(service spin.Service) *SpinHandler {
	return &SpinHandler{service: service}
}

type SpinRequest struct {
	MerchantID uuid.UUID `json:"merchant_id" validate:"required"`
	StoreID    uuid.UUID `json:"store_id" validate:"required"`
	ClientKey  string    `json:"client_key" validate:"max=255"`
}

// HandleSpin runs one wheel spin and returns the outcome
func (h *SpinHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	result, err := h.service.Spin(r.Context(), req.MerchantID, req.StoreID, req.ClientKey)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to run spin", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type WheelResponse struct {
	MerchantID uuid.UUID       `json:"merchant_id"`
	Segments   []wheel.Segment `json:"segments"`
}

// HandleWheel returns the merchant's current wheel arrangement for rendering
func (h *SpinHandler) HandleWheel(w http.ResponseWriter, r *http.Request) {
	merchantID, ok := GetUUIDQueryParam(r, w, "merchant_id")
	if !ok {
		return
	}

	segments, err := h.service.WheelSegments(r.Context(), merchantID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get wheel segments", "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, WheelResponse{MerchantID: merchantID, Segments: segments})
}
