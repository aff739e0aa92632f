package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/logger"
	"github.com/feedspin/feedspin/internal/loyalty"
	"github.com/feedspin/feedspin/internal/metrics"
)

// LoyaltyHandler serves the points ledger endpoints
type LoyaltyHandler struct {
	service loyalty.Service
}

// NewLoyaltyHandler creates a new LoyaltyHandler
func NewLoyaltyHandler(service loyalty.Service) *LoyaltyHandler {
	return &LoyaltyHandler{service: service}
}

type EarnPointsRequest struct {
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	Kind     string    `json:"kind" validate:"required,txkind"`
	Points   int       `json:"points" validate:"required,gt=0"`
	Note     string    `json:"note" validate:"max=255"`
}

type TransactionResponse struct {
	Transaction *domain.PointsTransaction `json:"transaction"`
}

// HandleEarn appends a credit transaction to the client's ledger
func (h *LoyaltyHandler) HandleEarn(w http.ResponseWriter, r *http.Request) {
	var req EarnPointsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Earn points"); err != nil {
		return
	}

	tx, err := h.service.Credit(r.Context(), req.ClientID, domain.TransactionKind(req.Kind), req.Points, req.Note)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to credit points", "client_id", req.ClientID, "error", err)
		respondServiceError(w, err)
		return
	}

	metrics.PointsTransactions.WithLabelValues(string(tx.Kind)).Inc()
	respondJSON(w, http.StatusOK, TransactionResponse{Transaction: tx})
}

type WelcomePointsRequest struct {
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	Points   int       `json:"points" validate:"required,gt=0"`
}

// HandleWelcome grants the one-time welcome credit
func (h *LoyaltyHandler) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	var req WelcomePointsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Welcome points"); err != nil {
		return
	}

	tx, err := h.service.GrantWelcome(r.Context(), req.ClientID, req.Points)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Welcome grant refused", "client_id", req.ClientID, "error", err)
		respondServiceError(w, err)
		return
	}

	metrics.PointsTransactions.WithLabelValues(string(tx.Kind)).Inc()
	respondJSON(w, http.StatusOK, TransactionResponse{Transaction: tx})
}

type RedeemPointsRequest struct {
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	Points   int       `json:"points" validate:"required,gt=0"`
	Note     string    `json:"note" validate:"max=255"`
}

type RedeemPointsResponse struct {
	Transaction *domain.PointsTransaction `json:"transaction"`
	Balance     int                       `json:"balance"`
}

// HandleRedeem debits points from the client's balance. The debit is
// refused atomically when the balance does not cover it.
func (h *LoyaltyHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemPointsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Redeem points"); err != nil {
		return
	}

	tx, err := h.service.Redeem(r.Context(), req.ClientID, req.Points, req.Note)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Points redemption refused", "client_id", req.ClientID, "error", err)
		respondServiceError(w, err)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), req.ClientID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get balance after redemption", "client_id", req.ClientID, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}

	metrics.PointsTransactions.WithLabelValues(string(tx.Kind)).Inc()
	respondJSON(w, http.StatusOK, RedeemPointsResponse{Transaction: tx, Balance: balance})
}

type BalanceResponse struct {
	ClientID uuid.UUID `json:"client_id"`
	Balance  int       `json:"balance"`
}

// HandleBalance returns the client's current points balance
func (h *LoyaltyHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	clientID, ok := GetUUIDQueryParam(r, w, "client_id")
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), clientID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get balance", "client_id", clientID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{ClientID: clientID, Balance: balance})
}

type HistoryResponse struct {
	ClientID     uuid.UUID                  `json:"client_id"`
	Transactions []domain.PointsTransaction `json:"transactions"`
}

// HandleHistory returns the client's most recent transactions
func (h *LoyaltyHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	clientID, ok := GetUUIDQueryParam(r, w, "client_id")
	if !ok {
		return
	}

	limit := 0
	if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit: must be an integer")
			return
		}
		limit = parsed
	}

	txs, err := h.service.History(r.Context(), clientID, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get history", "client_id", clientID, "error", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{ClientID: clientID, Transactions: txs})
}
