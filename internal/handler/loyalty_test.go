package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/feedspin/feedspin/internal/domain"
)

func TestHandleEarn(t *testing.T) {
	InitValidator()

	clientID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockLoyaltyService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success - Earn",
			requestBody: EarnPointsRequest{
				ClientID: clientID,
				Kind:     "earn",
				Points:   50,
				Note:     "purchase",
			},
			setupMock: func(m *MockLoyaltyService) {
				m.On("Credit", mock.Anything, clientID, domain.TransactionEarn, 50, "purchase").Return(&domain.PointsTransaction{
					ID:       uuid.New(),
					ClientID: clientID,
					Kind:     domain.TransactionEarn,
					Points:   50,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"points":50`,
		},
		{
			name: "Invalid Kind",
			requestBody: EarnPointsRequest{
				ClientID: clientID,
				Kind:     "redeem",
				Points:   50,
			},
			setupMock:      func(m *MockLoyaltyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Invalid Points - Zero",
			requestBody: EarnPointsRequest{
				ClientID: clientID,
				Kind:     "earn",
				Points:   0,
			},
			setupMock:      func(m *MockLoyaltyService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name: "Client Not Found",
			requestBody: EarnPointsRequest{
				ClientID: clientID,
				Kind:     "bonus",
				Points:   25,
			},
			setupMock: func(m *MockLoyaltyService) {
				m.On("Credit", mock.Anything, clientID, domain.TransactionBonus, 25, "").Return(nil, domain.ErrLoyaltyClientNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgClientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockLoyaltyService{}
			tt.setupMock(mockSvc)

			handler := NewLoyaltyHandler(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/api/v1/loyalty/earn", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			handler.HandleEarn(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleWelcomePoints(t *testing.T) {
	InitValidator()

	clientID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockLoyaltyService{}
		mockSvc.On("GrantWelcome", mock.Anything, clientID, 100).Return(&domain.PointsTransaction{
			ID:       uuid.New(),
			ClientID: clientID,
			Kind:     domain.TransactionWelcome,
			Points:   100,
		}, nil)

		handler := NewLoyaltyHandler(mockSvc)

		body, _ := json.Marshal(WelcomePointsRequest{ClientID: clientID, Points: 100})
		req := httptest.NewRequest("POST", "/api/v1/loyalty/welcome", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.HandleWelcome(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"welcome"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Already Granted", func(t *testing.T) {
		mockSvc := &MockLoyaltyService{}
		mockSvc.On("GrantWelcome", mock.Anything, clientID, 100).Return(nil, domain.ErrWelcomeAlreadyGranted)

		handler := NewLoyaltyHandler(mockSvc)

		body, _ := json.Marshal(WelcomePointsRequest{ClientID: clientID, Points: 100})
		req := httptest.NewRequest("POST", "/api/v1/loyalty/welcome", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.HandleWelcome(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgWelcomeAlreadyGranted)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandleRedeemPoints(t *testing.T) {
	InitValidator()

	clientID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockLoyaltyService{}
		mockSvc.On("Redeem", mock.Anything, clientID, 30, "free drink").Return(&domain.PointsTransaction{
			ID:        uuid.New(),
			ClientID:  clientID,
			Kind:      domain.TransactionRedeem,
			Points:    -30,
			CreatedAt: time.Now(),
		}, nil)
		mockSvc.On("GetBalance", mock.Anything, clientID).Return(70, nil)

		handler := NewLoyaltyHandler(mockSvc)

		body, _ := json.Marshal(RedeemPointsRequest{ClientID: clientID, Points: 30, Note: "free drink"})
		req := httptest.NewRequest("POST", "/api/v1/loyalty/redeem", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.HandleRedeem(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"balance":70`)
		assert.Contains(t, w.Body.String(), `"points":-30`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Insufficient Points", func(t *testing.T) {
		mockSvc := &MockLoyaltyService{}
		mockSvc.On("Redeem", mock.Anything, clientID, 500, "").Return(nil, domain.ErrInsufficientPoints)

		handler := NewLoyaltyHandler(mockSvc)

		body, _ := json.Marshal(RedeemPointsRequest{ClientID: clientID, Points: 500})
		req := httptest.NewRequest("POST", "/api/v1/loyalty/redeem", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.HandleRedeem(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"reason":"insufficient_points"`)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandleBalance(t *testing.T) {
	clientID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockLoyaltyService{}
		mockSvc.On("GetBalance", mock.Anything, clientID).Return(120, nil)

		handler := NewLoyaltyHandler(mockSvc)

		req := httptest.NewRequest("GET", "/api/v1/loyalty/balance?client_id="+clientID.String(), nil)
		w := httptest.NewRecorder()

		handler.HandleBalance(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"balance":120`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Missing client_id", func(t *testing.T) {
		handler := NewLoyaltyHandler(&MockLoyaltyService{})

		req := httptest.NewRequest("GET", "/api/v1/loyalty/balance", nil)
		w := httptest.NewRecorder()

		handler.HandleBalance(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Client Not Found", func(t *testing.T) {
		mockSvc := &MockLoyaltyService{}
		mockSvc.On("GetBalance", mock.Anything, clientID).Return(0, domain.ErrLoyaltyClientNotFound)

		handler := NewLoyaltyHandler(mockSvc)

		req := httptest.NewRequest("GET", "/api/v1/loyalty/balance?client_id="+clientID.String(), nil)
		w := httptest.NewRecorder()

		handler.HandleBalance(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgClientNotFound)
		mockSvc.AssertExpectations(t)
	})
}

func TestHandleHistory(t *testing.T) {
	clientID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockLoyaltyService{}
		mockSvc.On("History", mock.Anything, clientID, 10).Return([]domain.PointsTransaction{
			{ID: uuid.New(), ClientID: clientID, Kind: domain.TransactionEarn, Points: 50},
			{ID: uuid.New(), ClientID: clientID, Kind: domain.TransactionRedeem, Points: -20},
		}, nil)

		handler := NewLoyaltyHandler(mockSvc)

		req := httptest.NewRequest("GET", "/api/v1/loyalty/history?client_id="+clientID.String()+"&limit=10", nil)
		w := httptest.NewRecorder()

		handler.HandleHistory(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"points":-20`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		handler := NewLoyaltyHandler(&MockLoyaltyService{})

		req := httptest.NewRequest("GET", "/api/v1/loyalty/history?client_id="+clientID.String()+"&limit=abc", nil)
		w := httptest.NewRecorder()

		handler.HandleHistory(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid limit")
	})
}
