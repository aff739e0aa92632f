package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind classifies a loyalty points movement.
type TransactionKind string

const (
	TransactionEarn    TransactionKind = "earn"
	TransactionWelcome TransactionKind = "welcome"
	TransactionBonus   TransactionKind = "bonus"
	TransactionRedeem  TransactionKind = "redeem"
)

// Credit reports whether the kind adds points to the balance.
func (k TransactionKind) Credit() bool {
	return k != TransactionRedeem
}

// LoyaltyClient is a customer enrolled in a merchant's points program.
// Balance is always the sum of the client's transactions, never stored.
type LoyaltyClient struct {
	ID         uuid.UUID `json:"id"`
	MerchantID uuid.UUID `json:"merchant_id"`
	Balance    int       `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

// PointsTransaction is one append-only ledger entry. Points is signed:
// positive for credits, negative for redemptions.
type PointsTransaction struct {
	ID         uuid.UUID       `json:"id"`
	ClientID   uuid.UUID       `json:"client_id"`
	MerchantID uuid.UUID       `json:"merchant_id"`
	Kind       TransactionKind `json:"kind"`
	Points     int             `json:"points"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
