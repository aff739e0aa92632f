package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeKind classifies the result of a single wheel spin.
type OutcomeKind string

const (
	OutcomePrize   OutcomeKind = "prize"
	OutcomeUnlucky OutcomeKind = "unlucky"
	OutcomeRetry   OutcomeKind = "retry"
)

// DrawResult is the immutable outcome of one weighted draw.
// PrizeID and PrizeName are set only when Kind == OutcomePrize.
type DrawResult struct {
	Kind      OutcomeKind `json:"kind"`
	PrizeID   uuid.UUID   `json:"prize_id,omitempty"`
	PrizeName string      `json:"prize_name,omitempty"`
}

// Won reports whether the draw produced a coupon-worthy prize.
func (d DrawResult) Won() bool {
	return d.Kind == OutcomePrize
}

// Spin records one customer invocation of the wheel.
type Spin struct {
	ID         uuid.UUID   `json:"id"`
	MerchantID uuid.UUID   `json:"merchant_id"`
	StoreID    uuid.UUID   `json:"store_id"`
	Outcome    OutcomeKind `json:"outcome"`
	PrizeID    *uuid.UUID  `json:"prize_id,omitempty"`
	ClientKey  string      `json:"client_key,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
