package domain

import (
	"time"

	"github.com/google/uuid"
)

// UnlimitedStock marks a prize whose quantity is not tracked.
const UnlimitedStock = -1

// Merchant is a tenant operating one or more prize wheels.
type Merchant struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	Name           string     `json:"name"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Prize is one configurable wheel outcome owned by a merchant.
// ProbabilityWeight controls draw odds; CopiesOnWheel controls how many
// wedges the prize occupies visually. The two are deliberately independent.
type Prize struct {
	ID                uuid.UUID `json:"id"`
	MerchantID        uuid.UUID `json:"merchant_id"`
	Name              string    `json:"name"`
	ProbabilityWeight float64   `json:"probability_weight"`
	Quantity          int       `json:"quantity"` // UnlimitedStock when not tracked
	CopiesOnWheel     int       `json:"copies_on_wheel"`
}

// InStock reports whether the prize can still be won.
func (p Prize) InStock() bool {
	return p.Quantity == UnlimitedStock || p.Quantity > 0
}

// WheelConfig is a merchant's full wheel configuration: the prize table plus
// the weights of the two non-prize outcomes. Weights are treated as relative;
// the draw normalizes by their sum rather than assuming they total 100.
type WheelConfig struct {
	MerchantID    uuid.UUID `json:"merchant_id"`
	Prizes        []Prize   `json:"prizes"`
	UnluckyWeight float64   `json:"unlucky_weight"`
	RetryWeight   float64   `json:"retry_weight"`

	MaxWheelSegments     int           `json:"max_wheel_segments"`
	CouponTTL            time.Duration `json:"coupon_ttl"`
	RedeemableAtAnyStore bool          `json:"redeemable_at_any_store"`
}
