package domain

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a single-use voucher created for a winning spin.
//
// Lifecycle: issued -> redeemed (explicit, at most once) or issued -> expired
// (implicit, computed from ExpiresAt; never stored as a transition).
// Organization scope and RedeemableAtAnyStore are copied from merchant policy
// at issuance time so later policy changes never affect issued coupons.
type Coupon struct {
	ID             uuid.UUID  `json:"id"`
	SpinID         uuid.UUID  `json:"spin_id"`
	MerchantID     uuid.UUID  `json:"merchant_id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	WonAtStoreID   uuid.UUID  `json:"won_at_store_id"`

	Code      string    `json:"code"`
	PrizeID   uuid.UUID `json:"prize_id"`
	PrizeName string    `json:"prize_name"`

	ExpiresAt            time.Time `json:"expires_at"`
	RedeemableAtAnyStore bool      `json:"redeemable_at_any_store"`

	Used              bool       `json:"used"`
	UsedAt            *time.Time `json:"used_at,omitempty"`
	RedeemedAtStoreID *uuid.UUID `json:"redeemed_at_store_id,omitempty"`
	RedeemedByStaffID *uuid.UUID `json:"redeemed_by_staff_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the coupon is past its expiry at the given instant.
func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
