package domain

import (
	"github.com/google/uuid"
)

// Organization groups multiple stores under shared redemption policy.
type Organization struct {
	ID                       uuid.UUID `json:"id"`
	OwnerID                  uuid.UUID `json:"owner_id"`
	Name                     string    `json:"name"`
	AllowCrossStoreRedemption bool     `json:"allow_cross_store_redemption"`
}

// Store is a physical location. Single-store merchants have no organization.
type Store struct {
	ID             uuid.UUID  `json:"id"`
	MerchantID     uuid.UUID  `json:"merchant_id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	Name           string     `json:"name"`
}

// StoreContext is a store joined with its organization, as needed by
// redemption decisions. Organization is nil for single-store merchants.
type StoreContext struct {
	Store        Store
	Organization *Organization
}

// StaffMembership grants a user scanning rights inside an organization.
// An empty StoreIDs allowlist means every store in the organization.
type StaffMembership struct {
	OrganizationID uuid.UUID   `json:"organization_id"`
	UserID         uuid.UUID   `json:"user_id"`
	Active         bool        `json:"active"`
	CanScanCodes   bool        `json:"can_scan_codes"`
	StoreIDs       []uuid.UUID `json:"store_ids,omitempty"`
}

// AllowsStore reports whether the membership's store allowlist admits storeID.
func (m StaffMembership) AllowsStore(storeID uuid.UUID) bool {
	if len(m.StoreIDs) == 0 {
		return true
	}
	for _, id := range m.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}
