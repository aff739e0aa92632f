package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedspin/feedspin/internal/domain"
)

// Store defines the membership and organization lookups used by the
// redemption authorizer.
type Store interface {
	// GetStoreWithOrg returns the store joined with its organization.
	// Returns domain.ErrStoreNotFound when the store does not exist.
	GetStoreWithOrg(ctx context.Context, storeID uuid.UUID) (*domain.StoreContext, error)

	// GetMembership returns nil, nil when the user has no membership in the
	// organization.
	GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.StaffMembership, error)
}
