package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/repository"
)

// StoreRepository implements repository.Store for PostgreSQL
type StoreRepository struct {
	db *pgxpool.Pool
}

// NewStoreRepository creates a new StoreRepository
func NewStoreRepository(db *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{db: db}
}

var _ repository.Store = (*StoreRepository)(nil)

// GetStoreWithOrg retrieves a store joined with its organization.
// Returns domain.ErrStoreNotFound when the store does not exist.
func (r *StoreRepository) GetStoreWithOrg(ctx context.Context, storeID uuid.UUID) (*domain.StoreContext, error) {
	return getStoreWithOrg(ctx, r.db, storeID)
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getStoreWithOrg(ctx context.Context, q rowQuerier, storeID uuid.UUID) (*domain.StoreContext, error) {
	query := `
		SELECT s.store_id, s.merchant_id, s.organization_id, s.store_name,
		       o.organization_id, o.owner_id, o.organization_name, o.allow_cross_store_redemption
		FROM stores s
		LEFT JOIN organizations o ON o.organization_id = s.organization_id
		WHERE s.store_id = $1
	`

	var (
		store   domain.Store
		orgID   *uuid.UUID
		ownerID *uuid.UUID
		orgName *string
		cross   *bool
	)
	err := q.QueryRow(ctx, query, storeID).Scan(
		&store.ID, &store.MerchantID, &store.OrganizationID, &store.Name,
		&orgID, &ownerID, &orgName, &cross,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStore, err)
	}

	sc := &domain.StoreContext{Store: store}
	if orgID != nil {
		sc.Organization = &domain.Organization{
			ID:                        *orgID,
			OwnerID:                   *ownerID,
			Name:                      *orgName,
			AllowCrossStoreRedemption: *cross,
		}
	}
	return sc, nil
}

// GetMembership retrieves a staff membership (returns nil, nil if not found)
func (r *StoreRepository) GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.StaffMembership, error) {
	query := `
		SELECT organization_id, user_id, active, can_scan_codes, store_ids
		FROM staff_memberships
		WHERE organization_id = $1 AND user_id = $2
	`

	var m domain.StaffMembership
	err := r.db.QueryRow(ctx, query, orgID, userID).Scan(
		&m.OrganizationID, &m.UserID, &m.Active, &m.CanScanCodes, &m.StoreIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMembership, err)
	}
	return &m, nil
}
