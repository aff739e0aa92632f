package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feedspin/feedspin/internal/database/postgres"
	"github.com/feedspin/feedspin/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Spin    repository.Spin
	Coupon  repository.Coupon
	Store   repository.Store
	Loyalty repository.Loyalty
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Spin:    postgres.NewSpinRepository(dbPool),
		Coupon:  postgres.NewCouponRepository(dbPool),
		Store:   postgres.NewStoreRepository(dbPool),
		Loyalty: postgres.NewLoyaltyRepository(dbPool),
	}
}
