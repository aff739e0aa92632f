package bootstrap

import (
	"github.com/feedspin/feedspin/internal/coupon"
	"github.com/feedspin/feedspin/internal/draw"
	"github.com/feedspin/feedspin/internal/loyalty"
	"github.com/feedspin/feedspin/internal/redemption"
	"github.com/feedspin/feedspin/internal/spin"
)

// Services holds all application services.
type Services struct {
	Redemption redemption.Service
	Coupon     coupon.Service
	Loyalty    loyalty.Service
	Spin       spin.Service
}

// InitializeServices wires repositories into the service layer. The coupon
// service depends on the redemption authorizer, and the spin service depends
// on the coupon service for prize issuance, so construction order matters.
func InitializeServices(repos *Repositories) *Services {
	redemptionSvc := redemption.NewService(repos.Store)
	couponSvc := coupon.NewService(repos.Coupon, repos.Store, redemptionSvc)
	loyaltySvc := loyalty.NewService(repos.Loyalty)
	spinSvc := spin.NewService(repos.Spin, draw.NewEngine(), couponSvc)

	return &Services{
		Redemption: redemptionSvc,
		Coupon:     couponSvc,
		Loyalty:    loyaltySvc,
		Spin:       spinSvc,
	}
}
