package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginSpinTx = "failed to begin spin transaction"
)

// Error Messages - Wheel Operations
const (
	ErrMsgFailedToGetWheelSettings = "failed to get wheel settings"
	ErrMsgFailedToGetPrizes        = "failed to get prizes"
	ErrMsgFailedToDecrementStock   = "failed to decrement prize stock"
	ErrMsgFailedToInsertSpin       = "failed to insert spin"
)

// Error Messages - Coupon Operations
const (
	ErrMsgFailedToInsertCoupon    = "failed to insert coupon"
	ErrMsgFailedToGetCoupon       = "failed to get coupon"
	ErrMsgFailedToMarkRedeemed    = "failed to mark coupon redeemed"
	ErrMsgFailedToGetCouponByCode = "failed to get coupon by code"
)

// Error Messages - Store Operations
const (
	ErrMsgFailedToGetStore      = "failed to get store"
	ErrMsgFailedToGetMembership = "failed to get staff membership"
)

// Error Messages - Loyalty Operations
const (
	ErrMsgFailedToGetLoyaltyClient  = "failed to get loyalty client"
	ErrMsgFailedToGetBalance        = "failed to get points balance"
	ErrMsgFailedToInsertTransaction = "failed to insert points transaction"
	ErrMsgFailedToListTransactions  = "failed to list points transactions"
)
