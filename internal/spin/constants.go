package spin

import "time"

// Wheel configuration cache sizing
const (
	ConfigCacheSize = 1024
	ConfigCacheTTL  = 30 * time.Second
)

// Labels for the non-prize wheel segments
const (
	UnluckyLabel = "Better luck next time"
	RetryLabel   = "Spin again"
)

// Error context strings
const (
	ErrContextFailedToGetConfig  = "failed to get wheel config"
	ErrContextFailedToGetStore   = "failed to get store"
	ErrContextFailedToBeginTx    = "failed to begin transaction"
	ErrContextFailedToRecordSpin = "failed to record spin"
	ErrContextFailedToCommit     = "failed to commit transaction"
)

// Log messages
const (
	LogMsgSpinCalled     = "Spin requested"
	LogMsgStockExhausted = "Prize stock exhausted at write time, converting to unlucky"
	LogMsgCouponIssued   = "Coupon issued for winning spin"
)
