package redemption

import (
	"fmt"

	"github.com/feedspin/feedspin/internal/domain"
)

// DeniedError carries a Denied decision as an error so callers that only
// deal in errors (the redeem path) can surface the exact reason.
type DeniedError struct {
	Reason Reason
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrMsgScanDenied, e.Reason)
}

// Is allows errors.Is(err, domain.ErrScanDenied) to match denials.
func (e *DeniedError) Is(target error) bool {
	return target == domain.ErrScanDenied
}
