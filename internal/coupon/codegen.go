package coupon

import (
	crand "crypto/rand"
	"fmt"
	"strings"
)

// codeAlphabet excludes look-alike characters (0/O, 1/I/L) so codes survive
// being read over a counter or typed from a printout.
const codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const (
	codeGroupLen = 4
	codeGroups   = 2
)

// GenerateCode produces a human-presentable coupon code such as "7XK2-PM4Q".
// Codes are random; uniqueness is enforced by the database constraint, and
// issuance retries on collision.
func GenerateCode() (string, error) {
	raw := make([]byte, codeGroupLen*codeGroups)
	if _, err := crand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	var b strings.Builder
	for i, c := range raw {
		if i > 0 && i%codeGroupLen == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
	}
	return b.String(), nil
}
