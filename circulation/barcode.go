package circulation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	borrowPrefix = "BC"
	returnPrefix = "RET"
)

// BorrowBarcode builds the token shown to staff at borrow confirmation,
// e.g. BC-MEM000001-421.
func BorrowBarcode(membershipID string, now time.Time) string {
	return barcode(borrowPrefix, membershipID, now)
}

// ReturnBarcode builds the distinct token for return confirmation,
// e.g. RET-MEM000001-421.
func ReturnBarcode(membershipID string, now time.Time) string {
	return barcode(returnPrefix, membershipID, now)
}

// barcode formats {PREFIX}-MEM{digits}-{counter} where digits are
// extracted from the membership id ("MEM-000001" -> "000001") and the
// counter is the last 3 digits of the unix-millis clock. The counter
// gives practical uniqueness only: two borrowings in the same
// millisecond window may collide, which callers must tolerate.
func barcode(prefix, membershipID string, now time.Time) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if membershipID != "" {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, membershipID)
		return fmt.Sprintf("%s-MEM%s-%s", prefix, digits, lastN(millis, 3))
	}
	return fmt.Sprintf("%s-GUEST-%s", prefix, lastN(millis, 8))
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
