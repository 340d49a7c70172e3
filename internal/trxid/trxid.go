// Package trxid formats human readable transaction identifiers.
package trxid

import (
	"fmt"
	"time"
)

// Prefix starts every transaction identifier.
const Prefix = "TRX"

// Format builds an identifier of the form TRX + DDMMYY + sequence padded to
// six digits. Sequences above 999999 widen the field instead of being
// truncated, so uniqueness always follows from the sequence alone.
func Format(t time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%06d", Prefix, t.Format("020106"), seq)
}
