// Package quote holds the quote-number allocation rule (domain service).
package quote

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// suffixWidth is the zero-padded width of the sequence part. Once a year
// prefix runs past 9999 the suffix simply widens to five digits; uniqueness
// is still enforced by the quotes table constraint.
const suffixWidth = 4

// Prefix returns the two-digit year prefix for quote numbers issued at t.
func Prefix(t time.Time) string {
	return fmt.Sprintf("%02d", t.Year()%100)
}

// Next derives the next quote number for the period of t given the numbers
// already issued in that period. Numbers under other prefixes and numbers
// whose suffix does not parse as a non-negative integer are ignored; they
// neither count nor block allocation.
//
// The result is max(parsed suffixes)+1, zero-padded. It is a best-effort hint, not
// a reservation: two concurrent allocations can read the same max. Callers
// must serialize through the unique constraint on the full number and retry
// on conflict.
func Next(t time.Time, existing []string) string {
	prefix := Prefix(t)
	max := 0
	for _, n := range existing {
		if !strings.HasPrefix(n, prefix) || len(n) <= len(prefix) {
			continue
		}
		v, err := strconv.Atoi(n[len(prefix):])
		if err != nil || v < 0 {
			continue
		}
		if v > max {
			max = v
		}
	}
	return prefix + fmt.Sprintf("%0*d", suffixWidth, max+1)
}
