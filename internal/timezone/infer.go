// Package timezone infers a member's UTC offset from one self-reported
// local hour. It is an approximation: zones sharing an offset cannot be
// told apart, so the wizard always lets the member override the guess.
package timezone

import (
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/catalog"
)

// InferOffset computes the raw hour difference between the member's
// reported local hour and the current UTC hour. The result is NOT wrapped:
// when the two hours straddle midnight it can fall outside [-12, +14] and
// callers must run it through NormalizeOffset before catalog lookups.
func InferOffset(localHour, utcHour int) int {
	return localHour - utcHour
}

// NormalizeOffset wraps a raw hour difference into the canonical
// [-12, +14] UTC offset range.
func NormalizeOffset(offset int) int {
	for offset > 14 {
		offset -= 24
	}
	for offset < -12 {
		offset += 24
	}
	return offset
}

// Suggest returns every catalog zone matching the given whole-hour offset.
// An empty result means the caller should fall back to the manual
// region → country → zone drill-down.
func Suggest(offset int) []catalog.Zone {
	return catalog.ZonesByOffset(offset)
}
