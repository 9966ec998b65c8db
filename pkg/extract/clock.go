// Package extract converts raw source documents into normalized row models.
// Extractors are pure: they take one decoded document plus whatever context
// the payload itself does not carry (the filename-derived match id, the
// reconciled dimension maps) and return rows, never touching I/O. Missing
// optional sub-objects become nil columns, not errors.
package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// parseClock converts a "MM:SS" (or "HH:MM:SS") clock string into seconds.
// Position stints and cards use the minute:second form; minutes past 99 are
// legal in extra time.
func parseClock(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("clock value %q is not MM:SS or HH:MM:SS", s)
	}

	total := 0.0
	for _, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("clock value %q is not numeric", s)
		}
		total = total*60 + value
	}
	return total, nil
}
