package source

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// MatchIDFromFilename extracts the match id encoded in a per-match file path
// such as "events/3788741.json". Lineup, event and tracking payloads do not
// carry their own match id, so the filename is the only source of match
// ownership. Non-numeric, zero or negative stems are rejected.
func MatchIDFromFilename(path string) (int, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	id, err := strconv.Atoi(stem)
	if err != nil {
		return 0, fmt.Errorf("filename %q does not encode a numeric match id", filepath.Base(path))
	}
	if id <= 0 {
		return 0, fmt.Errorf("filename %q encodes a non-positive match id %d", filepath.Base(path), id)
	}
	return id, nil
}
