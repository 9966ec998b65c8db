// Package listing holds the pagination and sort plumbing shared by the read
// repositories. Sort columns resolve through closed allow-lists; a caller
// supplied column name is never interpolated into a query.
package listing

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Page is a normalized limit/offset pair plus a resolved sort expression.
type Page struct {
	Limit  int
	Offset int
	Sort   string
}

// NewPage clamps pagination input and resolves the sort key against the
// repository's allow-list. An unknown sort key is a caller error, reported
// with the allowed keys.
func NewPage(limit, offset int, sortKey, order string, sortable map[string]string, defaultSort string) (Page, error) {
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	sort := defaultSort
	if sortKey != "" {
		column, ok := sortable[sortKey]
		if !ok {
			keys := make([]string, 0, len(sortable))
			for key := range sortable {
				keys = append(keys, key)
			}
			return Page{}, httperror.NewHTTPErrorf(http.StatusBadRequest, "unknown sort key %q, expected one of: %s", sortKey, strings.Join(keys, ", "))
		}
		sort = column
	}

	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}

	return Page{Limit: limit, Offset: offset, Sort: fmt.Sprintf("%s %s", sort, direction)}, nil
}
