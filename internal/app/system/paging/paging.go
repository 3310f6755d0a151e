// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in paged lists.
// Keep this as an int because most call sites multiply it and then
// cast to int64 for Mongo Find().SetSkip()/SetLimit().
const PageSize = 50

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit returns PageSize as int64.
func Limit() int64 { return int64(PageSize) }

// Offset returns the number of rows to skip to reach page.
func Offset(page int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * PageSize)
}

// Window describes where a page sits among all pages.
type Window struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// ComputeWindow returns the window for page given the total row count.
// There is always at least one page, even when total is zero.
func ComputeWindow(page int, total int64) Window {
	if page < 1 {
		page = 1
	}
	pages := int((total + int64(PageSize) - 1) / int64(PageSize))
	if pages < 1 {
		pages = 1
	}
	return Window{
		Page:       page,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}
