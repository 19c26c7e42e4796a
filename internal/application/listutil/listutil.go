// Package listutil parses list query parameters and paginates collections.
package listutil

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// DefaultPerPage is the page size used when none is requested.
const DefaultPerPage = 20

// PerPageOptions are the page sizes a caller may pick.
var PerPageOptions = []int{10, 20, 50, 100}

// Params are the list options carried in a query string.
type Params struct {
	Page    int    // 1-indexed
	PerPage int
	Search  string // free text, from ?search=
	Sort    string // column, empty for the default order
	Desc    bool
}

// Parse reads page, per_page, search, sort and dir from q.
// POST: Page >= 1, PerPage is one of PerPageOptions, Sort is empty or one of
// sortable
func Parse(q url.Values, sortable ...string) Params {
	p := Params{
		Page:    1,
		PerPage: DefaultPerPage,
		Search:  strings.TrimSpace(q.Get("search")),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && slices.Contains(PerPageOptions, n) {
		p.PerPage = n
	}
	if col := q.Get("sort"); slices.Contains(sortable, col) {
		p.Sort = col
		p.Desc = q.Get("dir") == "desc"
	}
	return p
}

// Query encodes p back into query values, omitting defaults.
func (p Params) Query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage != DefaultPerPage {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
		if p.Desc {
			q.Set("dir", "desc")
		}
	}
	return q
}

// WithPage returns a copy of p on page n.
func (p Params) WithPage(n int) Params {
	p.Page = n
	return p
}

// PageInfo describes one page of a collection.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPageInfo computes page metadata, clamping page into range.
// POST: 1 <= Page <= TotalPages and TotalPages >= 1
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := max((total+perPage-1)/perPage, 1)
	return PageInfo{
		Page:       min(max(page, 1), pages),
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
	}
}

// Offset returns the index of the first item on the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow is the 1-indexed first row shown, 0 for an empty collection.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow is the 1-indexed last row shown.
func (p PageInfo) EndRow() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// HasPrev reports whether an earlier page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// PageNumbers returns up to five page numbers centred on the current page.
func (p PageInfo) PageNumbers() []int {
	const buttons = 5
	start := max(p.Page-buttons/2, 1)
	end := start + buttons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = max(end-buttons+1, 1)
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}

// ShowPagination reports whether the collection spans more than one page.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}

// Paginate returns the slice of items on the requested page.
// POST: the returned slice shares items' backing array
func Paginate[T any](items []T, page, perPage int) ([]T, PageInfo) {
	info := NewPageInfo(page, perPage, len(items))
	return items[info.Offset():max(info.EndRow(), info.Offset())], info
}
