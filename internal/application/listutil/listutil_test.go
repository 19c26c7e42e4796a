package listutil

import (
	"net/url"
	"reflect"
	"testing"
)

// TestParse verifies defaults, clamping and whitelisting of list parameters.
func TestParse(t *testing.T) {
	tests := []struct {
		name string
		q    url.Values
		want Params
	}{
		{"defaults", url.Values{}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"valid", url.Values{"page": {"3"}, "per_page": {"50"}, "search": {" ana "}},
			Params{Page: 3, PerPage: 50, Search: "ana"}},
		{"per_page not offered", url.Values{"per_page": {"25"}}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"negative page", url.Values{"page": {"-1"}}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"garbage page", url.Values{"page": {"dois"}}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"sort allowed", url.Values{"sort": {"nome"}, "dir": {"desc"}}, Params{Page: 1, PerPage: DefaultPerPage, Sort: "nome", Desc: true}},
		{"sort refused", url.Values{"sort": {"senha"}, "dir": {"desc"}}, Params{Page: 1, PerPage: DefaultPerPage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.q, "nome", "data_conversao"); got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestParamsQuery verifies defaults are omitted and values round-trip.
func TestParamsQuery(t *testing.T) {
	p := Params{Page: 2, PerPage: DefaultPerPage, Search: "rua", Sort: "nome", Desc: true}
	q := p.Query()
	if q.Get("per_page") != "" {
		t.Errorf("default per_page encoded: %v", q)
	}
	if got := Parse(q, "nome"); got != p {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
	if got := p.WithPage(1).Query().Get("page"); got != "" {
		t.Errorf("page 1 encoded as %q", got)
	}
}

// TestNewPageInfo verifies page clamping and row bounds.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		wantPage, wantPages  int
		wantStart, wantEnd   int
	}{
		{"empty", 1, 10, 0, 1, 1, 0, 0},
		{"first page", 1, 10, 25, 1, 3, 1, 10},
		{"last partial", 3, 10, 25, 3, 3, 21, 25},
		{"beyond end", 9, 10, 25, 3, 3, 21, 25},
		{"zero per page", 1, 0, 5, 1, 1, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageInfo(tt.page, tt.perPage, tt.total)
			if p.Page != tt.wantPage || p.TotalPages != tt.wantPages {
				t.Errorf("page/pages = %d/%d, want %d/%d", p.Page, p.TotalPages, tt.wantPage, tt.wantPages)
			}
			if p.StartRow() != tt.wantStart || p.EndRow() != tt.wantEnd {
				t.Errorf("rows = %d-%d, want %d-%d", p.StartRow(), p.EndRow(), tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// TestPageNumbers verifies the centred window of page buttons.
func TestPageNumbers(t *testing.T) {
	tests := []struct {
		page, pages int
		want        []int
	}{
		{1, 1, []int{1}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{2, 3, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		p := PageInfo{Page: tt.page, PerPage: 10, Total: tt.pages * 10, TotalPages: tt.pages}
		if got := p.PageNumbers(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PageNumbers(page %d of %d) = %v, want %v", tt.page, tt.pages, got, tt.want)
		}
	}
}

// TestPaginate verifies slicing of an in-memory collection.
func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	got, info := Paginate(items, 2, 2)
	if !reflect.DeepEqual(got, []string{"c", "d"}) || !info.HasPrev() || !info.HasNext() {
		t.Errorf("page 2 = %v %+v", got, info)
	}
	got, info = Paginate(items, 3, 2)
	if !reflect.DeepEqual(got, []string{"e"}) || info.HasNext() {
		t.Errorf("page 3 = %v %+v", got, info)
	}
	got, _ = Paginate([]string{}, 1, 10)
	if len(got) != 0 {
		t.Errorf("empty = %v", got)
	}
}
