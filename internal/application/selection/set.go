// Package selection tracks which records a multi-select or checklist control
// has picked.
package selection

import (
	"strings"
	"sync"
)

// Option is one selectable record.
type Option struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// Set is an insertion-ordered set of selected ids.
// The zero value is an empty set ready to use.
type Set struct {
	mu  sync.Mutex
	ids []int64
}

// NewSet returns a set preloaded with ids, duplicates dropped.
func NewSet(ids ...int64) *Set {
	s := &Set{}
	for _, id := range ids {
		if !s.has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Toggle adds id when absent and removes it when present.
// POST: returns true when id is selected afterwards.
func (s *Set) Toggle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return false
		}
	}
	s.ids = append(s.ids, id)
	return true
}

// IsSelected reports whether id is in the set.
func (s *Set) IsSelected(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.has(id)
}

func (s *Set) has(id int64) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Count returns the number of selected ids.
func (s *Set) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selected ids in the order they were picked.
func (s *Set) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}

// Summary renders the selection as a comma-separated list of names in
// option order, or placeholder when nothing is selected.
// Selected ids missing from options are skipped.
func (s *Set) Summary(options []Option, placeholder string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.ids))
	for _, o := range options {
		if s.has(o.ID) {
			names = append(names, o.Nome)
		}
	}
	if len(names) == 0 {
		return placeholder
	}
	return strings.Join(names, ", ")
}
