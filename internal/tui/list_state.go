package tui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// ListState is the selection and filter state of a list modal. label gives
// the text each item is fuzzy matched against.
type ListState[T any] struct {
	items   []T
	visible []int // indices into items, in display order
	index   int

	label func(T) string

	filtering bool
	query     string
}

// NewListState creates an empty list
func NewListState[T any](label func(T) string) *ListState[T] {
	return &ListState[T]{label: label}
}

// SetItems replaces the items and re-applies the current filter
func (s *ListState[T]) SetItems(items []T) {
	s.items = items
	s.refilter()
}

// Items returns the visible items in display order
func (s *ListState[T]) Items() []T {
	result := make([]T, len(s.visible))
	for i, idx := range s.visible {
		result[i] = s.items[idx]
	}
	return result
}

// Len returns the number of visible items
func (s *ListState[T]) Len() int {
	return len(s.visible)
}

// Total returns the number of items ignoring the filter
func (s *ListState[T]) Total() int {
	return len(s.items)
}

// Index returns the selected position among visible items
func (s *ListState[T]) Index() int {
	return s.index
}

// Current returns the selected item
func (s *ListState[T]) Current() (T, bool) {
	var zero T
	if s.index < 0 || s.index >= len(s.visible) {
		return zero, false
	}
	return s.items[s.visible[s.index]], true
}

// Navigate moves the selection by delta, wrapping around
func (s *ListState[T]) Navigate(delta int) {
	if len(s.visible) == 0 {
		return
	}

	s.index += delta

	if s.index < 0 {
		s.index = len(s.visible) - 1
	} else if s.index >= len(s.visible) {
		s.index = 0
	}
}

// Page moves the selection by delta without wrapping
func (s *ListState[T]) Page(delta int) {
	s.index = clamp(s.index+delta, 0, len(s.visible)-1)
}

// Top selects the first item
func (s *ListState[T]) Top() {
	s.index = 0
}

// Bottom selects the last item
func (s *ListState[T]) Bottom() {
	s.index = max(0, len(s.visible)-1)
}

// Filtering reports whether the filter input is active
func (s *ListState[T]) Filtering() bool {
	return s.filtering
}

// StartFilter activates the filter input
func (s *ListState[T]) StartFilter() {
	s.filtering = true
}

// StopFilter leaves the filter input, keeping the query applied
func (s *ListState[T]) StopFilter() {
	s.filtering = false
}

// ClearFilter leaves the filter input and shows every item again
func (s *ListState[T]) ClearFilter() {
	s.filtering = false
	s.SetQuery("")
}

// Query returns the filter text
func (s *ListState[T]) Query() string {
	return s.query
}

// SetQuery filters items by fuzzy match, best match first
func (s *ListState[T]) SetQuery(query string) {
	s.query = query
	s.index = 0
	s.refilter()
}

func (s *ListState[T]) refilter() {
	query := strings.TrimSpace(s.query)
	if query == "" {
		s.visible = make([]int, len(s.items))
		for i := range s.items {
			s.visible[i] = i
		}
	} else {
		labels := make([]string, len(s.items))
		for i, item := range s.items {
			labels[i] = s.label(item)
		}

		matches := fuzzy.Find(query, labels)
		s.visible = make([]int, len(matches))
		for i, match := range matches {
			s.visible[i] = match.Index
		}
	}

	s.index = clamp(s.index, 0, len(s.visible)-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
