package tui

import (
	"reflect"
	"testing"
)

func newStringList(items ...string) *ListState[string] {
	s := NewListState(func(v string) string { return v })
	s.SetItems(items)
	return s
}

func TestListState_NavigateWraps(t *testing.T) {
	s := newStringList("a", "b", "c")

	s.Navigate(-1)
	if s.Index() != 2 {
		t.Errorf("Navigate(-1) from top = %d, want 2", s.Index())
	}
	s.Navigate(1)
	if s.Index() != 0 {
		t.Errorf("Navigate(1) from bottom = %d, want 0", s.Index())
	}
}

func TestListState_PageClamps(t *testing.T) {
	s := newStringList("a", "b", "c", "d")

	s.Page(10)
	if s.Index() != 3 {
		t.Errorf("Page(10) = %d", s.Index())
	}
	s.Page(-10)
	if s.Index() != 0 {
		t.Errorf("Page(-10) = %d", s.Index())
	}
	s.Bottom()
	if got, _ := s.Current(); got != "d" {
		t.Errorf("Bottom() current = %q", got)
	}
}

func TestListState_Empty(t *testing.T) {
	s := newStringList()

	s.Navigate(1)
	s.Page(5)
	s.Bottom()
	if _, ok := s.Current(); ok {
		t.Error("Current() on empty list should report false")
	}
	if s.Index() != 0 {
		t.Errorf("Index() = %d", s.Index())
	}
}

func TestListState_FuzzyFilter(t *testing.T) {
	s := newStringList(
		"GET http://localhost:3000/users",
		"POST http://localhost:3000/orders",
		"DELETE http://localhost:3000/users/5",
	)

	s.SetQuery("orders")
	if !reflect.DeepEqual(s.Items(), []string{"POST http://localhost:3000/orders"}) {
		t.Errorf("filtered = %q", s.Items())
	}
	if s.Total() != 3 {
		t.Errorf("Total() = %d", s.Total())
	}

	s.SetQuery("zzz")
	if s.Len() != 0 {
		t.Errorf("no match should leave nothing visible, got %q", s.Items())
	}

	s.ClearFilter()
	if s.Len() != 3 || s.Filtering() {
		t.Errorf("ClearFilter() len=%d filtering=%v", s.Len(), s.Filtering())
	}
}

func TestListState_SetItemsKeepsQuery(t *testing.T) {
	s := newStringList("alpha", "beta")
	s.SetQuery("bet")
	s.SetItems([]string{"alpha", "beta", "better"})

	if s.Len() != 2 {
		t.Errorf("visible = %q", s.Items())
	}
}
