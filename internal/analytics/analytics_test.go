package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/restdeck/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "restdeck.db"))
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://localhost:3000/users/42?x=1", "/users/{id}"},
		{"https://api.example.com/orders/3f2504e0-4f89-11d3-9a0c-0305e82c3301/items", "/orders/{id}/items"},
		{"https://api.example.com", "/"},
		{"https://api.example.com/v2/users", "/v2/users"},
		{"{{BASE_URL}}/users/7#frag", "{{BASE_URL}}/users/{id}"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := NormalizePath(tt.url); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestNewEntry_TransportError(t *testing.T) {
	body := "abc"
	entry := NewEntry(
		types.RequestOptions{Method: "POST", URL: "http://host:1/x", Body: &body},
		types.Response{Status: 0, StatusText: "Error", Body: "connection refused", Time: 3},
		"Development",
		time.Now(),
	)

	if entry.ErrorMessage != "connection refused" {
		t.Errorf("ErrorMessage = %q", entry.ErrorMessage)
	}
	if entry.RequestSize != 3 || entry.ResponseSize != 0 {
		t.Errorf("sizes = %d/%d", entry.RequestSize, entry.ResponseSize)
	}
	if entry.Host != "host:1" {
		t.Errorf("Host = %q", entry.Host)
	}
}

func TestManager_RecordAndStats(t *testing.T) {
	m := newTestManager(t)

	sends := []struct {
		url    string
		status int
		env    string
	}{
		{"http://localhost:3000/users/1", 200, "Development"},
		{"http://localhost:3000/users/2", 404, "Development"},
		{"http://localhost:3000/users/3", 0, "Staging"},
	}
	for _, s := range sends {
		resp := types.Response{Status: s.status, StatusText: "x", Body: "{}", Time: 10}
		if s.status == 0 {
			resp.StatusText = types.StatusTextTransportError
		}
		if err := m.Record(types.RequestOptions{Method: "GET", URL: s.url}, resp, s.env); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	all, err := m.GetStats("")
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one grouped endpoint, got %d", len(all))
	}
	s := all[0]
	if s.NormalizedPath != "/users/{id}" || s.TotalCalls != 3 {
		t.Errorf("stats = %+v", s)
	}
	if s.SuccessCount != 1 || s.ErrorCount != 1 || s.NetworkErrors != 1 {
		t.Errorf("counts success=%d error=%d network=%d", s.SuccessCount, s.ErrorCount, s.NetworkErrors)
	}
	if s.StatusCodes[404] != 1 || s.StatusCodes[0] != 1 {
		t.Errorf("StatusCodes = %v", s.StatusCodes)
	}

	dev, err := m.GetStats("Development")
	if err != nil {
		t.Fatal(err)
	}
	if len(dev) != 1 || dev[0].TotalCalls != 2 {
		t.Errorf("Development stats = %+v", dev)
	}

	entries, err := m.LoadAll("Staging", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].StatusCode != 0 || entries[0].ErrorMessage == "" {
		t.Errorf("Staging entries = %+v", entries)
	}
}

func TestManager_CacheInvalidatedOnWrite(t *testing.T) {
	m := newTestManager(t)
	req := types.RequestOptions{Method: "GET", URL: "http://x/a"}
	resp := types.Response{Status: 200, StatusText: "OK"}

	if err := m.Record(req, resp, ""); err != nil {
		t.Fatal(err)
	}
	first, _ := m.GetStats("")
	if err := m.Record(req, resp, ""); err != nil {
		t.Fatal(err)
	}
	second, _ := m.GetStats("")

	if first[0].TotalCalls != 1 || second[0].TotalCalls != 2 {
		t.Errorf("totals %d then %d, want 1 then 2", first[0].TotalCalls, second[0].TotalCalls)
	}

	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	cleared, _ := m.GetStats("")
	if len(cleared) != 0 {
		t.Errorf("stats after Clear = %+v", cleared)
	}
}
