package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/restdeck/internal/types"
)

func testEntry(i int) types.HistoryEntry {
	status := 200
	return types.HistoryEntry{
		ID:        fmt.Sprintf("entry-%d", i),
		Timestamp: time.Date(2024, 1, 1, 0, 0, i%60, 0, time.UTC),
		Request: types.RequestOptions{
			Method:  "GET",
			URL:     fmt.Sprintf("http://localhost/%d", i),
			Headers: map[string]string{},
		},
		Status: &status,
	}
}

func TestStore_SaveKeepsLastHundredInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewStoreAt(path)

	entries := make([]types.HistoryEntry, 150)
	for i := range entries {
		entries[i] = testEntry(i)
	}
	if err := store.Replace(entries); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	loaded := NewStoreAt(path).Load()
	if len(loaded) != MaxEntries {
		t.Fatalf("loaded %d entries, want %d", len(loaded), MaxEntries)
	}
	for i, entry := range loaded {
		want := fmt.Sprintf("entry-%d", i+50)
		if entry.ID != want {
			t.Fatalf("entry %d has id %s, want %s", i, entry.ID, want)
		}
	}
}

func TestTruncate_DoesNotAliasInput(t *testing.T) {
	entries := make([]types.HistoryEntry, MaxEntries+1)
	for i := range entries {
		entries[i] = testEntry(i)
	}
	kept := Truncate(entries)
	kept[0].ID = "changed"
	if entries[1].ID != "entry-1" {
		t.Error("Truncate should copy the kept entries")
	}

	short := entries[:3]
	if got := Truncate(short); len(got) != 3 {
		t.Errorf("Truncate(short) len = %d", len(got))
	}
}

func TestStore_LoadDropsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	content := `[
  {"id": "ok-1", "timestamp": "2024-01-01T10:00:00.000Z", "request": {"method": "GET", "url": "http://a", "headers": {}}, "status": 200, "statusText": "OK", "time": 12},
  {"timestamp": "2024-01-01T10:00:00Z", "request": {"method": "GET", "url": "http://a", "headers": {}}},
  {"id": "no-ts", "request": {"method": "GET", "url": "http://a", "headers": {}}},
  {"id": "bad-ts", "timestamp": "yesterday", "request": {"method": "GET", "url": "http://a", "headers": {}}},
  {"id": "no-request", "timestamp": "2024-01-01T10:00:00Z"},
  {"id": "no-method", "timestamp": "2024-01-01T10:00:00Z", "request": {"url": "http://a", "headers": {}}},
  {"id": "no-url", "timestamp": "2024-01-01T10:00:00Z", "request": {"method": "GET", "headers": {}}},
  {"id": "no-headers", "timestamp": "2024-01-01T10:00:00Z", "request": {"method": "GET", "url": "http://a"}},
  {"id": "bad-headers", "timestamp": "2024-01-01T10:00:00Z", "request": {"method": "GET", "url": "http://a", "headers": "x"}},
  "not an object",
  {"id": 1712, "timestamp": "2024-01-02T10:00:00+02:00", "request": {"method": "POST", "url": "http://b", "headers": {"A": "1"}, "body": "{}"}}
]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loaded := NewStoreAt(path).Load()
	if len(loaded) != 2 {
		t.Fatalf("loaded %d entries, want 2: %+v", len(loaded), loaded)
	}

	first := loaded[0]
	if first.ID != "ok-1" || first.Status == nil || *first.Status != 200 || first.Time == nil || *first.Time != 12 {
		t.Errorf("first entry = %+v", first)
	}
	if first.Timestamp.Hour() != 10 {
		t.Errorf("timestamp not parsed: %v", first.Timestamp)
	}

	second := loaded[1]
	if second.ID != "1712" {
		t.Errorf("numeric id = %q, want 1712", second.ID)
	}
	if second.Request.Body == nil || *second.Request.Body != "{}" {
		t.Errorf("body = %v", second.Request.Body)
	}
}

func TestStore_LoadFailuresYieldEmpty(t *testing.T) {
	dir := t.TempDir()

	missing := NewStoreAt(filepath.Join(dir, "missing.json")).Load()
	if missing == nil || len(missing) != 0 {
		t.Errorf("missing file: got %v", missing)
	}

	corruptPath := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corruptPath, []byte(`{"not": "a list"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if got := NewStoreAt(corruptPath).Load(); len(got) != 0 {
		t.Errorf("corrupt file: got %v", got)
	}
}

func TestStore_RecordPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	store := NewStoreAt(path)
	store.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	body := "payload"
	req := types.RequestOptions{Method: "POST", URL: "http://x", Headers: map[string]string{"A": "1"}, Body: &body}
	entry := store.Record(req, types.Response{Status: 201, StatusText: "Created", Time: 42})

	req.Headers["A"] = "mutated"
	if entry.Request.Headers["A"] != "1" {
		t.Error("recorded request shares header map with caller")
	}
	if entry.ID == "" {
		t.Error("expected generated id")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("history not written: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(raw) != 1 || raw[0]["timestamp"] != "2024-05-01T12:00:00Z" {
		t.Errorf("persisted = %v", raw)
	}

	reloaded := NewStoreAt(path).Load()
	if len(reloaded) != 1 || *reloaded[0].StatusText != "Created" || *reloaded[0].Time != 42 {
		t.Errorf("reloaded = %+v", reloaded)
	}
}

func TestStore_RecordTransportError(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "history.json"))
	entry := store.Record(
		types.RequestOptions{Method: "GET", URL: "http://x", Headers: map[string]string{}},
		types.Response{Status: types.StatusTransportError, StatusText: types.StatusTextTransportError},
	)
	if entry.Status == nil || *entry.Status != 0 || *entry.StatusText != "Error" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "history.json"))
	if err := store.Replace([]types.HistoryEntry{testEntry(1), testEntry(2), testEntry(3)}); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete("entry-2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if store.Len() != 2 || store.Entries()[1].ID != "entry-3" {
		t.Errorf("entries after delete = %+v", store.Entries())
	}
	if err := store.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() after Clear = %d", store.Len())
	}
}

func TestDecodeHistoryEntry_TaggedResult(t *testing.T) {
	bad := DecodeHistoryEntry(json.RawMessage(`{"id": ""}`))
	if bad.Valid() || !errors.Is(bad.Err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", bad.Err)
	}

	good := DecodeHistoryEntry(json.RawMessage(`{"id": "a", "timestamp": "2024-01-01T00:00:00Z", "request": {"method": "GET", "url": "", "headers": {}}}`))
	if !good.Valid() {
		t.Errorf("expected valid entry, got %v", good.Err)
	}
}
