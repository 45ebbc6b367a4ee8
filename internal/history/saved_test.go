package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/studiowebux/restdeck/internal/types"
)

func TestSavedStore_AddAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved-requests.json")
	store := NewSavedStoreAt(path)

	req := types.RequestOptions{Method: "GET", URL: "{{BASE_URL}}/users", Headers: map[string]string{}}
	saved, err := store.Add("  List users ", req)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if saved.Name != "List users" {
		t.Errorf("Name = %q, want trimmed", saved.Name)
	}

	reloaded := NewSavedStoreAt(path).Load()
	if len(reloaded) != 1 {
		t.Fatalf("reloaded %d requests", len(reloaded))
	}
	if reloaded[0].Request.URL != "{{BASE_URL}}/users" {
		t.Errorf("URL = %q, placeholders must be stored verbatim", reloaded[0].Request.URL)
	}
}

func TestSavedStore_EmptyName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved-requests.json")
	store := NewSavedStoreAt(path)

	if _, err := store.Add("   ", types.RequestOptions{Method: "GET", URL: "http://x"}); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Add(blank) error = %v, want ErrEmptyName", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("rejected save must not touch the file")
	}
}

func TestSavedStore_NoCountLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved-requests.json")
	store := NewSavedStoreAt(path)
	for i := 0; i < MaxEntries+20; i++ {
		if _, err := store.Add("req", types.RequestOptions{Method: "GET", URL: "http://x", Headers: map[string]string{}}); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(NewSavedStoreAt(path).Load()); got != MaxEntries+20 {
		t.Errorf("loaded %d, want %d", got, MaxEntries+20)
	}
}

func TestSavedStore_LoadDropsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved-requests.json")
	content := `[
  {"id": "a", "name": "ok", "timestamp": "2024-01-01T00:00:00Z", "request": {"method": "GET", "url": "http://a", "headers": {}}},
  {"id": "b", "name": "no request", "timestamp": "2024-01-01T00:00:00Z"},
  {"name": "no id", "timestamp": "2024-01-01T00:00:00Z", "request": {"method": "GET", "url": "http://a", "headers": {}}}
]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loaded := NewSavedStoreAt(path).Load()
	if len(loaded) != 1 || loaded[0].ID != "a" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestSavedStore_Delete(t *testing.T) {
	store := NewSavedStoreAt(filepath.Join(t.TempDir(), "saved-requests.json"))
	first, _ := store.Add("one", types.RequestOptions{Method: "GET", URL: "http://1", Headers: map[string]string{}})
	store.Add("two", types.RequestOptions{Method: "GET", URL: "http://2", Headers: map[string]string{}})

	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.Requests()) != 1 || store.Requests()[0].Name != "two" {
		t.Errorf("requests = %+v", store.Requests())
	}
	if err := store.Delete(first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}
}
