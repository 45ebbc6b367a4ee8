package history

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/restdeck/internal/config"
	"github.com/studiowebux/restdeck/internal/types"
)

// MaxEntries bounds history.json; older entries are dropped on save
const MaxEntries = 100

// Store keeps the request history in memory and mirrors it to history.json.
// Record may run on a background command while the UI reads entries.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries []types.HistoryEntry
	now     func() time.Time
}

// NewStore creates a store backed by config.HistoryFile
func NewStore() *Store {
	return NewStoreAt(config.HistoryFile)
}

// NewStoreAt creates a store backed by path
func NewStoreAt(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load reads history.json. Read or parse failures are logged and yield an
// empty history; individually invalid entries are dropped.
func (s *Store) Load() []types.HistoryEntry {
	entries := readList(s.path, DecodeHistoryEntry)

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return s.Entries()
}

// Entries returns a copy of the history, oldest first
func (s *Store) Entries() []types.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.HistoryEntry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Record appends an entry for a completed send and persists the history.
// Persistence failures are logged.
func (s *Store) Record(req types.RequestOptions, resp types.Response) types.HistoryEntry {
	entry := NewEntry(req, resp, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = Truncate(append(s.entries, entry))
	if err := s.save(); err != nil {
		log.Printf("history: %v", err)
	}
	return entry
}

// NewEntry builds a history entry capturing exactly what was sent
func NewEntry(req types.RequestOptions, resp types.Response, at time.Time) types.HistoryEntry {
	status := resp.Status
	statusText := resp.StatusText
	elapsed := resp.Time

	return types.HistoryEntry{
		ID:         uuid.NewString(),
		Timestamp:  at,
		Request:    req.Clone(),
		Status:     &status,
		StatusText: &statusText,
		Time:       &elapsed,
	}
}

// Save writes at most the last MaxEntries entries
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	s.entries = Truncate(s.entries)
	return writeList(s.path, s.entries)
}

// Replace swaps the in-memory history and persists it
func (s *Store) Replace(entries []types.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	return s.save()
}

// Delete removes the entry with id
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.entries {
		if entry.ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("%w: history entry %s", ErrNotFound, id)
}

// Clear removes every entry
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []types.HistoryEntry{}
	return s.save()
}

// Truncate keeps the last MaxEntries entries in their original order
func Truncate(entries []types.HistoryEntry) []types.HistoryEntry {
	if len(entries) <= MaxEntries {
		return entries
	}
	kept := make([]types.HistoryEntry, MaxEntries)
	copy(kept, entries[len(entries)-MaxEntries:])
	return kept
}

func readList[T any](path string, decode func(json.RawMessage) Decoded[T]) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to read %s: %v", path, err)
		}
		return []T{}
	}

	values, err := decodeList(data, path, decode)
	if err != nil {
		log.Printf("%v", err)
		return []T{}
	}
	return values
}

func writeList[T any](path string, values []T) error {
	if values == nil {
		values = []T{}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
