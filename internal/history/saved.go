package history

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/restdeck/internal/config"
	"github.com/studiowebux/restdeck/internal/types"
)

// SavedStore keeps named requests, mirrored to saved-requests.json.
// Saved requests have no count limit.
type SavedStore struct {
	path     string
	requests []types.SavedRequest
	now      func() time.Time
}

// NewSavedStore creates a store backed by config.SavedRequestsFile
func NewSavedStore() *SavedStore {
	return NewSavedStoreAt(config.SavedRequestsFile)
}

// NewSavedStoreAt creates a store backed by path
func NewSavedStoreAt(path string) *SavedStore {
	return &SavedStore{path: path, now: time.Now}
}

// Load reads saved-requests.json with the same rules as the history store
func (s *SavedStore) Load() []types.SavedRequest {
	s.requests = readList(s.path, DecodeSavedRequest)
	return s.requests
}

// Requests returns the saved requests, oldest first
func (s *SavedStore) Requests() []types.SavedRequest {
	return s.requests
}

// Add stores req under name. The name must not be blank.
func (s *SavedStore) Add(name string, req types.RequestOptions) (types.SavedRequest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.SavedRequest{}, ErrEmptyName
	}

	saved := types.SavedRequest{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: s.now(),
		Request:   req.Clone(),
	}
	s.requests = append(s.requests, saved)
	if err := s.Save(); err != nil {
		log.Printf("saved requests: %v", err)
	}
	return saved, nil
}

// Delete removes the saved request with id
func (s *SavedStore) Delete(id string) error {
	for i, saved := range s.requests {
		if saved.ID == id {
			s.requests = append(s.requests[:i:i], s.requests[i+1:]...)
			return s.Save()
		}
	}
	return fmt.Errorf("%w: saved request %s", ErrNotFound, id)
}

// Save writes every saved request
func (s *SavedStore) Save() error {
	return writeList(s.path, s.requests)
}
