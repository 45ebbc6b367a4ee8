package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/studiowebux/restdeck/internal/types"
)

var (
	// ErrInvalidRecord marks a stored entry rejected at load time
	ErrInvalidRecord = errors.New("invalid record")
	// ErrNotFound is returned when deleting an unknown id
	ErrNotFound = errors.New("entry not found")
	// ErrEmptyName rejects saving a request without a name
	ErrEmptyName = errors.New("request name is required")
)

// Decoded is the outcome of validating one stored element: either Value is
// usable or Err explains why it was rejected
type Decoded[T any] struct {
	Value T
	Err   error
}

// Valid reports whether the element was accepted
func (d Decoded[T]) Valid() bool {
	return d.Err == nil
}

type rawRequest struct {
	Method  *string            `json:"method"`
	URL     *string            `json:"url"`
	Headers *map[string]string `json:"headers"`
	Body    *string            `json:"body"`
}

type rawHistoryEntry struct {
	ID         json.RawMessage `json:"id"`
	Timestamp  *string         `json:"timestamp"`
	Request    *rawRequest     `json:"request"`
	Status     *int            `json:"status"`
	StatusText *string         `json:"statusText"`
	Time       *int64          `json:"time"`
}

type rawSavedRequest struct {
	ID        json.RawMessage `json:"id"`
	Name      *string         `json:"name"`
	Timestamp *string         `json:"timestamp"`
	Request   *rawRequest     `json:"request"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

// decodeID accepts a non-empty string or a JSON number
func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", invalid("missing id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", invalid("empty id")
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", invalid("id must be a string or number")
}

func decodeTimestamp(s *string) (time.Time, error) {
	if s == nil {
		return time.Time{}, invalid("missing timestamp")
	}
	ts, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return time.Time{}, invalid("bad timestamp %q", *s)
	}
	return ts, nil
}

func decodeRequest(r *rawRequest) (types.RequestOptions, error) {
	switch {
	case r == nil:
		return types.RequestOptions{}, invalid("missing request")
	case r.Method == nil || strings.TrimSpace(*r.Method) == "":
		return types.RequestOptions{}, invalid("missing request.method")
	case r.URL == nil:
		return types.RequestOptions{}, invalid("missing request.url")
	case r.Headers == nil:
		return types.RequestOptions{}, invalid("missing request.headers")
	}

	return types.RequestOptions{
		Method:  *r.Method,
		URL:     *r.URL,
		Headers: *r.Headers,
		Body:    r.Body,
	}, nil
}

// DecodeHistoryEntry validates one element of history.json
func DecodeHistoryEntry(data json.RawMessage) Decoded[types.HistoryEntry] {
	var raw rawHistoryEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return Decoded[types.HistoryEntry]{Err: invalid("%v", err)}
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return Decoded[types.HistoryEntry]{Err: err}
	}
	ts, err := decodeTimestamp(raw.Timestamp)
	if err != nil {
		return Decoded[types.HistoryEntry]{Err: err}
	}
	req, err := decodeRequest(raw.Request)
	if err != nil {
		return Decoded[types.HistoryEntry]{Err: err}
	}

	return Decoded[types.HistoryEntry]{Value: types.HistoryEntry{
		ID:         id,
		Timestamp:  ts,
		Request:    req,
		Status:     raw.Status,
		StatusText: raw.StatusText,
		Time:       raw.Time,
	}}
}

// DecodeSavedRequest validates one element of saved-requests.json
func DecodeSavedRequest(data json.RawMessage) Decoded[types.SavedRequest] {
	var raw rawSavedRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return Decoded[types.SavedRequest]{Err: invalid("%v", err)}
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return Decoded[types.SavedRequest]{Err: err}
	}
	ts, err := decodeTimestamp(raw.Timestamp)
	if err != nil {
		return Decoded[types.SavedRequest]{Err: err}
	}
	req, err := decodeRequest(raw.Request)
	if err != nil {
		return Decoded[types.SavedRequest]{Err: err}
	}

	name := ""
	if raw.Name != nil {
		name = *raw.Name
	}

	return Decoded[types.SavedRequest]{Value: types.SavedRequest{
		ID:        id,
		Name:      name,
		Timestamp: ts,
		Request:   req,
	}}
}

// decodeList parses a JSON array and keeps the elements decode accepts.
// Rejected elements are logged. A document that is not an array fails.
func decodeList[T any](data []byte, source string, decode func(json.RawMessage) Decoded[T]) ([]T, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	values := make([]T, 0, len(elements))
	for i, element := range elements {
		decoded := decode(element)
		if !decoded.Valid() {
			log.Printf("%s: dropping entry %d: %v", source, i, decoded.Err)
			continue
		}
		values = append(values, decoded.Value)
	}
	return values, nil
}
