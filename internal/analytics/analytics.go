package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/restdeck/internal/config"
	"github.com/studiowebux/restdeck/internal/migrations"
	"github.com/studiowebux/restdeck/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

type Entry struct {
	ID              int64
	Method          string
	URL             string
	Host            string
	NormalizedPath  string
	StatusCode      int
	RequestSize     int64
	ResponseSize    int64
	DurationMs      int64
	ErrorMessage    string
	Timestamp       time.Time
	EnvironmentName string
}

type Stats struct {
	NormalizedPath string
	Method         string
	TotalCalls     int
	SuccessCount   int
	ErrorCount     int
	NetworkErrors  int // DNS, connection timeout, etc (status code 0)
	AvgDurationMs  float64
	MinDurationMs  int64
	MaxDurationMs  int64
	TotalReqSize   int64
	TotalRespSize  int64
	StatusCodes    map[int]int
	LastCalled     time.Time
}

type Manager struct {
	db    *sql.DB
	cache *statsCache
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create analytics directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to analytics database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, cache: newStatsCache(30 * time.Second)}, nil
}

var (
	uuidSegment    = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	numericSegment = regexp.MustCompile(`^[0-9]+$`)
)

// NormalizePath keeps only the path of rawURL and replaces numeric and
// uuid segments with {id}, so /users/5 and /users/6 group together
func NormalizePath(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		path = u.Path
	} else {
		if idx := strings.IndexAny(path, "?#"); idx != -1 {
			path = path[:idx]
		}
	}

	if path == "" {
		return "/"
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if numericSegment.MatchString(segment) || uuidSegment.MatchString(segment) {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Host
	}
	return ""
}

// NewEntry describes one completed send
func NewEntry(req types.RequestOptions, resp types.Response, environmentName string, at time.Time) Entry {
	entry := Entry{
		Method:          req.Method,
		URL:             req.URL,
		Host:            hostOf(req.URL),
		NormalizedPath:  NormalizePath(req.URL),
		StatusCode:      resp.Status,
		RequestSize:     int64(len(req.BodyString())),
		ResponseSize:    int64(len(resp.Body)),
		DurationMs:      resp.Time,
		Timestamp:       at,
		EnvironmentName: environmentName,
	}
	if resp.IsTransportError() {
		entry.ErrorMessage = resp.Body
		entry.ResponseSize = 0
	}
	return entry
}

// Record stores a completed send
func (m *Manager) Record(req types.RequestOptions, resp types.Response, environmentName string) error {
	return m.Save(NewEntry(req, resp, environmentName, time.Now()))
}

func (m *Manager) Save(entry Entry) error {
	query := `
		INSERT INTO analytics (method, url, host, normalized_path, status_code, request_size, response_size, duration_ms, error_message, timestamp, environment_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	// SQLite stores local time without zone
	timestampStr := entry.Timestamp.Local().Format(timestampLayout)

	_, err := m.db.Exec(query,
		entry.Method,
		entry.URL,
		entry.Host,
		entry.NormalizedPath,
		entry.StatusCode,
		entry.RequestSize,
		entry.ResponseSize,
		entry.DurationMs,
		entry.ErrorMessage,
		timestampStr,
		entry.EnvironmentName,
	)
	if err != nil {
		return fmt.Errorf("failed to save analytics entry: %w", err)
	}

	m.cache.invalidate()
	return nil
}

// LoadAll returns the most recent entries, optionally for one environment
func (m *Manager) LoadAll(environmentName string, limit int) ([]Entry, error) {
	query := `
		SELECT id, method, url, host, normalized_path, status_code, request_size, response_size, duration_ms, error_message, timestamp, COALESCE(environment_name, '')
		FROM analytics
		WHERE ? = '' OR environment_name = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, environmentName, environmentName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var timestamp string
		var errorMsg sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.Method,
			&e.URL,
			&e.Host,
			&e.NormalizedPath,
			&e.StatusCode,
			&e.RequestSize,
			&e.ResponseSize,
			&e.DurationMs,
			&errorMsg,
			&timestamp,
			&e.EnvironmentName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics entry: %w", err)
		}

		if errorMsg.Valid {
			e.ErrorMessage = errorMsg.String
		}
		e.Timestamp = parseTimestamp(timestamp)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// GetStats aggregates calls per normalized path and method. An empty
// environmentName covers every environment.
func (m *Manager) GetStats(environmentName string) ([]Stats, error) {
	if cached, ok := m.cache.get(environmentName); ok {
		return cached, nil
	}

	query := `
		WITH filtered AS (
			SELECT * FROM analytics
			WHERE ? = '' OR environment_name = ?
		),
		status_codes_agg AS (
			SELECT
				normalized_path,
				method,
				json_group_object(CAST(status_code AS TEXT), count) as status_codes_json
			FROM (
				SELECT normalized_path, method, status_code, COUNT(*) as count
				FROM filtered
				GROUP BY normalized_path, method, status_code
			)
			GROUP BY normalized_path, method
		)
		SELECT
			a.normalized_path,
			a.method,
			COUNT(*) as total_calls,
			SUM(CASE WHEN a.status_code >= 200 AND a.status_code < 300 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN a.status_code >= 400 THEN 1 ELSE 0 END) as error_count,
			SUM(CASE WHEN a.status_code = 0 THEN 1 ELSE 0 END) as network_errors,
			AVG(a.duration_ms) as avg_duration,
			MIN(a.duration_ms) as min_duration,
			MAX(a.duration_ms) as max_duration,
			SUM(a.request_size) as total_req_size,
			SUM(a.response_size) as total_resp_size,
			MAX(a.timestamp) as last_called,
			COALESCE(s.status_codes_json, '{}') as status_codes_json
		FROM filtered a
		LEFT JOIN status_codes_agg s ON a.normalized_path = s.normalized_path AND a.method = s.method
		GROUP BY a.normalized_path, a.method
		ORDER BY last_called DESC, total_calls DESC
	`

	rows, err := m.db.Query(query, environmentName, environmentName)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var lastCalled sql.NullString
		var statusCodesJSON string

		err := rows.Scan(
			&s.NormalizedPath,
			&s.Method,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.ErrorCount,
			&s.NetworkErrors,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&s.TotalReqSize,
			&s.TotalRespSize,
			&lastCalled,
			&statusCodesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}

		if lastCalled.Valid {
			s.LastCalled = parseTimestamp(lastCalled.String)
		}

		s.StatusCodes, err = parseStatusCodes(statusCodesJSON)
		if err != nil {
			return nil, err
		}

		statsList = append(statsList, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m.cache.set(environmentName, statsList)
	return statsList, nil
}

func parseStatusCodes(raw string) (map[int]int, error) {
	codes := make(map[int]int)
	if raw == "" || raw == "{}" {
		return codes, nil
	}

	var byText map[string]int
	if err := json.Unmarshal([]byte(raw), &byText); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status codes: %w", err)
	}
	for text, count := range byText {
		var code int
		if _, err := fmt.Sscanf(text, "%d", &code); err == nil {
			codes[code] = count
		}
	}
	return codes, nil
}

// parseTimestamp reads local SQLite timestamps, falling back to RFC3339
func parseTimestamp(value string) time.Time {
	if ts, err := time.ParseInLocation(timestampLayout, value, time.Local); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return time.Time{}
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM analytics")
	if err != nil {
		return fmt.Errorf("failed to clear analytics: %w", err)
	}
	m.cache.invalidate()
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
