package types

import "time"

// Environment is a named set of variables used for {{NAME}} substitution
type Environment struct {
	ID        int64             `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	Variables map[string]string `json:"variables" yaml:"variables"`
}

// EnvironmentsConfig is the persisted shape of environments.json
type EnvironmentsConfig struct {
	ActiveEnvironmentID *int64        `json:"activeEnvironmentId"`
	Environments        []Environment `json:"environments"`
}

// RequestOptions is the canonical request shape consumed by the HTTP client
type RequestOptions struct {
	Method  string            `json:"method" yaml:"method"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers" yaml:"headers"`
	Body    *string           `json:"body,omitempty" yaml:"body,omitempty"`
}

// HasBody reports whether a non-nil body is attached
func (r RequestOptions) HasBody() bool {
	return r.Body != nil
}

// BodyString returns the body or an empty string when absent
func (r RequestOptions) BodyString() string {
	if r.Body == nil {
		return ""
	}
	return *r.Body
}

// Clone returns a deep copy so callers can mutate headers freely
func (r RequestOptions) Clone() RequestOptions {
	clone := RequestOptions{
		Method:  r.Method,
		URL:     r.URL,
		Headers: make(map[string]string, len(r.Headers)),
	}
	for k, v := range r.Headers {
		clone.Headers[k] = v
	}
	if r.Body != nil {
		body := *r.Body
		clone.Body = &body
	}
	return clone
}

// Response is the normalized result of one HTTP exchange.
// Status 0 with StatusText "Error" is the transport failure sentinel.
type Response struct {
	Status     int               `json:"status" yaml:"status"`
	StatusText string            `json:"statusText" yaml:"statusText"`
	Headers    map[string]string `json:"headers" yaml:"headers"`
	Cookies    []string          `json:"cookies,omitempty" yaml:"cookies,omitempty"`
	Body       string            `json:"body" yaml:"body"`
	Time       int64             `json:"time" yaml:"time"` // milliseconds
}

// IsTransportError reports whether the response is the status 0 sentinel
func (r Response) IsTransportError() bool {
	return r.Status == StatusTransportError && r.StatusText == StatusTextTransportError
}

const (
	// StatusTransportError is never a real HTTP status
	StatusTransportError     = 0
	StatusTextTransportError = "Error"
)

// HistoryEntry records one completed send
type HistoryEntry struct {
	ID         string         `json:"id" yaml:"id"`
	Timestamp  time.Time      `json:"timestamp" yaml:"timestamp"`
	Request    RequestOptions `json:"request" yaml:"request"`
	Status     *int           `json:"status,omitempty" yaml:"status,omitempty"`
	StatusText *string        `json:"statusText,omitempty" yaml:"statusText,omitempty"`
	Time       *int64         `json:"time,omitempty" yaml:"time,omitempty"`
}

// SavedRequest is a request stored under a user-chosen name
type SavedRequest struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Request   RequestOptions `json:"request" yaml:"request"`
}

// Settings are user preferences loaded from settings.jsonc
type Settings struct {
	RequestTimeoutSeconds int    `json:"requestTimeoutSeconds"`
	UserAgent             string `json:"userAgent"`
	MessageTimeoutSeconds int    `json:"messageTimeoutSeconds"`
	AnalyticsEnabled      *bool  `json:"analyticsEnabled,omitempty"`
	InsecureSkipVerify    bool   `json:"insecureSkipVerify"`
}

// IsAnalyticsEnabled defaults to true when unset
func (s Settings) IsAnalyticsEnabled() bool {
	if s.AnalyticsEnabled == nil {
		return true
	}
	return *s.AnalyticsEnabled
}
