package composer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/parser"
	"github.com/studiowebux/restdeck/internal/types"
)

// ErrMissingURL aborts a send before any network or history activity
var ErrMissingURL = errors.New("URL is required")

// Fields is the raw text of the request editors
type Fields struct {
	Method  string
	URL     string
	Headers string
	Params  string
	Body    string
}

// Sender performs one HTTP exchange. It must not fail; transport errors
// are reported through the status 0 response.
type Sender interface {
	Send(ctx context.Context, req types.RequestOptions) types.Response
}

// HistoryRecorder persists a completed send
type HistoryRecorder interface {
	Record(req types.RequestOptions, resp types.Response) types.HistoryEntry
}

// StatsRecorder receives every completed send for analytics
type StatsRecorder interface {
	Record(req types.RequestOptions, resp types.Response, environmentName string) error
}

// Result is what a completed send produced
type Result struct {
	Request  types.RequestOptions
	Response types.Response
	Entry    types.HistoryEntry
}

// Composer turns editor text into requests, sends them and records the outcome
type Composer struct {
	client  Sender
	history HistoryRecorder
	stats   StatsRecorder
}

// Option configures a Composer
type Option func(*Composer)

// WithStats records every send into an analytics store
func WithStats(stats StatsRecorder) Option {
	return func(c *Composer) {
		c.stats = stats
	}
}

// New creates a Composer. history may be nil to skip recording.
func New(client Sender, history HistoryRecorder, opts ...Option) *Composer {
	c := &Composer{client: client, history: history}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build resolves fields against vars into the exact request to send.
// Params are appended to the substituted URL, header values and the body
// are substituted, and a body is only attached for POST, PUT and PATCH.
func Build(fields Fields, vars map[string]string) (types.RequestOptions, error) {
	if strings.TrimSpace(fields.URL) == "" {
		return types.RequestOptions{}, ErrMissingURL
	}
	if vars == nil {
		vars = map[string]string{}
	}

	method := strings.ToUpper(strings.TrimSpace(fields.Method))
	if method == "" {
		method = "GET"
	}

	url := parser.Substitute(strings.TrimSpace(fields.URL), vars)

	params := parser.ParseParams(fields.Params)
	for i := range params {
		params[i].Value = parser.Substitute(params[i].Value, vars)
	}
	url = parser.AppendQuery(url, params)

	headers := parser.SubstituteInMap(parser.ParseHeaders(fields.Headers), vars)

	req := types.RequestOptions{
		Method:  method,
		URL:     url,
		Headers: headers,
	}

	if fields.Body != "" && executor.AllowsBody(method) {
		body := parser.Substitute(fields.Body, vars)
		req.Body = &body
	}

	return req, nil
}

// Draft parses fields without substitution, keeping placeholders so the
// request can be saved and reused with any environment
func Draft(fields Fields) types.RequestOptions {
	method := strings.ToUpper(strings.TrimSpace(fields.Method))
	if method == "" {
		method = "GET"
	}

	req := types.RequestOptions{
		Method:  method,
		URL:     parser.AppendQuery(strings.TrimSpace(fields.URL), parser.ParseParams(fields.Params)),
		Headers: parser.ParseHeaders(fields.Headers),
	}
	if fields.Body != "" {
		body := fields.Body
		req.Body = &body
	}
	return req
}

// FieldsFrom renders a stored request back into editor text: headers as
// sorted "Key: Value" lines and the query string split into params
func FieldsFrom(req types.RequestOptions) Fields {
	base, params := parser.SplitQuery(req.URL)
	return Fields{
		Method:  strings.ToUpper(req.Method),
		URL:     base,
		Headers: parser.FormatHeaders(req.Headers),
		Params:  parser.FormatParams(params),
		Body:    req.BodyString(),
	}
}

// Send builds the request, performs it and records it. The only error is
// ErrMissingURL, returned before any HTTP call or history entry.
func (c *Composer) Send(ctx context.Context, fields Fields, env *types.Environment) (Result, error) {
	vars := map[string]string{}
	envName := ""
	if env != nil {
		vars = env.Variables
		envName = env.Name
	}

	req, err := Build(fields, vars)
	if err != nil {
		return Result{}, err
	}

	resp := c.client.Send(ctx, req)
	result := Result{Request: req, Response: resp}

	if c.history != nil {
		result.Entry = c.history.Record(req, resp)
	}
	if c.stats != nil {
		if err := c.stats.Record(req, resp, envName); err != nil {
			log.Printf("analytics: %v", err)
		}
	}

	return result, nil
}

// Summary is the toast shown after a send completes
func Summary(resp types.Response) string {
	if resp.IsTransportError() {
		return fmt.Sprintf("Error: %s (%s)", firstLine(resp.Body), executor.FormatDuration(resp.Time))
	}
	return fmt.Sprintf("%d %s · %s", resp.Status, resp.StatusText, executor.FormatDuration(resp.Time))
}

func firstLine(s string) string {
	if line, _, found := strings.Cut(s, "\n"); found {
		return line
	}
	return s
}
