package executor

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/restdeck/internal/types"
)

// DefaultTimeout bounds a single request when the caller sets none
const DefaultTimeout = 30 * time.Second

// bodyMethods are the only methods that forward a request body
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// Methods lists the methods offered by the method selector, in display order
var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// AllowsBody reports whether method forwards a request body
func AllowsBody(method string) bool {
	return bodyMethods[strings.ToUpper(method)]
}

// Options configures a Client
type Options struct {
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool
}

// Client executes requests and normalizes every outcome into a types.Response
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a Client from opts
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: opts.UserAgent,
	}
}

// Send performs one request. It never returns an error: transport failures
// come back as a Response with status 0 and the error message as body.
func (c *Client) Send(ctx context.Context, req types.RequestOptions) types.Response {
	startTime := time.Now()

	var bodyReader io.Reader
	if req.Body != nil && AllowsBody(req.Method) {
		bodyReader = bytes.NewBufferString(*req.Body)
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return errorResponse(fmt.Errorf("failed to create request: %w", err), startTime)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if c.userAgent != "" && !hasHeader(req.Headers, "User-Agent") {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return errorResponse(err, startTime)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorResponse(fmt.Errorf("failed to read response body: %w", err), startTime)
	}
	duration := time.Since(startTime).Milliseconds()

	headers := make(map[string]string)
	for key, values := range resp.Header {
		headers[key] = strings.Join(values, ", ")
	}

	var cookies []string
	for _, cookie := range resp.Cookies() {
		cookies = append(cookies, cookie.String())
	}

	return types.Response{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Headers:    headers,
		Cookies:    cookies,
		Body:       formatBody(resp.Header.Get("Content-Type"), bodyBytes),
		Time:       duration,
	}
}

func errorResponse(err error, startTime time.Time) types.Response {
	return types.Response{
		Status:     types.StatusTransportError,
		StatusText: types.StatusTextTransportError,
		Headers:    map[string]string{},
		Body:       err.Error(),
		Time:       time.Since(startTime).Milliseconds(),
	}
}

// statusText strips the numeric code from "200 OK"
func statusText(resp *http.Response) string {
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// formatBody pretty prints JSON bodies with two-space indentation
func formatBody(contentType string, body []byte) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return string(body)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}

func hasHeader(headers map[string]string, name string) bool {
	for key := range headers {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// IsClientErrorStatus returns true if status code is 4xx
func IsClientErrorStatus(status int) bool {
	return status >= 400 && status < 500
}

// IsServerErrorStatus returns true if status code is 5xx
func IsServerErrorStatus(status int) bool {
	return status >= 500 && status < 600
}
