package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/studiowebux/restdeck/internal/analytics"
	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/parser"
	"github.com/studiowebux/restdeck/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	successColor   = color.New(color.FgGreen, color.Bold)
	redirectColor  = color.New(color.FgYellow, color.Bold)
	errorColor     = color.New(color.FgRed, color.Bold)
	headerKeyColor = color.New(color.FgCyan)
	methodColor    = color.New(color.FgMagenta, color.Bold)
	dimColor       = color.New(color.Faint)
)

// sendOutput is the json/yaml shape of `send`
type sendOutput struct {
	Request  types.RequestOptions `json:"request" yaml:"request"`
	Response types.Response       `json:"response" yaml:"response"`
}

func writeResponse(w io.Writer, req types.RequestOptions, resp types.Response, format string, showHeaders bool) error {
	switch format {
	case "json":
		return writeJSON(w, sendOutput{Request: req, Response: resp})
	case "yaml":
		return writeYAML(w, sendOutput{Request: req, Response: resp})
	case "body":
		fmt.Fprintln(w, resp.Body)
		return nil
	}

	statusColor(resp.Status).Fprintf(w, "%d %s\n", resp.Status, sanitizeOutput(resp.StatusText))
	dimColor.Fprintf(w, "Duration: %s | Size: %s\n",
		executor.FormatDuration(resp.Time), executor.FormatSize(len(resp.Body)))

	if showHeaders && len(resp.Headers) > 0 {
		fmt.Fprintln(w, "\nHeaders:")
		for _, line := range strings.Split(parser.FormatHeaders(resp.Headers), "\n") {
			key, value, _ := strings.Cut(line, ": ")
			headerKeyColor.Fprintf(w, "  %s: ", sanitizeOutput(key))
			fmt.Fprintln(w, sanitizeOutput(value))
		}
	}

	if resp.Body != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sanitizeOutput(resp.Body))
	}
	return nil
}

func writeHistory(w io.Writer, entries []types.HistoryEntry, format string) error {
	switch format {
	case "json":
		return writeJSON(w, entries)
	case "yaml":
		return writeYAML(w, entries)
	}

	if len(entries) == 0 {
		dimColor.Fprintln(w, "No requests in history")
		return nil
	}

	for _, entry := range entries {
		dimColor.Fprintf(w, "%s ", entry.Timestamp.Local().Format("2006-01-02 15:04:05"))
		methodColor.Fprintf(w, "%-7s ", entry.Request.Method)
		fmt.Fprintf(w, "%s", sanitizeOutput(entry.Request.URL))
		if entry.Status != nil {
			fmt.Fprint(w, " ")
			statusColor(*entry.Status).Fprintf(w, "%d", *entry.Status)
		}
		if entry.Time != nil {
			dimColor.Fprintf(w, " (%s)", executor.FormatDuration(*entry.Time))
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeEnvironments(w io.Writer, envs []types.Environment, active *int64) {
	if len(envs) == 0 {
		dimColor.Fprintln(w, "No environments")
		return
	}

	for _, env := range envs {
		if active != nil && env.ID == *active {
			successColor.Fprintf(w, "* %s", env.Name)
		} else {
			fmt.Fprintf(w, "  %s", env.Name)
		}
		dimColor.Fprintf(w, " (%d variables)\n", len(env.Variables))
	}
}

func writeStats(w io.Writer, stats []analytics.Stats) {
	if len(stats) == 0 {
		dimColor.Fprintln(w, "No analytics recorded yet")
		return
	}

	fmt.Fprintf(w, "%-7s %-40s %6s %6s %6s %10s %10s\n", "METHOD", "ENDPOINT", "CALLS", "OK", "ERR", "AVG", "MAX")
	for _, s := range stats {
		methodColor.Fprintf(w, "%-7s ", s.Method)
		fmt.Fprintf(w, "%-40s %6d ", truncate(s.NormalizedPath, 40), s.TotalCalls)
		successColor.Fprintf(w, "%6d ", s.SuccessCount)
		errorColor.Fprintf(w, "%6d ", s.ErrorCount+s.NetworkErrors)
		fmt.Fprintf(w, "%10s %10s\n",
			executor.FormatDuration(int64(s.AvgDurationMs)), executor.FormatDuration(s.MaxDurationMs))
	}
}

func writeRecent(w io.Writer, entries []analytics.Entry) {
	if len(entries) == 0 {
		dimColor.Fprintln(w, "No analytics recorded yet")
		return
	}

	for _, e := range entries {
		dimColor.Fprintf(w, "%s ", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		methodColor.Fprintf(w, "%-7s ", e.Method)
		fmt.Fprintf(w, "%s ", sanitizeOutput(e.URL))
		statusColor(e.StatusCode).Fprintf(w, "%d", e.StatusCode)
		dimColor.Fprintf(w, " (%s)", executor.FormatDuration(e.DurationMs))
		if e.ErrorMessage != "" {
			errorColor.Fprintf(w, " %s", sanitizeOutput(truncate(e.ErrorMessage, 60)))
		}
		fmt.Fprintln(w)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func statusColor(code int) *color.Color {
	switch {
	case executor.IsSuccessStatus(code):
		return successColor
	case code >= 300 && code < 400:
		return redirectColor
	default:
		return errorColor
	}
}

// sanitizeOutput escapes control characters that could drive the terminal
func sanitizeOutput(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			result.WriteRune(r)
		case r == '\x1b':
			result.WriteString("\\x1b")
		case unicode.IsControl(r) && r < 0x20:
			fmt.Fprintf(&result, "\\x%02x", r)
		case r == 0x7F:
			result.WriteString("\\x7f")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
