package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/studiowebux/restdeck/internal/analytics"
	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/filter"
	"github.com/studiowebux/restdeck/internal/history"
	"github.com/studiowebux/restdeck/internal/parser"
	"github.com/studiowebux/restdeck/internal/session"
	"github.com/studiowebux/restdeck/internal/types"
)

// ErrRequestFailed is returned after printing a response with a transport
// error or a 4xx/5xx status, so the process can exit non-zero
var ErrRequestFailed = errors.New("request failed")

// App runs the non-interactive commands against the same stores as the TUI
type App struct {
	Sessions  *session.Manager
	History   *history.Store
	Client    composer.Sender
	Analytics *analytics.Manager // nil when disabled
	Out       io.Writer
	Err       io.Writer
}

// SendOptions contains options for sending a request in CLI mode
type SendOptions struct {
	Method      string
	URL         string
	Headers     []string // "Key: Value"
	Params      []string // "key=value"
	Body        string
	Environment string // name; empty uses the active environment
	Output      string // text, json, yaml, body
	Filter      string // JMESPath expression applied to the body
	ShowHeaders bool
	NoHistory   bool
}

// Send builds the request exactly like the TUI does, sends it and prints the response
func (a *App) Send(ctx context.Context, opts SendOptions) error {
	env, err := a.environment(opts.Environment)
	if err != nil {
		return err
	}

	fields := composer.Fields{
		Method:  strings.ToUpper(opts.Method),
		URL:     opts.URL,
		Headers: strings.Join(opts.Headers, "\n"),
		Params:  strings.Join(opts.Params, "\n"),
		Body:    opts.Body,
	}
	if fields.Method == "" {
		fields.Method = "GET"
	}

	var vars map[string]string
	if env != nil {
		vars = env.Variables
	}
	text := strings.Join([]string{fields.URL, fields.Headers, fields.Params, fields.Body}, "\n")
	if missing := parser.UnresolvedVariables(text, vars); len(missing) > 0 {
		fmt.Fprintf(a.Err, "Warning: unresolved variables: %s\n", strings.Join(missing, ", "))
	}

	var recorder composer.HistoryRecorder
	if !opts.NoHistory && a.History != nil {
		recorder = a.History
	}
	var options []composer.Option
	if a.Analytics != nil {
		options = append(options, composer.WithStats(a.Analytics))
	}

	result, err := composer.New(a.Client, recorder, options...).Send(ctx, fields, env)
	if err != nil {
		return err
	}

	resp := result.Response
	if opts.Filter != "" && !resp.IsTransportError() {
		filtered, err := filter.Apply(resp.Body, opts.Filter)
		if err != nil {
			fmt.Fprintf(a.Err, "Warning: filter error: %v\n", err)
		} else {
			resp.Body = filtered
		}
	}

	if err := writeResponse(a.Out, result.Request, resp, opts.Output, opts.ShowHeaders); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if resp.IsTransportError() || resp.Status >= 400 {
		return ErrRequestFailed
	}
	return nil
}

// environment resolves name, falling back to the active environment
func (a *App) environment(name string) (*types.Environment, error) {
	if name == "" {
		return a.Sessions.Active(), nil
	}
	env := a.Sessions.FindByName(name)
	if env == nil {
		return nil, fmt.Errorf("%w: %s", session.ErrEnvironmentNotFound, name)
	}
	return env, nil
}

// PrintHistory prints the last limit history entries, newest first
func (a *App) PrintHistory(limit int, format string) error {
	entries := a.History.Entries()
	if limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}

	reversed := make([]types.HistoryEntry, len(entries))
	for i, entry := range entries {
		reversed[len(entries)-1-i] = entry
	}
	return writeHistory(a.Out, reversed, format)
}

// PrintEnvironments lists environments with the active one marked
func (a *App) PrintEnvironments() {
	writeEnvironments(a.Out, a.Sessions.Environments(), a.Sessions.ActiveID())
}

// UseEnvironment activates the environment called name
func (a *App) UseEnvironment(name string) error {
	env := a.Sessions.FindByName(name)
	if env == nil {
		return fmt.Errorf("%w: %s", session.ErrEnvironmentNotFound, name)
	}
	if err := a.Sessions.SetActive(env.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "Active environment: %s\n", env.Name)
	return nil
}

// PrintStats prints per-endpoint analytics, optionally for one environment
func (a *App) PrintStats(environmentName string) error {
	if a.Analytics == nil {
		return errors.New("analytics are disabled (analyticsEnabled=false in settings.jsonc)")
	}
	stats, err := a.Analytics.GetStats(environmentName)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	writeStats(a.Out, stats)
	return nil
}

// PrintRecent prints the last limit analytics entries, newest first
func (a *App) PrintRecent(environmentName string, limit int) error {
	if a.Analytics == nil {
		return errors.New("analytics are disabled (analyticsEnabled=false in settings.jsonc)")
	}
	entries, err := a.Analytics.LoadAll(environmentName, limit)
	if err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}
	writeRecent(a.Out, entries)
	return nil
}

// ClearStats deletes every analytics entry
func (a *App) ClearStats() error {
	if a.Analytics == nil {
		return errors.New("analytics are disabled (analyticsEnabled=false in settings.jsonc)")
	}
	if err := a.Analytics.Clear(); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}
	fmt.Fprintln(a.Out, "Analytics cleared")
	return nil
}
