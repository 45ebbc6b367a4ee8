package tui

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/history"
	"github.com/studiowebux/restdeck/internal/session"
	"github.com/studiowebux/restdeck/internal/types"
)

// stubSender answers every request with response and counts calls
type stubSender struct {
	mu       sync.Mutex
	calls    int
	last     types.RequestOptions
	response types.Response
}

func (s *stubSender) Send(ctx context.Context, req types.RequestOptions) types.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = req
	return s.response
}

func (s *stubSender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// CreateTestModel creates a Model backed by stores in a temp directory and
// a sender that never touches the network
func CreateTestModel(t *testing.T) (*Model, *stubSender) {
	t.Helper()

	dir := t.TempDir()
	sender := &stubSender{response: types.Response{
		Status:     200,
		StatusText: "OK",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       "{\n  \"ok\": true\n}",
		Time:       12,
	}}

	historyStore := history.NewStoreAt(filepath.Join(dir, "history.json"))
	m := New(Deps{
		Sessions: session.NewManagerAt(filepath.Join(dir, "environments.json")),
		History:  historyStore,
		Saved:    history.NewSavedStoreAt(filepath.Join(dir, "saved-requests.json")),
		Composer: composer.New(sender, historyStore),
		Version:  "test-version",
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return m, sender
}

// press feeds keys to the model one by one and returns the last command.
// Named keys (enter, esc, tab, ...) are sent as key types, anything else as runes.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// typeText sends each rune of text as a separate key
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// runCmd executes cmd synchronously and feeds its message back to the model
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
