package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/config"
	"github.com/studiowebux/restdeck/internal/history"
	"github.com/studiowebux/restdeck/internal/keybinds"
	"github.com/studiowebux/restdeck/internal/session"
	"github.com/studiowebux/restdeck/internal/types"
)

// Deps are the collaborators the TUI works with
type Deps struct {
	Sessions *session.Manager
	History  *history.Store
	Saved    *history.SavedStore
	Composer *composer.Composer
	Keybinds *keybinds.Registry
	Settings types.Settings
	Version  string
}

// Model is the root application state. Every key goes through
// handleKeyPress, which asks the navigator who owns it.
type Model struct {
	sessionMgr   *session.Manager
	historyStore *history.Store
	savedStore   *history.SavedStore
	composer     *composer.Composer
	keybinds     *keybinds.Registry
	settings     types.Settings
	version      string

	nav Navigator

	// Request editors
	method       string
	urlInput     textinput.Model
	headersInput textarea.Model
	paramsInput  textarea.Model
	bodyInput    textarea.Model

	// Response
	response     *types.Response
	responseView viewport.Model
	modalView    viewport.Model // response viewer and help
	responseDoc  string         // highlighted response viewer text

	// Send tracking: only activeSeq's result reaches the response panel
	seq       uint64
	activeSeq uint64
	inFlight  bool

	// Modal state
	envIndex     int
	envEditor    envEditorState
	methodIndex  int
	saveInput    textinput.Model
	historyList  *ListState[types.HistoryEntry]
	savedList    *ListState[types.SavedRequest]
	filterInput  textinput.Model
	confirmClear bool

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	toastID   int
}

// New creates the root model
func New(deps Deps) *Model {
	registry := deps.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	m := &Model{
		sessionMgr:   deps.Sessions,
		historyStore: deps.History,
		savedStore:   deps.Saved,
		composer:     deps.Composer,
		keybinds:     registry,
		settings:     deps.Settings,
		version:      deps.Version,
		nav:          NewNavigator(),
		method:       "GET",
		urlInput:     newURLInput(),
		headersInput: newEditorArea("Content-Type: application/json"),
		paramsInput:  newEditorArea("page=1"),
		bodyInput:    newEditorArea(`{"name": "{{NAME}}"}`),
		responseView: viewport.New(80, 10),
		modalView:    viewport.New(80, 20),
		envEditor:    newEnvEditorState(),
		saveInput:    newSingleLineInput("Request name"),
		filterInput:  newSingleLineInput("filter"),
		historyList:  NewListState(historyLabel),
		savedList:    NewListState(savedLabel),
	}
	m.refreshResponseView()
	return m
}

func newURLInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "{{BASE_URL}}/users"
	ti.Prompt = ""
	ti.CharLimit = 0
	return ti
}

func newSingleLineInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	return ti
}

func newEditorArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	return ta
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case requestSentMsg:
		cmd = m.handleRequestSent(msg)

	case clearToastMsg:
		if msg.id == m.toastID {
			m.statusMsg = ""
			m.errorMsg = ""
		}
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.nav.Modal() {
	case ModalExitConfirm:
		return m.renderExitConfirm()
	case ModalEnvSelector:
		return m.renderEnvSelector()
	case ModalEnvManager:
		return m.renderEnvManager()
	case ModalEnvEditor:
		return m.renderEnvEditor()
	case ModalMethodSelector:
		return m.renderMethodSelector()
	case ModalSaveRequest:
		return m.renderSaveRequest()
	case ModalHistory:
		return m.renderHistory()
	case ModalSaved:
		return m.renderSaved()
	case ModalResponse:
		return m.renderResponseViewer()
	case ModalHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// requestSentMsg carries a finished send back to the UI loop
type requestSentMsg struct {
	seq    uint64
	result composer.Result
	err    error
}

type clearToastMsg struct {
	id int
}

// fields collects the editor text
func (m *Model) fields() composer.Fields {
	return composer.Fields{
		Method:  m.method,
		URL:     m.urlInput.Value(),
		Headers: m.headersInput.Value(),
		Params:  m.paramsInput.Value(),
		Body:    m.bodyInput.Value(),
	}
}

// setFields replaces the editor text, e.g. when loading a stored request
func (m *Model) setFields(f composer.Fields) {
	m.method = f.Method
	if m.method == "" {
		m.method = "GET"
	}
	m.urlInput.SetValue(f.URL)
	m.headersInput.SetValue(f.Headers)
	m.paramsInput.SetValue(f.Params)
	m.bodyInput.SetValue(f.Body)
}

// setStatusMessage shows a toast that clears itself after the configured timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncate(msg, 100)
	m.errorMsg = ""
	return m.scheduleToastClear()
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = truncate(msg, 100)
	m.statusMsg = ""
	return m.scheduleToastClear()
}

func (m *Model) scheduleToastClear() tea.Cmd {
	m.toastID++
	id := m.toastID

	timeout := config.MessageTimeout(m.settings)
	if timeout <= 0 {
		return nil
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

// activeEnvironment returns a copy of the active environment for a send
func (m *Model) activeEnvironment() *types.Environment {
	env := m.sessionMgr.Active()
	if env == nil {
		return nil
	}
	copied := *env
	return &copied
}

func (m *Model) activeEnvironmentName() string {
	if env := m.sessionMgr.Active(); env != nil {
		return env.Name
	}
	return "(none)"
}

func logDiscard(seq uint64, result composer.Result) {
	log.Printf("discarding stale response #%d (%s %s -> %s)",
		seq, result.Request.Method, result.Request.URL, composer.Summary(result.Response))
}

func historyLabel(entry types.HistoryEntry) string {
	status := ""
	if entry.Status != nil {
		status = fmt.Sprintf(" %d", *entry.Status)
	}
	return entry.Request.Method + " " + entry.Request.URL + status
}

func savedLabel(saved types.SavedRequest) string {
	return saved.Name + " " + saved.Request.Method + " " + saved.Request.URL
}
