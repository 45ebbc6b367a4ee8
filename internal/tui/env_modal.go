package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/keybinds"
	"github.com/studiowebux/restdeck/internal/parser"
	"github.com/studiowebux/restdeck/internal/types"
)

const (
	envFieldName = iota
	envFieldVariables
)

// envEditorState is the environment editor form. id is 0 for a new environment.
type envEditorState struct {
	id    int64
	field int
	name  textinput.Model
	vars  textarea.Model
}

func newEnvEditorState() envEditorState {
	name := textinput.New()
	name.Placeholder = "Environment name"
	name.Prompt = ""

	vars := textarea.New()
	vars.Placeholder = "BASE_URL=http://localhost:3000\nTOKEN=secret"
	vars.ShowLineNumbers = false
	vars.CharLimit = 0
	vars.SetHeight(10)

	return envEditorState{name: name, vars: vars}
}

// activeEnvironmentIndex returns the list position of the active environment
func (m *Model) activeEnvironmentIndex() int {
	active := m.sessionMgr.ActiveID()
	if active == nil {
		return 0
	}
	for i, env := range m.sessionMgr.Environments() {
		if env.ID == *active {
			return i
		}
	}
	return 0
}

func (m *Model) environmentLabels() []string {
	active := m.sessionMgr.ActiveID()
	envs := m.sessionMgr.Environments()
	labels := make([]string, len(envs))
	for i, env := range envs {
		marker := "  "
		if active != nil && env.ID == *active {
			marker = "* "
		}
		labels[i] = fmt.Sprintf("%s%s (%d vars)", marker, env.Name, len(env.Variables))
	}
	return labels
}

func (m *Model) selectedEnvironment() *types.Environment {
	envs := m.sessionMgr.Environments()
	if m.envIndex < 0 || m.envIndex >= len(envs) {
		return nil
	}
	env := envs[m.envIndex]
	return &env
}

func (m *Model) activateSelectedEnvironment() tea.Cmd {
	env := m.selectedEnvironment()
	if env == nil {
		return nil
	}
	if err := m.sessionMgr.SetActive(env.ID); err != nil {
		return m.setErrorMessage(err.Error())
	}
	return m.setStatusMessage("Switched to " + env.Name)
}

// handleEnvSelectorKeys picks the active environment and closes
func (m *Model) handleEnvSelectorKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextEnvSelector, msg.String())
	if !ok {
		return nil
	}

	if moveSelection(&m.envIndex, len(m.sessionMgr.Environments()), action, ListPageSize) {
		return nil
	}

	switch action {
	case keybinds.ActionSelect:
		m.nav.Close()
		return m.activateSelectedEnvironment()
	case keybinds.ActionCloseModal:
		m.nav.Close()
	}
	return nil
}

func (m *Model) renderEnvSelector() string {
	content := styleSubtle.Render("No environments. Press v to create one.")
	if len(m.sessionMgr.Environments()) > 0 {
		content = listLines(m.environmentLabels(), m.envIndex, 40)
	}
	return m.renderDialog("Select Environment", content, "enter: activate | esc: cancel", 50)
}

// openEnvManager opens the environments manager on the active environment
func (m *Model) openEnvManager() {
	m.envIndex = m.activeEnvironmentIndex()
	m.nav.Open(ModalEnvManager)
}

// handleEnvManagerKeys lists, activates, creates, edits and deletes environments
func (m *Model) handleEnvManagerKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextEnvManager, msg.String())
	if !ok {
		return nil
	}

	if moveSelection(&m.envIndex, len(m.sessionMgr.Environments()), action, ListPageSize) {
		return nil
	}

	switch action {
	case keybinds.ActionSelect:
		return m.activateSelectedEnvironment()

	case keybinds.ActionNew:
		return m.openEnvEditor(nil)

	case keybinds.ActionEditItem:
		if env := m.selectedEnvironment(); env != nil {
			return m.openEnvEditor(env)
		}

	case keybinds.ActionDelete:
		env := m.selectedEnvironment()
		if env == nil {
			return nil
		}
		if err := m.sessionMgr.Delete(env.ID); err != nil {
			return m.setErrorMessage(err.Error())
		}
		m.envIndex = clamp(m.envIndex, 0, len(m.sessionMgr.Environments())-1)
		return m.setStatusMessage("Deleted environment " + env.Name)

	case keybinds.ActionCloseModal:
		m.nav.Close()
	}
	return nil
}

func (m *Model) renderEnvManager() string {
	var content string
	if len(m.sessionMgr.Environments()) == 0 {
		content = styleSubtle.Render("No environments.")
	} else {
		content = listLines(m.environmentLabels(), m.envIndex, m.width/2)
		if env := m.selectedEnvironment(); env != nil && len(env.Variables) > 0 {
			content += "\n\n" + styleSubtle.Render(parser.FormatVariables(env.Variables))
		}
	}

	footer := "enter: activate | n: new | e: edit | d: delete | esc/v: close"
	return m.renderModalWithFooterAndScroll("Environments", content, footer,
		m.width-ModalWidthMarginNarrow, m.height-ModalHeightMarginMed, m.envIndex)
}

// openEnvEditor edits env, or a new environment when env is nil
func (m *Model) openEnvEditor(env *types.Environment) tea.Cmd {
	m.envEditor.id = 0
	m.envEditor.name.Reset()
	m.envEditor.vars.Reset()
	if env != nil {
		m.envEditor.id = env.ID
		m.envEditor.name.SetValue(env.Name)
		m.envEditor.vars.SetValue(parser.FormatVariables(env.Variables))
	}

	m.envEditor.field = envFieldName
	m.envEditor.vars.Blur()
	m.nav.Open(ModalEnvEditor)
	return m.envEditor.name.Focus()
}

func (m *Model) closeEnvEditor() {
	m.envEditor.name.Blur()
	m.envEditor.vars.Blur()
	m.nav.Open(ModalEnvManager)
}

// handleEnvEditorKeys edits the name and the KEY=VALUE variables list
func (m *Model) handleEnvEditorKeys(msg tea.KeyMsg) tea.Cmd {
	editor := &m.envEditor

	if action, ok := m.keybinds.Match(keybinds.ContextEnvEditor, msg.String()); ok {
		switch action {
		case keybinds.ActionSwitchField:
			if editor.field == envFieldName {
				editor.field = envFieldVariables
				editor.name.Blur()
				return editor.vars.Focus()
			}
			editor.field = envFieldName
			editor.vars.Blur()
			return editor.name.Focus()

		case keybinds.ActionSubmit:
			name := strings.TrimSpace(editor.name.Value())
			if name == "" {
				return m.setErrorMessage("Environment name is required")
			}
			saved := m.sessionMgr.Upsert(types.Environment{
				ID:        editor.id,
				Name:      name,
				Variables: parser.ParseVariables(editor.vars.Value()),
			})
			for i, env := range m.sessionMgr.Environments() {
				if env.ID == saved.ID {
					m.envIndex = i
				}
			}
			m.closeEnvEditor()
			return m.setStatusMessage("Saved environment " + saved.Name)

		case keybinds.ActionCancel:
			m.closeEnvEditor()
			return nil
		}
	}

	var cmd tea.Cmd
	if editor.field == envFieldName {
		editor.name, cmd = editor.name.Update(msg)
	} else {
		editor.vars, cmd = editor.vars.Update(msg)
	}
	return cmd
}

func (m *Model) renderEnvEditor() string {
	title := "New Environment"
	if m.envEditor.id != 0 {
		title = "Edit Environment"
	}

	nameLabel, varsLabel := styleSubtle.Render("Name"), styleSubtle.Render("Variables (KEY=VALUE per line)")
	if m.envEditor.field == envFieldName {
		nameLabel = styleTitleFocused.Render("Name")
	} else {
		varsLabel = styleTitleFocused.Render("Variables (KEY=VALUE per line)")
	}

	width := min(80, max(MinTerminalWidth, m.width-ModalWidthMarginNarrow))
	m.envEditor.name.Width = width - 8
	m.envEditor.vars.SetWidth(width - 8)

	content := nameLabel + "\n" + m.envEditor.name.View() + "\n\n" + varsLabel + "\n" + m.envEditor.vars.View()
	return m.renderDialog(title, content, "tab: switch field | ctrl+s: save | esc: cancel", width)
}
