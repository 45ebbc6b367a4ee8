package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/history"
	"github.com/studiowebux/restdeck/internal/keybinds"
)

func (m *Model) renderExitConfirm() string {
	content := "Quit restdeck?"
	if m.inFlight {
		content += "\n\n" + styleWarning.Render("A request is still in flight.")
	}
	footer := fmt.Sprintf("%s: quit | %s: stay",
		m.keybinds.GetBindingString(keybinds.ContextExitConfirm, keybinds.ActionConfirm),
		m.keybinds.GetBindingString(keybinds.ContextExitConfirm, keybinds.ActionCancel))
	return m.renderDialog("Exit", content, footer, 50)
}

// handleMethodSelectorKeys picks the HTTP method
func (m *Model) handleMethodSelectorKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextMethodSelector, msg.String())
	if !ok {
		return nil
	}

	if moveSelection(&m.methodIndex, len(executor.Methods), action, ListPageSize) {
		return nil
	}

	switch action {
	case keybinds.ActionSelect:
		m.method = executor.Methods[m.methodIndex]
		m.nav.Close()
	case keybinds.ActionCloseModal:
		m.nav.Close()
	}
	return nil
}

func (m *Model) renderMethodSelector() string {
	labels := make([]string, len(executor.Methods))
	for i, method := range executor.Methods {
		labels[i] = method
		if !executor.AllowsBody(method) {
			labels[i] += styleSubtle.Render("  (no body)")
		}
	}
	return m.renderDialog("Method", listLines(labels, m.methodIndex, 30), "enter: select | esc: cancel", 40)
}

// openSaveRequest opens the name prompt. There is nothing to save without a URL.
func (m *Model) openSaveRequest() tea.Cmd {
	if strings.TrimSpace(m.urlInput.Value()) == "" {
		return m.setErrorMessage("Enter a URL before saving")
	}

	m.saveInput.Reset()
	m.nav.Open(ModalSaveRequest)
	return m.saveInput.Focus()
}

// handleSaveRequestKeys saves the current editors under a name. Placeholders
// are kept so the request works with any environment.
func (m *Model) handleSaveRequestKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextSaveRequest, msg.String())
	if ok {
		switch action {
		case keybinds.ActionSubmit:
			saved, err := m.savedStore.Add(m.saveInput.Value(), composer.Draft(m.fields()))
			if errors.Is(err, history.ErrEmptyName) {
				return m.setErrorMessage("Name is required")
			}
			if err != nil {
				return m.setErrorMessage(err.Error())
			}
			m.saveInput.Blur()
			m.nav.Close()
			return m.setStatusMessage(fmt.Sprintf("Request saved as %q", saved.Name))

		case keybinds.ActionCancel:
			m.saveInput.Blur()
			m.nav.Close()
			return nil
		}
	}

	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return cmd
}

func (m *Model) renderSaveRequest() string {
	content := fmt.Sprintf("%s %s\n\n%s",
		m.method, truncate(m.urlInput.Value(), 50), m.saveInput.View())
	return m.renderDialog("Save Request", content, "enter: save | esc: cancel", 60)
}

// openHelp builds the help text from the live key bindings
func (m *Model) openHelp() {
	m.modalView.SetContent("")
	m.modalView.GotoTop()
	m.nav.Open(ModalHelp)
}

type helpSection struct {
	title   string
	context keybinds.Context
	actions []helpLine
}

type helpLine struct {
	action keybinds.Action
	text   string
}

var helpSections = []helpSection{
	{"Navigation", keybinds.ContextNavigation, []helpLine{
		{keybinds.ActionSend, "Send request"},
		{keybinds.ActionEdit, "Edit field (selector on environment/method)"},
		{keybinds.ActionNextField, "Next sub-tab, then next field"},
		{keybinds.ActionPrevField, "Previous sub-tab, then previous field"},
		{keybinds.ActionFocusUp, "Previous field"},
		{keybinds.ActionFocusDown, "Next field"},
		{keybinds.ActionSubTabPrev, "Previous sub-tab"},
		{keybinds.ActionSubTabNext, "Next sub-tab"},
		{keybinds.ActionFocusEnvironment, "Focus environment"},
		{keybinds.ActionFocusMethod, "Focus method"},
		{keybinds.ActionFocusURL, "Focus URL"},
		{keybinds.ActionFocusRequest, "Focus request"},
		{keybinds.ActionFocusResponse, "Focus response"},
		{keybinds.ActionOpenResponse, "Open response viewer (response focused)"},
		{keybinds.ActionOpenEnvManager, "Environments"},
		{keybinds.ActionSaveRequest, "Save request"},
		{keybinds.ActionOpenHistory, "History"},
		{keybinds.ActionOpenSaved, "Saved requests"},
		{keybinds.ActionOpenHelp, "Help"},
		{keybinds.ActionQuit, "Quit (asks first)"},
		{keybinds.ActionQuitForce, "Quit immediately"},
	}},
	{"Edit mode", keybinds.ContextEdit, []helpLine{
		{keybinds.ActionExitEdit, "Stop editing"},
	}},
	{"History", keybinds.ContextHistory, []helpLine{
		{keybinds.ActionSelect, "Load entry"},
		{keybinds.ActionFilter, "Fuzzy filter"},
		{keybinds.ActionDelete, "Delete entry"},
		{keybinds.ActionClearAll, "Clear all"},
		{keybinds.ActionGoToTop, "First entry"},
		{keybinds.ActionGoToBottom, "Last entry"},
		{keybinds.ActionCloseModal, "Close"},
	}},
	{"Saved requests", keybinds.ContextSaved, []helpLine{
		{keybinds.ActionSelect, "Load request"},
		{keybinds.ActionFilter, "Fuzzy filter"},
		{keybinds.ActionDelete, "Delete"},
		{keybinds.ActionCloseModal, "Close"},
	}},
	{"Environments", keybinds.ContextEnvManager, []helpLine{
		{keybinds.ActionSelect, "Activate"},
		{keybinds.ActionNew, "New"},
		{keybinds.ActionEditItem, "Edit"},
		{keybinds.ActionDelete, "Delete"},
		{keybinds.ActionCloseModal, "Close"},
	}},
	{"Environment editor", keybinds.ContextEnvEditor, []helpLine{
		{keybinds.ActionSwitchField, "Switch between name and variables"},
		{keybinds.ActionSubmit, "Save"},
		{keybinds.ActionCancel, "Cancel"},
	}},
	{"Response viewer", keybinds.ContextResponse, []helpLine{
		{keybinds.ActionCopy, "Copy body"},
		{keybinds.ActionPageDown, "Page down"},
		{keybinds.ActionPageUp, "Page up"},
		{keybinds.ActionCloseModal, "Close"},
	}},
}

func (m *Model) helpContent() string {
	var b strings.Builder
	for i, section := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleTitle.Render(section.title) + "\n")
		for _, line := range section.actions {
			keys := m.keybinds.GetBindingString(section.context, line.action)
			fmt.Fprintf(&b, "  %-18s %s\n", keys, line.text)
		}
	}
	b.WriteString("\n" + styleSubtle.Render(
		"Variables: {{NAME}} in the URL, params, header values and body is replaced from the active environment."))
	return b.String()
}

func (m *Model) renderHelp() string {
	footer := fmt.Sprintf("↑/↓ j/k: scroll | %s: close",
		m.keybinds.GetBindingString(keybinds.ContextHelp, keybinds.ActionCloseModal))
	title := "Keyboard Shortcuts"
	if m.version != "" {
		title += styleSubtle.Render("  restdeck " + m.version)
	}
	return m.renderModalWithFooter(title, m.helpContent(), footer,
		m.width-ModalWidthMarginNarrow, m.height-ModalHeightMarginMed)
}
