package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/composer"
	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/types"
)

// sendRequest starts a send in the background. A missing URL aborts with a
// toast before anything is sent or recorded. Each send is numbered so a
// result that is no longer wanted can be told apart when it arrives.
func (m *Model) sendRequest() tea.Cmd {
	if m.inFlight {
		return m.setErrorMessage("A request is already in flight")
	}

	fields := m.fields()
	if strings.TrimSpace(fields.URL) == "" {
		return m.setErrorMessage(composer.ErrMissingURL.Error())
	}

	m.seq++
	seq := m.seq
	m.activeSeq = seq
	m.inFlight = true
	m.statusMsg = fmt.Sprintf("Sending %s...", m.method)
	m.errorMsg = ""

	comp := m.composer
	env := m.activeEnvironment()

	return func() tea.Msg {
		result, err := comp.Send(context.Background(), fields, env)
		return requestSentMsg{seq: seq, result: result, err: err}
	}
}

// handleRequestSent applies a finished send unless it was superseded
func (m *Model) handleRequestSent(msg requestSentMsg) tea.Cmd {
	m.inFlight = false

	if msg.err != nil {
		return m.setErrorMessage(msg.err.Error())
	}

	if msg.seq != m.activeSeq {
		logDiscard(msg.seq, msg.result)
		return m.setStatusMessage("Previous response discarded (kept in history)")
	}

	resp := msg.result.Response
	m.response = &resp
	if m.nav.Mode() == InputNavigation {
		m.nav.FocusOn(FieldResponse)
	}
	m.refreshResponseView()
	m.responseView.GotoTop()
	if m.nav.Modal() == ModalResponse {
		m.responseDoc = responseDocument(m.response)
	}

	summary := composer.Summary(resp)
	if resp.IsTransportError() {
		return m.setErrorMessage(summary)
	}
	return m.setStatusMessage(summary)
}

// loadRequest copies a stored request into the editors. A send still in
// flight no longer matches what is shown, so its result will be dropped.
func (m *Model) loadRequest(req types.RequestOptions, label string) tea.Cmd {
	m.setFields(composer.FieldsFrom(req))
	if m.inFlight {
		m.activeSeq = 0
	}
	m.nav.Close()
	return m.setStatusMessage("Loaded " + label)
}

// startEdit enters edit mode on the focused field, or opens the selector
// for the environment and method fields
func (m *Model) startEdit() tea.Cmd {
	switch m.nav.Edit() {
	case ModalEnvSelector:
		m.envIndex = m.activeEnvironmentIndex()
		return nil
	case ModalMethodSelector:
		m.methodIndex = 0
		for i, method := range executor.Methods {
			if method == m.method {
				m.methodIndex = i
			}
		}
		return nil
	}

	field, _ := m.nav.EditMode()
	switch field {
	case FieldURL:
		return m.urlInput.Focus()
	case FieldRequest:
		switch m.nav.RequestTab() {
		case RequestHeaders:
			return m.headersInput.Focus()
		case RequestParams:
			return m.paramsInput.Focus()
		case RequestBody:
			return m.bodyInput.Focus()
		}
	}
	return nil
}

func (m *Model) blurEditors() {
	m.urlInput.Blur()
	m.headersInput.Blur()
	m.paramsInput.Blur()
	m.bodyInput.Blur()
}

// copyResponse copies the full response body to the clipboard
func (m *Model) copyResponse() tea.Cmd {
	if m.response == nil {
		return m.setErrorMessage("No response to copy")
	}
	if err := clipboard.WriteAll(m.response.Body); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to copy to clipboard: %v", err))
	}
	return m.setStatusMessage("Response copied to clipboard")
}

// responseTabContent renders the response panel for the current sub-tab
func (m *Model) responseTabContent() string {
	if m.inFlight && m.response == nil {
		return styleSubtle.Render("Sending...")
	}
	if m.response == nil {
		return styleSubtle.Render("No response yet. Press enter to send.")
	}

	resp := m.response
	switch m.nav.ResponseTab() {
	case ResponseHeaders:
		if len(resp.Headers) == 0 {
			return styleSubtle.Render("No headers")
		}
		return formatHeaderLines(resp.Headers)
	case ResponseCookies:
		if len(resp.Cookies) == 0 {
			return styleSubtle.Render("No cookies")
		}
		return strings.Join(resp.Cookies, "\n")
	default:
		return resp.Body
	}
}
