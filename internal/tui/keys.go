package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/keybinds"
)

// handleKeyPress is the single entry point for keyboard input. The open
// modal gets every key; otherwise edit mode gets every key; otherwise
// navigation commands apply.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch m.nav.Mode() {
	case InputModal:
		return m.handleModalKeys(msg)
	case InputEdit:
		return m.handleEditKeys(msg)
	default:
		return m.handleNavigationKeys(msg)
	}
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) tea.Cmd {
	switch m.nav.Modal() {
	case ModalExitConfirm:
		return m.handleExitConfirmKeys(msg)
	case ModalEnvSelector:
		return m.handleEnvSelectorKeys(msg)
	case ModalEnvManager:
		return m.handleEnvManagerKeys(msg)
	case ModalEnvEditor:
		return m.handleEnvEditorKeys(msg)
	case ModalMethodSelector:
		return m.handleMethodSelectorKeys(msg)
	case ModalSaveRequest:
		return m.handleSaveRequestKeys(msg)
	case ModalHistory:
		return m.handleHistoryKeys(msg)
	case ModalSaved:
		return m.handleSavedKeys(msg)
	case ModalResponse:
		return m.handleResponseViewerKeys(msg)
	case ModalHelp:
		return m.handleHelpKeys(msg)
	}
	return nil
}

// handleEditKeys: escape leaves edit mode, everything else goes to the field
func (m *Model) handleEditKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextEdit, msg.String()); ok && action == keybinds.ActionExitEdit {
		m.nav.ExitEdit()
		m.blurEditors()
		return nil
	}

	var cmd tea.Cmd
	field, _ := m.nav.EditMode()
	switch field {
	case FieldURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case FieldRequest:
		switch m.nav.RequestTab() {
		case RequestHeaders:
			m.headersInput, cmd = m.headersInput.Update(msg)
		case RequestParams:
			m.paramsInput, cmd = m.paramsInput.Update(msg)
		case RequestBody:
			m.bodyInput, cmd = m.bodyInput.Update(msg)
		}
	case FieldResponse:
		// read only: edit mode scrolls
		m.responseView, cmd = m.responseView.Update(msg)
	}
	return cmd
}

func (m *Model) handleNavigationKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextNavigation, msg.String())
	if !ok {
		return nil
	}

	if m.nav.Apply(action) {
		m.refreshResponseView()
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return tea.Quit

	case keybinds.ActionQuit:
		m.nav.Open(ModalExitConfirm)

	case keybinds.ActionSend:
		return m.sendRequest()

	case keybinds.ActionOpenHelp:
		m.openHelp()

	case keybinds.ActionOpenResponse:
		if m.nav.Focus() == FieldResponse && m.response != nil {
			m.openResponseViewer()
		}

	case keybinds.ActionOpenEnvManager:
		m.openEnvManager()

	case keybinds.ActionSaveRequest:
		return m.openSaveRequest()

	case keybinds.ActionOpenHistory:
		m.openHistory()

	case keybinds.ActionOpenSaved:
		m.openSaved()

	case keybinds.ActionEdit:
		return m.startEdit()
	}

	return nil
}

// handleExitConfirmKeys handles the quit confirmation
func (m *Model) handleExitConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextExitConfirm, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionConfirm:
		return tea.Quit
	case keybinds.ActionCancel:
		m.nav.Close()
	}
	return nil
}

// handleHelpKeys handles keyboard input in the help modal
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	if action == keybinds.ActionCloseModal {
		m.nav.Close()
		return nil
	}
	scrollViewport(&m.modalView, action)
	return nil
}

// scrollViewport applies a list movement action to a viewport
func scrollViewport(v *viewport.Model, action keybinds.Action) bool {
	switch action {
	case keybinds.ActionNavigateUp:
		v.LineUp(1)
	case keybinds.ActionNavigateDown:
		v.LineDown(1)
	case keybinds.ActionPageUp:
		v.HalfViewUp()
	case keybinds.ActionPageDown:
		v.HalfViewDown()
	case keybinds.ActionGoToTop:
		v.GotoTop()
	case keybinds.ActionGoToBottom:
		v.GotoBottom()
	default:
		return false
	}
	return true
}

// moveSelection applies a list movement action to an index over count items
func moveSelection(index *int, count int, action keybinds.Action, page int) bool {
	if count == 0 {
		*index = 0
		return false
	}

	switch action {
	case keybinds.ActionNavigateUp:
		*index = (*index - 1 + count) % count
	case keybinds.ActionNavigateDown:
		*index = (*index + 1) % count
	case keybinds.ActionPageUp:
		*index = clamp(*index-page, 0, count-1)
	case keybinds.ActionPageDown:
		*index = clamp(*index+page, 0, count-1)
	case keybinds.ActionGoToTop:
		*index = 0
	case keybinds.ActionGoToBottom:
		*index = count - 1
	default:
		return false
	}
	return true
}
