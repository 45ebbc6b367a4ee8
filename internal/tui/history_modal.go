package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/keybinds"
	"github.com/studiowebux/restdeck/internal/parser"
	"github.com/studiowebux/restdeck/internal/types"
)

// openHistory shows history newest first
func (m *Model) openHistory() {
	m.historyList.ClearFilter()
	m.historyList.SetItems(m.historyNewestFirst())
	m.historyList.Top()
	m.confirmClear = false
	m.filterInput.Reset()
	m.nav.Open(ModalHistory)
}

// openSaved shows saved requests in the order they were saved
func (m *Model) openSaved() {
	m.savedList.ClearFilter()
	m.savedList.SetItems(m.savedStore.Requests())
	m.savedList.Top()
	m.filterInput.Reset()
	m.nav.Open(ModalSaved)
}

func (m *Model) historyNewestFirst() []types.HistoryEntry {
	entries := m.historyStore.Entries()
	slices.Reverse(entries)
	return entries
}

// updateFilter feeds a key to the fuzzy filter of list. enter keeps the
// filter, esc drops it, up/down move through the matches.
func updateFilter[T any](m *Model, list *ListState[T], msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextFilter, msg.String()); ok {
		switch action {
		case keybinds.ActionSubmit:
			list.StopFilter()
			m.filterInput.Blur()
			return nil
		case keybinds.ActionCancel:
			list.ClearFilter()
			m.filterInput.Reset()
			m.filterInput.Blur()
			return nil
		case keybinds.ActionNavigateUp:
			list.Navigate(-1)
			return nil
		case keybinds.ActionNavigateDown:
			list.Navigate(1)
			return nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	list.SetQuery(m.filterInput.Value())
	return cmd
}

// startFilter focuses the filter input, keeping any previous query
func startFilter[T any](m *Model, list *ListState[T]) tea.Cmd {
	list.StartFilter()
	m.filterInput.SetValue(list.Query())
	m.filterInput.CursorEnd()
	return m.filterInput.Focus()
}

// moveList applies a movement action to list
func moveList[T any](list *ListState[T], action keybinds.Action) bool {
	switch action {
	case keybinds.ActionNavigateUp:
		list.Navigate(-1)
	case keybinds.ActionNavigateDown:
		list.Navigate(1)
	case keybinds.ActionPageUp:
		list.Page(-ListPageSize)
	case keybinds.ActionPageDown:
		list.Page(ListPageSize)
	case keybinds.ActionGoToTop:
		list.Top()
	case keybinds.ActionGoToBottom:
		list.Bottom()
	default:
		return false
	}
	return true
}

// handleHistoryKeys browses, loads and deletes history entries
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	if m.confirmClear {
		return m.handleClearHistoryConfirm(msg)
	}
	if m.historyList.Filtering() {
		return updateFilter(m, m.historyList, msg)
	}

	action, ok := m.keybinds.Match(keybinds.ContextHistory, msg.String())
	if !ok {
		return nil
	}
	if moveList(m.historyList, action) {
		return nil
	}

	switch action {
	case keybinds.ActionSelect:
		if entry, ok := m.historyList.Current(); ok {
			return m.loadRequest(entry.Request, "history entry")
		}

	case keybinds.ActionFilter:
		return startFilter(m, m.historyList)

	case keybinds.ActionDelete:
		entry, ok := m.historyList.Current()
		if !ok {
			return nil
		}
		if err := m.historyStore.Delete(entry.ID); err != nil {
			return m.setErrorMessage(fmt.Sprintf("Failed to delete entry: %v", err))
		}
		m.historyList.SetItems(m.historyNewestFirst())
		return m.setStatusMessage("History entry deleted")

	case keybinds.ActionClearAll:
		if m.historyList.Total() > 0 {
			m.confirmClear = true
		}

	case keybinds.ActionCloseModal:
		m.nav.Close()
	}
	return nil
}

func (m *Model) handleClearHistoryConfirm(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextExitConfirm, msg.String())
	if !ok {
		return nil
	}

	m.confirmClear = false
	if action != keybinds.ActionConfirm {
		return nil
	}
	if err := m.historyStore.Clear(); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to clear history: %v", err))
	}
	m.historyList.ClearFilter()
	m.historyList.SetItems(nil)
	return m.setStatusMessage("History cleared")
}

// handleSavedKeys browses, loads and deletes saved requests
func (m *Model) handleSavedKeys(msg tea.KeyMsg) tea.Cmd {
	if m.savedList.Filtering() {
		return updateFilter(m, m.savedList, msg)
	}

	action, ok := m.keybinds.Match(keybinds.ContextSaved, msg.String())
	if !ok {
		return nil
	}
	if moveList(m.savedList, action) {
		return nil
	}

	switch action {
	case keybinds.ActionSelect:
		if saved, ok := m.savedList.Current(); ok {
			return m.loadRequest(saved.Request, fmt.Sprintf("%q", saved.Name))
		}

	case keybinds.ActionFilter:
		return startFilter(m, m.savedList)

	case keybinds.ActionDelete:
		saved, ok := m.savedList.Current()
		if !ok {
			return nil
		}
		if err := m.savedStore.Delete(saved.ID); err != nil {
			return m.setErrorMessage(fmt.Sprintf("Failed to delete: %v", err))
		}
		m.savedList.SetItems(m.savedStore.Requests())
		return m.setStatusMessage(fmt.Sprintf("Deleted %q", saved.Name))

	case keybinds.ActionCloseModal:
		m.nav.Close()
	}
	return nil
}

func (m *Model) renderHistory() string {
	var lines []string
	for _, entry := range m.historyList.Items() {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			entry.Timestamp.Local().Format("01-02 15:04:05"),
			entry.Request.Method,
			entry.Request.URL))
	}

	preview := styleSubtle.Render("No history entries")
	if entry, ok := m.historyList.Current(); ok {
		preview = historyOutcome(entry) + "\n\n" + requestPreview(entry.Request)
	}

	footer := "enter: load | /: filter | d: delete | D: clear all | esc/h: close"
	if m.confirmClear {
		footer = styleWarning.Render(fmt.Sprintf("Delete all %d history entries? y/n", m.historyList.Total()))
	}

	return m.renderListModal(
		fmt.Sprintf("History (%d)", m.historyList.Total()),
		lines, m.historyList.Index(), m.historyList.Filtering(), m.historyList.Query(),
		preview, footer)
}

func (m *Model) renderSaved() string {
	var lines []string
	for _, saved := range m.savedList.Items() {
		lines = append(lines, saved.Name)
	}

	preview := styleSubtle.Render("No saved requests. Press s on the main screen to save one.")
	if saved, ok := m.savedList.Current(); ok {
		preview = styleSubtle.Render("Saved "+saved.Timestamp.Local().Format("2006-01-02 15:04")) +
			"\n\n" + requestPreview(saved.Request)
	}

	return m.renderListModal(
		fmt.Sprintf("Saved Requests (%d)", m.savedList.Total()),
		lines, m.savedList.Index(), m.savedList.Filtering(), m.savedList.Query(),
		preview, "enter: load | /: filter | d: delete | esc/l: close")
}

// renderListModal draws a filtered list next to a preview of the selected item
func (m *Model) renderListModal(title string, lines []string, index int, filtering bool, query, preview, footer string) string {
	width := max(MinTerminalWidth, m.width-ModalWidthMarginNarrow)
	height := max(8, m.height-ModalHeightMarginMed)
	listWidth := int(float64(width-3)*SplitViewEqual) - 2

	var header string
	switch {
	case filtering:
		header = m.filterInput.View() + "\n"
	case query != "":
		header = styleSubtle.Render("filter: "+query) + "\n"
	}

	rows := max(1, height-7-strings.Count(header, "\n"))
	content := header
	if len(lines) == 0 {
		content += styleSubtle.Render("Nothing to show")
	} else {
		start, end := visibleWindow(len(lines), index, rows)
		content += listLines(lines[start:end], index-start, listWidth)
	}

	return renderSplitPaneModal(SplitPaneConfig{
		ModalWidth:   width,
		ModalHeight:  height,
		LeftTitle:    title,
		LeftContent:  content,
		RightTitle:   "Request",
		RightContent: preview,
		Footer:       styleSubtle.Render(footer),
	}, m.width, m.height)
}

// visibleWindow returns the slice bounds of rows items that keep index in view
func visibleWindow(total, index, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	start := clamp(index-rows/2, 0, total-rows)
	return start, start + rows
}

func historyOutcome(entry types.HistoryEntry) string {
	if entry.Status == nil {
		return styleSubtle.Render("No outcome recorded")
	}

	statusText := ""
	if entry.StatusText != nil {
		statusText = *entry.StatusText
	}
	line := fmt.Sprintf("%d %s", *entry.Status, statusText)
	if entry.Time != nil {
		line += " " + executor.FormatDuration(*entry.Time)
	}
	return statusStyle(*entry.Status).Render(line)
}

// requestPreview renders a stored request the way the editors will show it
func requestPreview(req types.RequestOptions) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(req.Method) + " " + req.URL + "\n")

	if len(req.Headers) > 0 {
		b.WriteString("\n" + styleTitleUnfocused.Render("Headers") + "\n")
		b.WriteString(parser.FormatHeaders(req.Headers) + "\n")
	}

	_, params := parser.SplitQuery(req.URL)
	if len(params) > 0 {
		b.WriteString("\n" + styleTitleUnfocused.Render("Params") + "\n")
		b.WriteString(parser.FormatParams(params) + "\n")
	}

	if req.HasBody() {
		b.WriteString("\n" + styleTitleUnfocused.Render("Body") + "\n")
		b.WriteString(req.BodyString())
	}
	return b.String()
}
