package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	styleTitleUnfocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// layout holds the panel sizes derived from the terminal size
type layout struct {
	urlWidth       int // url box including borders
	panelWidth     int // request and response boxes including borders
	requestHeight  int // request box including borders
	responseHeight int // response box including borders
}

func (m *Model) layout() layout {
	width := max(MinTerminalWidth, m.width)
	body := max(2*MinPanelHeight+2*PanelChrome, m.height-TopRowHeight-StatusBarHeight)
	request := max(MinPanelHeight+PanelChrome, body*2/5)

	return layout{
		urlWidth:       max(10, width-EnvBoxWidth-MethodBoxWidth),
		panelWidth:     width,
		requestHeight:  request,
		responseHeight: max(MinPanelHeight+PanelChrome, body-request),
	}
}

// updateLayout resizes the editors and the response viewport
func (m *Model) updateLayout() {
	l := m.layout()

	m.urlInput.Width = l.urlWidth - ViewportPaddingHorizontal

	innerWidth := l.panelWidth - ViewportPaddingHorizontal
	editorHeight := max(1, l.requestHeight-PanelChrome)
	for _, ta := range m.requestEditors() {
		ta.SetWidth(innerWidth)
		ta.SetHeight(editorHeight)
	}

	m.responseView.Width = innerWidth
	m.responseView.Height = max(1, l.responseHeight-PanelChrome)
	m.refreshResponseView()
}

func (m *Model) requestEditors() []*textarea.Model {
	return []*textarea.Model{&m.headersInput, &m.paramsInput, &m.bodyInput}
}

// refreshResponseView loads the current response sub-tab into the panel viewport
func (m *Model) refreshResponseView() {
	m.responseView.SetContent(m.responseTabContent())
}

// renderMain renders the editor screen: env/method/url row, request and
// response panels, and the status bar
func (m *Model) renderMain() string {
	l := m.layout()

	env := m.renderBox(FieldEnvironment, truncate(m.activeEnvironmentName(), EnvBoxWidth-4), EnvBoxWidth, TopRowHeight)
	method := m.renderBox(FieldMethod, methodStyle(m.method).Render(m.method), MethodBoxWidth, TopRowHeight)
	url := m.renderBox(FieldURL, m.urlInput.View(), l.urlWidth, TopRowHeight)
	top := lipgloss.JoinHorizontal(lipgloss.Top, env, method, url)

	requestTabs := []string{RequestHeaders.String(), RequestParams.String(), RequestBody.String()}
	request := m.renderBox(FieldRequest,
		renderTabs(requestTabs, int(m.nav.RequestTab()), m.nav.Focus() == FieldRequest)+"\n"+m.activeEditorView(),
		l.panelWidth, l.requestHeight)

	responseTabs := []string{ResponseBody.String(), ResponseHeaders.String(), ResponseCookies.String()}
	tabs := renderTabs(responseTabs, int(m.nav.ResponseTab()), m.nav.Focus() == FieldResponse)
	if m.response != nil {
		tabs += "  " + responseStatusLine(*m.response)
	}
	response := m.renderBox(FieldResponse, tabs+"\n"+m.responseView.View(), l.panelWidth, l.responseHeight)

	return lipgloss.JoinVertical(lipgloss.Left, top, request, response, m.renderStatusBar())
}

// renderBox draws a bordered box for field: green when focused, yellow while editing
func (m *Model) renderBox(field Field, content string, width, height int) string {
	border := colorGray
	if m.nav.Focus() == field {
		border = colorGreen
		if editing, ok := m.nav.EditMode(); ok && editing == field {
			border = colorYellow
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(1, width-ViewportBorderWidth)).
		Height(max(1, height-ViewportBorderWidth)).
		MaxHeight(height).
		Padding(0, 1).
		Render(content)
}

func renderTabs(names []string, active int, focused bool) string {
	parts := make([]string, len(names))
	for i, name := range names {
		switch {
		case i == active && focused:
			parts[i] = styleTitleFocused.Render("[" + name + "]")
		case i == active:
			parts[i] = styleTitle.Render("[" + name + "]")
		default:
			parts[i] = styleSubtle.Render(" " + name + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) activeEditorView() string {
	switch m.nav.RequestTab() {
	case RequestParams:
		return m.paramsInput.View()
	case RequestBody:
		if !executor.AllowsBody(m.method) && m.bodyInput.Value() != "" {
			return styleWarning.Render(m.method+" requests are sent without a body") + "\n" + m.bodyInput.View()
		}
		return m.bodyInput.View()
	default:
		return m.headersInput.View()
	}
}

func methodStyle(method string) lipgloss.Style {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return styleSuccess
	case "DELETE":
		return styleError
	default:
		return styleWarning
	}
}

// renderStatusBar renders the status bar at the bottom
func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf("Env: %s | %s", m.activeEnvironmentName(), m.modeLabel())
	if m.inFlight {
		left += " | " + styleWarning.Render("sending...")
	}

	var right string
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	case m.nav.Mode() == InputEdit:
		right = styleSubtle.Render(m.keybinds.GetBindingString(keybinds.ContextEdit, keybinds.ActionExitEdit) + ": stop editing")
	default:
		right = styleSubtle.Render(fmt.Sprintf("%s: send | %s: edit | %s: help | %s: quit",
			m.keybinds.GetBindingString(keybinds.ContextNavigation, keybinds.ActionSend),
			m.keybinds.GetBindingString(keybinds.ContextNavigation, keybinds.ActionEdit),
			m.keybinds.GetBindingString(keybinds.ContextNavigation, keybinds.ActionOpenHelp),
			m.keybinds.GetBindingString(keybinds.ContextNavigation, keybinds.ActionQuit)))
	}

	spacing := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", spacing) + right
}

func (m *Model) modeLabel() string {
	if field, ok := m.nav.EditMode(); ok {
		return "EDIT " + field.String()
	}
	return "NAV " + m.nav.Focus().String()
}
