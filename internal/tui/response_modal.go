package tui

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/restdeck/internal/executor"
	"github.com/studiowebux/restdeck/internal/keybinds"
	"github.com/studiowebux/restdeck/internal/parser"
	"github.com/studiowebux/restdeck/internal/types"
)

const highlightStyle = "monokai"

// openResponseViewer shows the whole response full screen
func (m *Model) openResponseViewer() {
	m.responseDoc = responseDocument(m.response)
	m.modalView.SetContent(m.responseDoc)
	m.modalView.GotoTop()
	m.nav.Open(ModalResponse)
}

// handleResponseViewerKeys scrolls, copies and closes
func (m *Model) handleResponseViewerKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextResponse, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCopy:
		return m.copyResponse()
	case keybinds.ActionCloseModal:
		m.nav.Close()
		return nil
	}
	scrollViewport(&m.modalView, action)
	return nil
}

func (m *Model) renderResponseViewer() string {
	title := "Response"
	if m.response != nil {
		title = fmt.Sprintf("Response  %s", responseStatusLine(*m.response))
	}
	footer := "↑/↓ j/k: scroll | g/G: top/bottom | c: copy body | space/esc: close"
	return m.renderModalWithFooter(title, m.responseDoc, footer,
		m.width-ModalWidthMargin, m.height-ModalHeightMargin)
}

// responseDocument is the viewer text: headers, cookies, then the highlighted body
func responseDocument(resp *types.Response) string {
	if resp == nil {
		return styleSubtle.Render("No response")
	}

	var b strings.Builder
	if len(resp.Headers) > 0 {
		b.WriteString(styleTitleUnfocused.Render("Headers") + "\n")
		b.WriteString(formatHeaderLines(resp.Headers) + "\n\n")
	}
	if len(resp.Cookies) > 0 {
		b.WriteString(styleTitleUnfocused.Render("Cookies") + "\n")
		b.WriteString(strings.Join(resp.Cookies, "\n") + "\n\n")
	}
	b.WriteString(styleTitleUnfocused.Render(fmt.Sprintf("Body (%s)", executor.FormatSize(len(resp.Body)))) + "\n")
	b.WriteString(highlightBody(resp.Body, resp.Headers["Content-Type"]))
	return b.String()
}

// highlightBody colors body for the terminal, picking a lexer from the
// content type or the content itself. Unknown content is returned as is.
func highlightBody(body, contentType string) string {
	if body == "" {
		return ""
	}

	var lexer chroma.Lexer
	switch {
	case strings.Contains(contentType, "json"):
		lexer = lexers.Get("json")
	case strings.Contains(contentType, "html"):
		lexer = lexers.Get("html")
	case strings.Contains(contentType, "xml"):
		lexer = lexers.Get("xml")
	case strings.Contains(contentType, "yaml"):
		lexer = lexers.Get("yaml")
	default:
		lexer = lexers.Analyse(body)
	}
	if lexer == nil {
		return body
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, body)
	if err != nil {
		log.Printf("highlight: %v", err)
		return body
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		log.Printf("highlight: %v", err)
		return body
	}
	return buf.String()
}

func responseStatusLine(resp types.Response) string {
	line := fmt.Sprintf("%d %s  %s", resp.Status, resp.StatusText, executor.FormatDuration(resp.Time))
	return statusStyle(resp.Status).Render(line)
}

// statusStyle colors a status code: green 2xx, yellow 3xx, red otherwise
func statusStyle(status int) lipgloss.Style {
	switch {
	case executor.IsSuccessStatus(status):
		return styleSuccess
	case status >= 300 && status < 400:
		return styleWarning
	default:
		return styleError
	}
}

// formatHeaderLines renders headers as sorted "Key: Value" lines
func formatHeaderLines(headers map[string]string) string {
	return parser.FormatHeaders(headers)
}
