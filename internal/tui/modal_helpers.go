package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SplitPaneConfig defines the configuration for a generic split-pane modal
type SplitPaneConfig struct {
	// Modal dimensions
	ModalWidth  int
	ModalHeight int

	// Left pane
	LeftTitle   string
	LeftContent string

	// Right pane
	RightTitle   string
	RightContent string

	// Footer
	Footer string

	// Left pane gets this share of the width (0.0 to 1.0, default 0.5)
	LeftWidthRatio float64
}

// renderSplitPaneModal renders a list on the left and a preview on the right
func renderSplitPaneModal(cfg SplitPaneConfig, totalWidth, totalHeight int) string {
	paneHeight := max(1, cfg.ModalHeight-4)

	ratio := cfg.LeftWidthRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = SplitViewEqual
	}

	listWidth := int(float64(cfg.ModalWidth-3) * ratio)
	previewWidth := cfg.ModalWidth - listWidth - 3

	leftPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(listWidth).
		Height(paneHeight).
		Padding(0, 1).
		Render(styleTitleFocused.Render(cfg.LeftTitle) + "\n" + cfg.LeftContent)

	rightPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(previewWidth).
		Height(paneHeight).
		Padding(0, 1).
		Render(styleTitleUnfocused.Render(cfg.RightTitle) + "\n" + cfg.RightContent)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		"\n"+cfg.Footer,
	)

	return lipgloss.Place(
		totalWidth,
		totalHeight,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderModalWithFooter renders a modal dialog with scrollable content and a fixed footer
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, footer, width, height, -1)
}

// renderModalWithFooterAndScroll renders a modal with footer and auto-scrolls to keep selectedLine visible.
// Pass selectedLine=-1 to preserve existing scroll position
func (m *Model) renderModalWithFooterAndScroll(title, content, footer string, width, height, selectedLine int) string {
	// For small terminals, use almost full screen
	width = min(width, m.width-ViewportPaddingHorizontal)
	height = min(height, m.height-ModalHeightMarginSmall)

	if width < 30 && m.width >= 30 {
		width = 30
	}
	if height < 8 && m.height >= 8 {
		height = 8
	}

	footerLines := 0
	if footer != "" {
		footerLines = 2
	}
	contentHeight := height - ModalOverheadLines - footerLines
	if contentHeight < 1 {
		contentHeight = max(1, height-ModalOverheadMinimal-footerLines)
	}

	m.modalView.Width = max(10, width-ViewportPaddingHorizontal)
	m.modalView.Height = contentHeight

	// Save scroll before SetContent resets it
	savedOffset := m.modalView.YOffset
	m.modalView.SetContent(content)

	if selectedLine >= 0 && m.modalView.Height > 0 {
		topVisible := savedOffset
		bottomVisible := savedOffset + m.modalView.Height - 1

		switch {
		case selectedLine < topVisible:
			m.modalView.SetYOffset(selectedLine)
		case selectedLine > bottomVisible:
			m.modalView.SetYOffset(selectedLine - m.modalView.Height + 1)
		default:
			m.modalView.SetYOffset(savedOffset)
		}
	} else {
		m.modalView.SetYOffset(savedOffset)
	}

	fullContent := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		fullContent += "\n\n" + styleSubtle.Render(footer)
	}

	modalBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(fullContent)

	if width >= m.width-2 || height >= m.height-1 {
		return modalBox
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalBox,
	)
}

// renderDialog renders a small fixed dialog without a viewport
func (m *Model) renderDialog(title, content, footer string, width int) string {
	body := styleTitle.Render(title) + "\n\n" + content
	if footer != "" {
		body += "\n\n" + styleSubtle.Render(footer)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(min(width, max(MinTerminalWidth, m.width-ViewportPaddingHorizontal))).
		Padding(1, 2).
		Render(body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// listLines renders labels with the selected row highlighted
func listLines(labels []string, selected int, width int) string {
	lines := make([]string, len(labels))
	for i, label := range labels {
		label = truncate(label, max(4, width))
		if i == selected {
			lines[i] = styleSelected.Render("> " + label)
		} else {
			lines[i] = "  " + label
		}
	}
	return strings.Join(lines, "\n")
}
