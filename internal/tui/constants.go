package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6  // Standard horizontal margin (m.width - 6)
	ModalHeightMargin      = 3  // Standard vertical margin (m.height - 3)
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for focused modals (m.width - 10)
	ModalHeightMarginSmall = 2  // Small vertical margin (m.height - 2)
	ModalHeightMarginMed   = 4  // Medium vertical margin (m.height - 4)

	// Viewport Padding and Borders
	ViewportBorderWidth       = 2 // Width consumed by borders
	ViewportPaddingHorizontal = 4 // Horizontal padding (left + right)

	// Main layout
	TopRowHeight     = 3  // environment / method / url boxes including borders
	StatusBarHeight  = 1  // status line under the panels
	PanelChrome      = 3  // border (2) + sub-tab line (1)
	EnvBoxWidth      = 22 // environment box including borders
	MethodBoxWidth   = 11 // method box including borders
	MinPanelHeight   = 3
	MinTerminalWidth = 40

	// Modal Content Calculations
	ModalOverheadLines   = 6 // Title (2) + padding (2) + border (2)
	ModalOverheadMinimal = 4 // Border + title for minimal modals

	// List modals move this many rows on pgup/pgdown
	ListPageSize = 10

	// Split View Ratios
	SplitViewEqual = 0.5 // Equal 50/50 split for split-pane modals
)
