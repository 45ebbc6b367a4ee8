package tui

import "github.com/studiowebux/restdeck/internal/keybinds"

// Field is a top-level panel that can hold focus
type Field int

const (
	FieldEnvironment Field = iota
	FieldMethod
	FieldURL
	FieldRequest
	FieldResponse
)

// fieldOrder is the circular focus order; digits 0-4 index into it
var fieldOrder = []Field{FieldEnvironment, FieldMethod, FieldURL, FieldRequest, FieldResponse}

func (f Field) String() string {
	switch f {
	case FieldEnvironment:
		return "environment"
	case FieldMethod:
		return "method"
	case FieldURL:
		return "url"
	case FieldRequest:
		return "request"
	case FieldResponse:
		return "response"
	}
	return "unknown"
}

// RequestTab is the sub-tab cursor of the request panel
type RequestTab int

const (
	RequestHeaders RequestTab = iota
	RequestParams
	RequestBody
)

var requestTabNames = []string{"Headers", "Params", "Body"}

func (t RequestTab) String() string { return requestTabNames[t] }

// ResponseTab is the sub-tab cursor of the response panel
type ResponseTab int

const (
	ResponseBody ResponseTab = iota
	ResponseHeaders
	ResponseCookies
)

var responseTabNames = []string{"Body", "Headers", "Cookies"}

func (t ResponseTab) String() string { return responseTabNames[t] }

// Modal identifies the overlay that owns the keyboard
type Modal int

const (
	ModalNone Modal = iota
	ModalExitConfirm
	ModalEnvSelector
	ModalEnvManager
	ModalEnvEditor
	ModalMethodSelector
	ModalSaveRequest
	ModalHistory
	ModalSaved
	ModalResponse
	ModalHelp
)

var modalContexts = map[Modal]keybinds.Context{
	ModalExitConfirm:    keybinds.ContextExitConfirm,
	ModalEnvSelector:    keybinds.ContextEnvSelector,
	ModalEnvManager:     keybinds.ContextEnvManager,
	ModalEnvEditor:      keybinds.ContextEnvEditor,
	ModalMethodSelector: keybinds.ContextMethodSelector,
	ModalSaveRequest:    keybinds.ContextSaveRequest,
	ModalHistory:        keybinds.ContextHistory,
	ModalSaved:          keybinds.ContextSaved,
	ModalResponse:       keybinds.ContextResponse,
	ModalHelp:           keybinds.ContextHelp,
}

// InputMode says which of the three dispatch regimes is in charge.
// Exactly one applies at any time.
type InputMode int

const (
	InputNavigation InputMode = iota
	InputEdit
	InputModal
)

// Navigator is the focus and modal state machine. It holds no UI
// components; the model reads it to decide who receives a key.
type Navigator struct {
	focus       Field
	editing     bool
	modal       Modal
	requestTab  RequestTab
	responseTab ResponseTab
}

// NewNavigator starts on the URL field in navigation mode
func NewNavigator() Navigator {
	return Navigator{focus: FieldURL}
}

func (n *Navigator) Focus() Field             { return n.focus }
func (n *Navigator) Modal() Modal             { return n.modal }
func (n *Navigator) RequestTab() RequestTab   { return n.requestTab }
func (n *Navigator) ResponseTab() ResponseTab { return n.responseTab }

// EditMode returns the field in edit mode. It is always the focused field.
func (n *Navigator) EditMode() (Field, bool) {
	return n.focus, n.editing
}

// Mode reports the current dispatch regime
func (n *Navigator) Mode() InputMode {
	switch {
	case n.modal != ModalNone:
		return InputModal
	case n.editing:
		return InputEdit
	default:
		return InputNavigation
	}
}

// Context maps the state onto the keybinding context used for lookups
func (n *Navigator) Context() keybinds.Context {
	switch n.Mode() {
	case InputModal:
		return modalContexts[n.modal]
	case InputEdit:
		return keybinds.ContextEdit
	default:
		return keybinds.ContextNavigation
	}
}

// Open shows modal. Edit mode is left first so the two never overlap.
func (n *Navigator) Open(modal Modal) {
	n.editing = false
	n.modal = modal
}

// Close returns control to the background state
func (n *Navigator) Close() {
	n.modal = ModalNone
}

// Edit enters edit mode on the focused field. Environment and method are
// picked from a list instead, so the matching selector opens. It returns
// the modal that was opened, or ModalNone.
func (n *Navigator) Edit() Modal {
	switch n.focus {
	case FieldEnvironment:
		n.Open(ModalEnvSelector)
		return ModalEnvSelector
	case FieldMethod:
		n.Open(ModalMethodSelector)
		return ModalMethodSelector
	}
	n.editing = true
	return ModalNone
}

// ExitEdit leaves edit mode without moving focus
func (n *Navigator) ExitEdit() {
	n.editing = false
}

// FocusOn moves focus to f. Entering the request or response panel
// resets its sub-tab.
func (n *Navigator) FocusOn(f Field) {
	if f == n.focus {
		return
	}
	n.focus = f
	n.editing = false
	switch f {
	case FieldRequest:
		n.requestTab = RequestHeaders
	case FieldResponse:
		n.responseTab = ResponseBody
	}
}

func (n *Navigator) shiftFocus(delta int) {
	count := len(fieldOrder)
	n.FocusOn(fieldOrder[((int(n.focus)+delta)%count+count)%count])
}

// Next handles tab: it walks the sub-tabs of the request or response panel
// first and only leaves the panel from its last sub-tab
func (n *Navigator) Next() {
	switch {
	case n.focus == FieldRequest && int(n.requestTab) < len(requestTabNames)-1:
		n.requestTab++
	case n.focus == FieldResponse && int(n.responseTab) < len(responseTabNames)-1:
		n.responseTab++
	default:
		n.shiftFocus(1)
	}
}

// Prev handles shift+tab, mirroring Next
func (n *Navigator) Prev() {
	switch {
	case n.focus == FieldRequest && n.requestTab > 0:
		n.requestTab--
	case n.focus == FieldResponse && n.responseTab > 0:
		n.responseTab--
	default:
		n.shiftFocus(-1)
	}
}

// FocusDown and FocusUp move one field, ignoring sub-tabs
func (n *Navigator) FocusDown() { n.shiftFocus(1) }
func (n *Navigator) FocusUp()   { n.shiftFocus(-1) }

// CycleSubTab moves the sub-tab of the focused panel by delta, wrapping.
// It reports false when the focused field has no sub-tabs.
func (n *Navigator) CycleSubTab(delta int) bool {
	switch n.focus {
	case FieldRequest:
		count := len(requestTabNames)
		n.requestTab = RequestTab(((int(n.requestTab)+delta)%count + count) % count)
	case FieldResponse:
		count := len(responseTabNames)
		n.responseTab = ResponseTab(((int(n.responseTab)+delta)%count + count) % count)
	default:
		return false
	}
	return true
}

// Apply performs a pure navigation action and reports whether it was one
func (n *Navigator) Apply(action keybinds.Action) bool {
	switch action {
	case keybinds.ActionNextField:
		n.Next()
	case keybinds.ActionPrevField:
		n.Prev()
	case keybinds.ActionFocusDown:
		n.FocusDown()
	case keybinds.ActionFocusUp:
		n.FocusUp()
	case keybinds.ActionSubTabNext:
		return n.CycleSubTab(1)
	case keybinds.ActionSubTabPrev:
		return n.CycleSubTab(-1)
	case keybinds.ActionExitEdit:
		n.ExitEdit()
	default:
		for i, focusAction := range keybinds.FocusActions {
			if action == focusAction {
				n.FocusOn(fieldOrder[i])
				return true
			}
		}
		return false
	}
	return true
}
