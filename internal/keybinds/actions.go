package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal         Context = "global"          // Fallback for every context
	ContextNavigation     Context = "navigation"      // No modal open, no field in edit mode
	ContextEdit           Context = "edit"            // A field is in edit mode
	ContextExitConfirm    Context = "exit_confirm"    // Quit confirmation
	ContextEnvSelector    Context = "env_selector"    // Pick the active environment
	ContextEnvManager     Context = "env_manager"     // List, activate, create, delete environments
	ContextEnvEditor      Context = "env_editor"      // Edit environment name and variables
	ContextMethodSelector Context = "method_selector" // Pick the HTTP method
	ContextSaveRequest    Context = "save_request"    // Name input for saving a request
	ContextHistory        Context = "history"         // History viewer
	ContextSaved          Context = "saved"           // Saved requests viewer
	ContextFilter         Context = "filter"          // Fuzzy filter input inside a list viewer
	ContextResponse       Context = "response"        // Full screen response viewer
	ContextHelp           Context = "help"            // Help viewer
)

const (
	// Navigation mode
	ActionQuit           Action = "quit"            // Open exit confirmation
	ActionQuitForce      Action = "quit_force"      // Exit without confirmation
	ActionSend           Action = "send"            // Send the request
	ActionOpenHelp       Action = "open_help"       // Open help
	ActionOpenResponse   Action = "open_response"   // Open the response viewer
	ActionOpenEnvManager Action = "open_env_manager" // Open environments manager
	ActionSaveRequest    Action = "save_request"    // Open save modal
	ActionOpenHistory    Action = "open_history"    // Open history viewer
	ActionOpenSaved      Action = "open_saved"      // Open saved requests viewer
	ActionEdit           Action = "edit"            // Edit focused field or open its selector
	ActionNextField      Action = "next_field"      // Sub-tab forward, then next field
	ActionPrevField      Action = "prev_field"      // Sub-tab back, then previous field
	ActionFocusUp        Action = "focus_up"        // Previous field
	ActionFocusDown      Action = "focus_down"      // Next field
	ActionSubTabPrev     Action = "subtab_prev"     // Cycle sub-tab left
	ActionSubTabNext     Action = "subtab_next"     // Cycle sub-tab right
	ActionFocusEnvironment Action = "focus_environment"
	ActionFocusMethod      Action = "focus_method"
	ActionFocusURL         Action = "focus_url"
	ActionFocusRequest     Action = "focus_request"
	ActionFocusResponse    Action = "focus_response"

	// Edit mode
	ActionExitEdit Action = "exit_edit" // Leave edit mode, keep focus

	// Lists and viewers
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"
	ActionSelect       Action = "select"      // Activate or load the selected item
	ActionCloseModal   Action = "close_modal" // Close without selecting
	ActionNew          Action = "new"         // Create an item
	ActionEditItem     Action = "edit_item"   // Edit the selected item
	ActionDelete       Action = "delete"      // Delete the selected item
	ActionClearAll     Action = "clear_all"   // Delete every item
	ActionFilter       Action = "filter"      // Start fuzzy filtering
	ActionCopy         Action = "copy"        // Copy to clipboard

	// Forms and dialogs
	ActionConfirm     Action = "confirm"      // y / enter
	ActionCancel      Action = "cancel"       // n / esc
	ActionSwitchField Action = "switch_field" // Move between inputs of a form
	ActionSubmit      Action = "submit"       // Save the form
)

// FocusActions maps the digit jump actions to field positions 0-4
var FocusActions = []Action{
	ActionFocusEnvironment,
	ActionFocusMethod,
	ActionFocusURL,
	ActionFocusRequest,
	ActionFocusResponse,
}

// AllContexts lists every context in display order
var AllContexts = []Context{
	ContextGlobal,
	ContextNavigation,
	ContextEdit,
	ContextExitConfirm,
	ContextEnvSelector,
	ContextEnvManager,
	ContextEnvEditor,
	ContextMethodSelector,
	ContextSaveRequest,
	ContextHistory,
	ContextSaved,
	ContextFilter,
	ContextResponse,
	ContextHelp,
}
