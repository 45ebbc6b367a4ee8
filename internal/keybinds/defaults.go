package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerNavigationBindings(r)
	registerEditBindings(r)
	registerListBindings(r, ContextEnvSelector)
	registerListBindings(r, ContextMethodSelector)
	registerListBindings(r, ContextEnvManager)
	registerListBindings(r, ContextHistory)
	registerListBindings(r, ContextSaved)
	registerEnvManagerBindings(r)
	registerHistoryBindings(r)
	registerSavedBindings(r)
	registerFormBindings(r)
	registerConfirmBindings(r)
	registerFilterBindings(r)
	registerResponseBindings(r)
	registerHelpBindings(r)

	return r
}

// registerNavigationBindings covers plain navigation: no modal, no edit mode
func registerNavigationBindings(r *Registry) {
	r.Register(ContextNavigation, "ctrl+c", ActionQuitForce)
	r.RegisterMultiple(ContextNavigation, []string{"q", "esc"}, ActionQuit)
	r.Register(ContextNavigation, "enter", ActionSend)
	r.Register(ContextNavigation, "/", ActionOpenHelp)
	r.Register(ContextNavigation, " ", ActionOpenResponse)
	r.Register(ContextNavigation, "v", ActionOpenEnvManager)
	r.Register(ContextNavigation, "s", ActionSaveRequest)
	r.Register(ContextNavigation, "h", ActionOpenHistory)
	r.Register(ContextNavigation, "l", ActionOpenSaved)
	r.Register(ContextNavigation, "e", ActionEdit)

	r.Register(ContextNavigation, "tab", ActionNextField)
	r.Register(ContextNavigation, "shift+tab", ActionPrevField)
	r.Register(ContextNavigation, "up", ActionFocusUp)
	r.Register(ContextNavigation, "down", ActionFocusDown)
	r.Register(ContextNavigation, "left", ActionSubTabPrev)
	r.Register(ContextNavigation, "right", ActionSubTabNext)

	for i, action := range FocusActions {
		r.Register(ContextNavigation, string(rune('0'+i)), action)
	}
}

// registerEditBindings: only esc is interpreted, everything else goes to the editor
func registerEditBindings(r *Registry) {
	r.Register(ContextEdit, "esc", ActionExitEdit)
}

// registerListBindings sets up the shared movement keys of list modals
func registerListBindings(r *Registry, context Context) {
	r.RegisterMultiple(context, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(context, []string{"down", "j"}, ActionNavigateDown)
	r.Register(context, "pgup", ActionPageUp)
	r.Register(context, "pgdown", ActionPageDown)
	r.RegisterMultiple(context, []string{"g", "home"}, ActionGoToTop)
	r.RegisterMultiple(context, []string{"G", "end"}, ActionGoToBottom)
	r.Register(context, "enter", ActionSelect)
	r.RegisterMultiple(context, []string{"esc", "q"}, ActionCloseModal)
}

func registerEnvManagerBindings(r *Registry) {
	r.Register(ContextEnvManager, "v", ActionCloseModal)
	r.Register(ContextEnvManager, "n", ActionNew)
	r.Register(ContextEnvManager, "e", ActionEditItem)
	r.RegisterMultiple(ContextEnvManager, []string{"d", "D"}, ActionDelete)
}

func registerHistoryBindings(r *Registry) {
	r.Register(ContextHistory, "h", ActionCloseModal)
	r.Register(ContextHistory, "/", ActionFilter)
	r.Register(ContextHistory, "d", ActionDelete)
	r.Register(ContextHistory, "D", ActionClearAll)
}

func registerSavedBindings(r *Registry) {
	r.Register(ContextSaved, "l", ActionCloseModal)
	r.Register(ContextSaved, "/", ActionFilter)
	r.RegisterMultiple(ContextSaved, []string{"d", "D"}, ActionDelete)
}

// registerFormBindings covers the environment editor and the save modal
func registerFormBindings(r *Registry) {
	r.Register(ContextEnvEditor, "tab", ActionSwitchField)
	r.Register(ContextEnvEditor, "shift+tab", ActionSwitchField)
	r.Register(ContextEnvEditor, "ctrl+s", ActionSubmit)
	r.Register(ContextEnvEditor, "esc", ActionCancel)

	r.Register(ContextSaveRequest, "enter", ActionSubmit)
	r.Register(ContextSaveRequest, "esc", ActionCancel)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextExitConfirm, []string{"y", "Y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextExitConfirm, []string{"n", "N", "esc"}, ActionCancel)
}

func registerFilterBindings(r *Registry) {
	r.Register(ContextFilter, "enter", ActionSubmit)
	r.Register(ContextFilter, "esc", ActionCancel)
	r.Register(ContextFilter, "up", ActionNavigateUp)
	r.Register(ContextFilter, "down", ActionNavigateDown)
}

func registerResponseBindings(r *Registry) {
	r.RegisterMultiple(ContextResponse, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextResponse, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextResponse, "pgup", ActionPageUp)
	r.Register(ContextResponse, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextResponse, []string{"g", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextResponse, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextResponse, "c", ActionCopy)
	r.RegisterMultiple(ContextResponse, []string{"esc", "q", " "}, ActionCloseModal)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHelp, "pgup", ActionPageUp)
	r.Register(ContextHelp, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "/"}, ActionCloseModal)
}
