package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are context/key pairs that must keep their action
	reservedKeys map[Context]map[string]Action

	// exitActions lists, per modal context, the actions that close it.
	// At least one must stay bound or the modal would trap the user.
	exitActions map[Context][]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[Context]map[string]Action{
			ContextNavigation: {"ctrl+c": ActionQuitForce},
			ContextEdit:       {"esc": ActionExitEdit},
		},
		exitActions: map[Context][]Action{
			ContextEdit:           {ActionExitEdit},
			ContextExitConfirm:    {ActionConfirm, ActionCancel},
			ContextEnvSelector:    {ActionCloseModal, ActionSelect},
			ContextEnvManager:     {ActionCloseModal},
			ContextEnvEditor:      {ActionCancel, ActionSubmit},
			ContextMethodSelector: {ActionCloseModal, ActionSelect},
			ContextSaveRequest:    {ActionCancel},
			ContextHistory:        {ActionCloseModal},
			ContextSaved:          {ActionCloseModal},
			ContextFilter:         {ActionCancel, ActionSubmit},
			ContextResponse:       {ActionCloseModal},
			ContextHelp:           {ActionCloseModal},
		},
	}
}

// ValidateRegistry validates an entire registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkReservedKeys(registry, result)
	v.checkExitReachable(registry, result)
	v.checkShadowing(registry, result)

	return result
}

// ValidateConfig validates a configuration applied over the defaults
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	checkConfigConflicts(config, result)

	registry := NewDefaultRegistry()
	if err := ApplyConfig(registry, config); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Type:    "invalid",
			Message: err.Error(),
		})
		return result
	}

	registryResult := v.ValidateRegistry(registry)
	result.Errors = append(result.Errors, registryResult.Errors...)
	result.Warnings = append(result.Warnings, registryResult.Warnings...)
	return result
}

// checkConfigConflicts finds keys assigned to more than one action within
// a context of the config. The registry keeps only the last, so the
// outcome would depend on map order.
func checkConfigConflicts(config *Config, result *ValidationResult) {
	contexts := make([]string, 0, len(config.Bindings))
	for name := range config.Bindings {
		contexts = append(contexts, name)
	}
	sort.Strings(contexts)

	for _, name := range contexts {
		owners := make(map[string][]string)
		for action, spec := range config.Bindings[name] {
			for _, key := range SplitKeys(spec) {
				owners[key] = append(owners[key], action)
			}
		}

		keys := make([]string, 0, len(owners))
		for key := range owners {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if actions := owners[key]; len(actions) > 1 {
				sort.Strings(actions)
				result.Errors = append(result.Errors, ValidationError{
					Type:    "conflict",
					Context: Context(name),
					Key:     key,
					Message: fmt.Sprintf("key bound to %d actions (%s)", len(actions), strings.Join(actions, ", ")),
				})
			}
		}
	}
}

// checkReservedKeys warns when a reserved key no longer maps to its action
func (v *Validator) checkReservedKeys(registry *Registry, result *ValidationResult) {
	for context, reserved := range v.reservedKeys {
		for key, want := range reserved {
			if got, ok := registry.bindings[context][key]; ok && got != want {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("reserved key rebound to %s (expected %s)", got, want),
				})
			}
		}
	}
}

// checkExitReachable errors when a modal context has no way out
func (v *Validator) checkExitReachable(registry *Registry, result *ValidationResult) {
	for _, context := range AllContexts {
		actions, ok := v.exitActions[context]
		if !ok {
			continue
		}

		reachable := false
		for _, action := range actions {
			if len(registry.GetBinding(context, action)) > 0 {
				reachable = true
				break
			}
		}
		if !reachable {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Context: context,
				Message: "no key closes this context",
			})
		}
	}
}

// checkShadowing checks for context-specific bindings that shadow global bindings
func (v *Validator) checkShadowing(registry *Registry, result *ValidationResult) {
	globalBindings := registry.bindings[ContextGlobal]
	if globalBindings == nil {
		return
	}

	for _, context := range AllContexts {
		if context == ContextGlobal {
			continue
		}

		for key, action := range registry.bindings[context] {
			if globalAction, hasGlobal := globalBindings[key]; hasGlobal && action != globalAction {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Key:     key,
					Message: fmt.Sprintf("shadows global binding (%s -> %s)", globalAction, action),
				})
			}
		}
	}
}

// FindConflicts finds all conflicting keybindings in a config
func FindConflicts(config *Config) []string {
	validator := NewValidator()
	result := validator.ValidateConfig(config)

	var conflicts []string
	for _, err := range result.Errors {
		if err.Type == "conflict" {
			conflicts = append(conflicts, err.Error())
		}
	}

	return conflicts
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	validModifiers := []string{"ctrl+", "alt+", "shift+", "super+"}
	for _, mod := range validModifiers {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	return nil
}

// ValidateAction checks if an action string is valid
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if strings.ContainsAny(actionStr, " \t") {
		return fmt.Errorf("action %q contains whitespace", actionStr)
	}
	return nil
}
