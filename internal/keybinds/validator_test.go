package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if v.reservedKeys[ContextNavigation]["ctrl+c"] != ActionQuitForce {
		t.Error("Expected ctrl+c to be reserved for force quit in navigation")
	}

	if len(v.exitActions) == 0 {
		t.Error("Expected exit actions to be initialized")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextNavigation,
				Key:     "q",
				Message: "key bound to 2 actions",
			},
			expected: "[conflict] q in context 'navigation': key bound to 2 actions",
		},
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextHelp,
				Key:     "",
				Message: "no key closes this context",
			},
			expected: "[invalid]  in context 'help': no key closes this context",
		},
		{
			name: "warning",
			err: ValidationError{
				Type:    "warning",
				Context: ContextHistory,
				Key:     "q",
				Message: "shadows global binding",
			},
			expected: "[warning] q in context 'history': shadows global binding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "no issues",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "only errors",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Context: ContextNavigation, Key: "q", Message: "duplicate"},
				},
			},
			contains: []string{"Errors (1)", "conflict", "navigation", "q"},
		},
		{
			name: "both errors and warnings",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Context: ContextNavigation, Key: "q", Message: "duplicate"},
				},
				Warnings: []ValidationError{
					{Type: "warning", Context: ContextSaved, Key: "tab", Message: "shadows"},
				},
			},
			contains: []string{"Errors (1)", "Warnings (1)", "conflict", "warning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() output missing %q, got:\n%s", want, got)
				}
			}
		})
	}

	if (&ValidationResult{}).HasErrors() || (&ValidationResult{}).HasWarnings() {
		t.Error("empty result should report nothing")
	}
}

func TestCheckReservedKeys(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name           string
		setupRegistry  func() *Registry
		expectWarnings int
	}{
		{
			name: "reserved key with correct action",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextNavigation, "ctrl+c", ActionQuitForce)
				return r
			},
			expectWarnings: 0,
		},
		{
			name: "reserved key rebound",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextNavigation, "ctrl+c", ActionQuit)
				return r
			},
			expectWarnings: 1,
		},
		{
			name: "edit escape rebound",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextEdit, "esc", ActionSend)
				return r
			},
			expectWarnings: 1,
		},
		{
			name: "ctrl+c inside a modal is free",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextHistory, "ctrl+c", ActionCloseModal)
				return r
			},
			expectWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &ValidationResult{}
			v.checkReservedKeys(tt.setupRegistry(), result)

			if len(result.Warnings) != tt.expectWarnings {
				t.Errorf("Expected %d warnings, got %d", tt.expectWarnings, len(result.Warnings))
			}
		})
	}
}

func TestCheckShadowing(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name           string
		setupRegistry  func() *Registry
		expectWarnings int
	}{
		{
			name: "no global bindings",
			setupRegistry: func() *Registry {
				return NewDefaultRegistry()
			},
			expectWarnings: 0,
		},
		{
			name: "context shadows global with different action",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextGlobal, "q", ActionQuit)
				r.Register(ContextHelp, "q", ActionCloseModal)
				return r
			},
			expectWarnings: 1,
		},
		{
			name: "context uses same action as global (no warning)",
			setupRegistry: func() *Registry {
				r := NewRegistry()
				r.Register(ContextGlobal, "q", ActionQuit)
				r.Register(ContextNavigation, "q", ActionQuit)
				return r
			},
			expectWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &ValidationResult{}
			v.checkShadowing(tt.setupRegistry(), result)

			if len(result.Warnings) != tt.expectWarnings {
				t.Errorf("Expected %d warnings, got %d", tt.expectWarnings, len(result.Warnings))
				for _, w := range result.Warnings {
					t.Logf("  Warning: %s", w.Error())
				}
			}
		})
	}
}

func TestValidateRegistry_Defaults(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default registry should validate cleanly:\n%s", result.String())
	}
}

func TestValidateRegistry_TrappedModal(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unbind(ContextHelp, ActionCloseModal)

	result := NewValidator().ValidateRegistry(r)
	if !result.HasErrors() {
		t.Fatal("expected an error for a modal without exit")
	}
	if result.Errors[0].Context != ContextHelp {
		t.Errorf("error context = %s, want help", result.Errors[0].Context)
	}
}

func TestValidateConfig(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name         string
		config       *Config
		expectErrors bool
	}{
		{
			name: "valid override",
			config: &Config{Bindings: map[string]map[string]string{
				"navigation": {"open_history": "H", "send": "enter,ctrl+r"},
			}},
			expectErrors: false,
		},
		{
			name:         "empty config",
			config:       &Config{},
			expectErrors: false,
		},
		{
			name: "unknown context",
			config: &Config{Bindings: map[string]map[string]string{
				"nowhere": {"send": "x"},
			}},
			expectErrors: true,
		},
		{
			name: "unbinding every exit",
			config: &Config{Bindings: map[string]map[string]string{
				"response": {"close_modal": ""},
			}},
			expectErrors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateConfig(tt.config)

			if tt.expectErrors && !result.HasErrors() {
				t.Error("Expected errors but got none")
			}

			if !tt.expectErrors && result.HasErrors() {
				t.Errorf("Expected no errors but got: %v", result.Errors)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	tests := []struct {
		name           string
		config         *Config
		expectConflict bool
	}{
		{
			name: "no conflicts",
			config: &Config{Bindings: map[string]map[string]string{
				"navigation": {"quit": "q", "open_help": "?"},
			}},
			expectConflict: false,
		},
		{
			name: "same key for two actions",
			config: &Config{Bindings: map[string]map[string]string{
				"navigation": {"open_history": "x", "open_saved": "x,L"},
			}},
			expectConflict: true,
		},
		{
			name:           "empty config",
			config:         &Config{},
			expectConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := FindConflicts(tt.config)

			if tt.expectConflict && len(conflicts) == 0 {
				t.Error("Expected conflicts but got none")
			}

			if !tt.expectConflict && len(conflicts) > 0 {
				t.Errorf("Expected no conflicts but got: %v", conflicts)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"empty key", "", true},
		{"simple key", "q", false},
		{"multi-char key", "esc", false},
		{"ctrl modifier", "ctrl+c", false},
		{"shift modifier", "shift+tab", false},
		{"modifier only", "ctrl+", true},
		{"space", " ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)

			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction(t *testing.T) {
	tests := []struct {
		name      string
		actionStr string
		wantErr   bool
	}{
		{"empty action", "", true},
		{"valid action", "quit", false},
		{"action with underscores", "open_help", false},
		{"whitespace", "open help", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAction(tt.actionStr)

			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAction() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
