package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config is the user's keybinds.json: context name -> action -> keys.
// Keys are comma separated ("up,k"). Listing an action replaces its
// default keys in that context.
type Config struct {
	Version  string                       `json:"version"`
	Bindings map[string]map[string]string `json:"bindings"`
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SplitKeys parses "up, k" into ["up", "k"]. "space" stands for " ".
func SplitKeys(spec string) []string {
	var keys []string
	for _, key := range strings.Split(spec, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if key == "space" {
			key = " "
		}
		keys = append(keys, key)
	}
	return keys
}

// ApplyConfig applies user configuration to a registry.
// Unknown contexts are rejected so typos do not silently do nothing.
func ApplyConfig(registry *Registry, config *Config) error {
	known := make(map[Context]bool, len(AllContexts))
	for _, c := range AllContexts {
		known[c] = true
	}

	for contextName, actions := range config.Bindings {
		context := Context(contextName)
		if !known[context] {
			return fmt.Errorf("unknown context %q", contextName)
		}

		for actionName, spec := range actions {
			action := Action(actionName)
			if err := ValidateAction(actionName); err != nil {
				return fmt.Errorf("context %s: %w", contextName, err)
			}

			keys := SplitKeys(spec)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("context %s, action %s: %w", contextName, actionName, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportConfig renders a registry as a Config, e.g. to write the defaults
// out for users to edit
func ExportConfig(registry *Registry) *Config {
	config := &Config{
		Version:  "1.0",
		Bindings: make(map[string]map[string]string),
	}

	for _, context := range AllContexts {
		byAction := make(map[Action][]string)
		for _, b := range registry.ListBindings(context) {
			key := b.Key
			if key == " " {
				key = "space"
			}
			byAction[b.Action] = append(byAction[b.Action], key)
		}
		if len(byAction) == 0 {
			continue
		}

		section := make(map[string]string, len(byAction))
		for action, keys := range byAction {
			section[string(action)] = strings.Join(keys, ",")
		}
		config.Bindings[string(context)] = section
	}

	return config
}
