/*
Package keybinds provides customizable keyboard binding management.

# Overview

Every key press in the TUI is resolved through a Registry that maps
context -> key -> action. The context is derived from the current UI
state: plain navigation, edit mode, or the single open modal. A key
bound in a context wins over the same key in the global context.

The default registry leaves the global context empty, so a key pressed
inside a modal only ever reaches that modal.

# Contexts

  - navigation: no modal open, not editing
  - edit: a text field has focus; only esc is interpreted
  - exit_confirm, env_selector, env_manager, env_editor,
    method_selector, save_request, history, saved, filter,
    response, help: one per modal

# Configuration File Format

keybinds.json lists, per context, the keys of each action. Keys are
comma separated and "space" stands for the space bar. Listing an
action replaces all of its default keys in that context:

	{
	  "version": "1.0",
	  "bindings": {
	    "navigation": {
	      "open_history": "H",
	      "send": "enter,ctrl+r"
	    },
	    "response": {
	      "close_modal": "esc,space"
	    }
	  }
	}

# Validation

The validator reports:
  - keys assigned to two actions of one context (error)
  - modal contexts with no key left to close them (error)
  - reserved keys rebound (warning)
  - context bindings shadowing global ones (warning)

# Example Usage

	registry, err := LoadOrDefault(config.KeybindsFile)
	if err != nil {
		log.Printf("keybinds: %v, using defaults", err)
		registry = NewDefaultRegistry()
	}

	if action, ok := registry.Match(ContextNavigation, "enter"); ok {
		// handle action
	}

Registries are built once at startup and only read afterwards.
*/
package keybinds
