/*
Package tui implements the terminal user interface for restdeck.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state and initialization, defines the Model struct
  - navigator.go: Focus, edit mode and modal state machine
  - keys.go: Keyboard input routing
  - actions.go: Sending requests, loading stored requests, clipboard
  - render.go: Main screen rendering
  - *_modal.go, modals.go: One handler and one renderer per modal

# Input Routing

Navigator decides who owns a key:
  - An open modal receives every key until it closes itself
  - Otherwise a field in edit mode receives every key except esc
  - Otherwise the key is a navigation command

Exactly one field is focused: environment, method, url, request or
response. tab and shift+tab walk the request and response sub-tabs before
moving to the next field; up/down move between fields directly and digits
0-4 jump to a field.

# Keybind System

Keybinds are managed through the keybinds.Registry. Every modal has its own
context; user overrides come from keybinds.json.

# Threading Model

The TUI runs in Bubble Tea's event loop. Sending a request is a tea.Cmd run
on another goroutine; its result comes back as a requestSentMsg carrying the
sequence number it was started with. Only one send is in flight at a time,
and a result whose sequence is no longer active is logged and dropped.
*/
package tui
