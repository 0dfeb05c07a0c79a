package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action. Unbound keys map to
// ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "w", "up", "k":
		return core.ActionUp
	case "s", "down", "j":
		return core.ActionDown
	case "a", "left", "h":
		return core.ActionLeft
	case "d", "right", "l":
		return core.ActionRight
	case "enter", " ", "space":
		return core.ActionConfirm
	case "r":
		return core.ActionRestart
	case "m", "esc":
		return core.ActionMenu
	case "f":
		return core.ActionFinish
	case "p":
		return core.ActionPause
	case "tab":
		return core.ActionScores
	case "v":
		return core.ActionMute
	}
	return core.ActionNone
}
