package core

// Action represents a semantic input action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - nudge ship up
	ActionDown           // S, Down arrow - nudge ship down
	ActionLeft           // A, Left arrow - nudge ship left
	ActionRight          // D, Right arrow - nudge ship right
	ActionConfirm        // Enter, Space - start a run from the menu
	ActionRestart        // R - retry after game over
	ActionMenu           // M, Esc - back to menu
	ActionFinish         // F - end the current run
	ActionPause          // P - pause/unpause
	ActionScores         // Tab - open leaderboard
	ActionMute           // V - toggle sound
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionFinish:
		return "Finish"
	case ActionPause:
		return "Pause"
	case ActionScores:
		return "Scores"
	case ActionMute:
		return "Mute"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Nudge returns the unit direction for movement actions, or a zero vector.
func (a Action) Nudge() Vec {
	switch a {
	case ActionUp:
		return Vec{Y: -1}
	case ActionDown:
		return Vec{Y: 1}
	case ActionLeft:
		return Vec{X: -1}
	case ActionRight:
		return Vec{X: 1}
	default:
		return Vec{}
	}
}
