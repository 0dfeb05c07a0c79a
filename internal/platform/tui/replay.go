package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/replay"
)

const maxReplaySpeed = 16

// ReplayKeyMap defines the key bindings for replay playback.
type ReplayKeyMap struct {
	Pause   key.Binding
	Forward key.Binding
	Back    key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Rewind  key.Binding
	Quit    key.Binding
}

// ShortHelp returns the bindings listed under the field.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Back, k.Forward, k.Faster, k.Slower, k.Rewind, k.Quit}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "space", "p"),
			key.WithHelp("space", "pause"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right", "step"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left", "back"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Rewind: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "rewind"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayModel plays recorded frames back through the live renderer. Each
// tick of the recorded period shows the next frame, or several at higher
// speeds. Stepping by hand pauses playback.
type ReplayModel struct {
	header   replay.Header
	frames   []replay.Frame
	screen   *core.Screen
	keys     ReplayKeyMap
	pos      int
	speed    int
	paused   bool
	gen      uint64
	quitting bool
}

// NewReplayModel creates a player positioned on the first frame.
func NewReplayModel(h replay.Header, frames []replay.Frame, width, height int) ReplayModel {
	return ReplayModel{
		header: h,
		frames: frames,
		screen: core.NewScreen(width, max(height-1, 1)),
		keys:   DefaultReplayKeyMap(),
		speed:  1,
		gen:    uint64(time.Now().UnixNano()),
	}
}

func (m ReplayModel) interval() time.Duration {
	if m.header.TickMS <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(m.header.TickMS) * time.Millisecond
}

// Init starts playback.
func (m ReplayModel) Init() tea.Cmd {
	return tickCmd(m.interval(), m.gen)
}

// Update handles messages and updates the model state.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if !m.paused {
			m.seek(m.pos + m.speed)
		}
		return m, tickCmd(m.interval(), m.gen)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Forward):
			m.paused = true
			m.seek(m.pos + 1)
		case key.Matches(msg, m.keys.Back):
			m.paused = true
			m.seek(m.pos - 1)
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxReplaySpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 1)
		case key.Matches(msg, m.keys.Rewind):
			m.seek(0)
		}
	}
	return m, nil
}

func (m *ReplayModel) seek(pos int) {
	m.pos = core.Clamp(pos, 0, max(len(m.frames)-1, 0))
}

// View renders the current frame with the playback status and key help on
// the last line.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.frames) == 0 {
		return "\n  Replay has no frames.\n\n  " + plainHelp(m.keys.ShortHelp())
	}

	f := m.frames[m.pos]
	DrawSnapshot(m.screen, f.Snapshot(m.header), m.header.Pilot)

	status := fmt.Sprintf(" REPLAY %d/%d x%d", m.pos+1, len(m.frames), m.speed)
	if m.paused {
		status += " ||"
	}
	return RenderScreen(m.screen) + "\n" +
		colorStyles[core.ColorBrightCyan].Render(status) + "   " +
		colorStyles[core.ColorGray].Render(plainHelp(m.keys.ShortHelp()))
}

// plainHelp renders bindings as unstyled text so it can go into a Screen.
func plainHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// RunReplay plays a replay in its own program.
func RunReplay(h replay.Header, frames []replay.Frame, width, height int) error {
	p := tea.NewProgram(NewReplayModel(h, frames, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
