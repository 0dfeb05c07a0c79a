package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/asteroid-dodger/internal/core"
	"github.com/vovakirdan/asteroid-dodger/internal/sim"
)

// hudRows is the number of rows above the field border.
const hudRows = 1

// largeHazard is the hazard size from which the big glyph is used.
const largeHazard = 32

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var pickupColors = map[sim.PickupKind]core.Color{
	sim.PickupShield: core.ColorBrightCyan,
	sim.PickupSlow:   core.ColorBlue,
	sim.PickupScore:  core.ColorBrightYellow,
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawSnapshot paints a full frame: HUD, field border, entities and the
// overlay for the current phase. It returns the viewport used so input can be
// mapped back onto the field.
func DrawSnapshot(scr *core.Screen, snap sim.Snapshot, pilot string) Viewport {
	scr.Clear()
	vp := FitViewport(scr.Width(), scr.Height(), hudRows, snap.FieldW, snap.FieldH)

	drawHUD(scr, snap, pilot)
	scr.DrawBox(vp.X-1, vp.Y-1, vp.W+2, vp.H+2, core.ColorGray)

	if snap.Phase != sim.PhaseMenu {
		drawEntities(scr, vp, snap)
	}

	switch {
	case snap.Phase == sim.PhaseMenu:
		drawPanel(scr, vp, core.ColorBrightYellow,
			"ASTEROID DODGER",
			"",
			fmt.Sprintf("pilot %s", pilot),
			fmt.Sprintf("best %d", snap.BestScore),
			"",
			"enter  launch",
			"tab    scores",
			"q      quit",
		)
	case snap.Phase == sim.PhaseGameOver:
		lines := []string{"GAME OVER", "", fmt.Sprintf("score %d", snap.Score)}
		if snap.NewBest {
			lines = append(lines, "NEW BEST!")
		} else {
			lines = append(lines, fmt.Sprintf("best %d", snap.BestScore))
		}
		lines = append(lines, "", "r  retry", "m  menu")
		drawPanel(scr, vp, core.ColorBrightRed, lines...)
	case snap.Paused:
		drawPanel(scr, vp, core.ColorWhite, "PAUSED", "", "p  resume", "f  finish run")
	}
	return vp
}

func drawHUD(scr *core.Screen, snap sim.Snapshot, pilot string) {
	left := fmt.Sprintf(" SCORE %d  BEST %d  ", snap.Score, snap.BestScore)
	scr.DrawTextColored(0, 0, left, core.ColorWhite)
	x := len(left)

	if snap.Phase == sim.PhasePlaying {
		hearts := strings.Repeat("♥", max(snap.Lives, 0))
		scr.DrawTextColored(x, 0, hearts, core.ColorRed)
		x += snap.Lives + 2
		scr.DrawTextColored(x, 0, fmt.Sprintf("x%.2f", snap.SpeedMult), core.ColorGray)
		x += 7
		scr.DrawTextColored(x, 0, fmt.Sprintf("LV %d", rampLevel(snap.Ramp)), core.ColorGray)
		x += 7
	}

	var effects []string
	if snap.ShieldLeft > 0 {
		effects = append(effects, "SHIELD "+seconds(snap.ShieldLeft))
	}
	if snap.SlowLeft > 0 {
		effects = append(effects, "SLOW "+seconds(snap.SlowLeft))
	}
	if snap.InvulnerableLeft > 0 {
		effects = append(effects, "SAFE "+seconds(snap.InvulnerableLeft))
	}
	right := strings.Join(effects, "  ")
	if right == "" {
		right = pilot
	}
	scr.DrawTextColored(max(scr.Width()-len([]rune(right))-1, x), 0, right, core.ColorCyan)
}

// rampLevel maps ramp progress to a 1-10 level for the HUD.
func rampLevel(ramp float64) int {
	return core.Clamp(1+int(ramp*9), 1, 10)
}

func drawEntities(scr *core.Screen, vp Viewport, snap sim.Snapshot) {
	for _, h := range snap.Hazards {
		x, y, ok := vp.ToCell(h.Pos)
		if !ok {
			continue
		}
		glyph, color := 'o', core.ColorOrange
		if h.Size >= largeHazard {
			glyph, color = 'O', core.ColorBrightRed
		}
		scr.SetColored(x, y, glyph, color)
	}

	for _, p := range snap.Pickups {
		if x, y, ok := vp.ToCell(p.Pos); ok {
			scr.SetColored(x, y, p.Kind.Glyph(), pickupColors[p.Kind])
		}
	}

	x, y, ok := vp.ToCell(snap.Player.Pos)
	if !ok {
		return
	}
	color := core.ColorWhite
	if snap.Player.Invulnerable && (snap.Ticks/8)%2 == 1 {
		color = core.ColorGray
	}
	if snap.Player.Shielded {
		scr.SetColored(x-1, y, '(', core.ColorBrightCyan)
		scr.SetColored(x+1, y, ')', core.ColorBrightCyan)
	}
	scr.SetColored(x, y, 'A', color)
}

// drawPanel draws a boxed block of centred lines in the middle of the field.
func drawPanel(scr *core.Screen, vp Viewport, title core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	w, h := width+4, len(lines)+2
	x := vp.X + (vp.W-w)/2
	y := vp.Y + (vp.H-h)/2

	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			scr.Set(xx, yy, ' ')
		}
	}
	scr.DrawBox(x, y, w, h, core.ColorGray)

	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = title
		}
		pad := (width - len([]rune(l))) / 2
		scr.DrawTextColored(x+2+pad, y+1+i, l, color)
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
