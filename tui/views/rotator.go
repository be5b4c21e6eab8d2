package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/rotor/internal/engine"
	"github.com/tonhe/rotor/internal/refresh"
	"github.com/tonhe/rotor/tui/styles"
)

const (
	labelWidth = 14
	minPanel   = 36
)

// RotatorData is everything the main view renders, gathered once per tick.
type RotatorData struct {
	Snapshot engine.Snapshot
	Zone     refresh.Zone
	Refresh  refresh.Status
	Log      []engine.LogEntry
}

// RotatorView is the main screen: the current identity, rotation metrics
// and the tail of the activity log.
type RotatorView struct {
	theme  styles.Theme
	sty    *styles.Styles
	data   RotatorData
	width  int
	height int
}

// NewRotatorView creates a new RotatorView with the given theme.
func NewRotatorView(theme styles.Theme) RotatorView {
	return RotatorView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme swaps the palette used for rendering.
func (v *RotatorView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// SetSize updates the available body dimensions.
func (v *RotatorView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetData replaces the rendered state.
func (v *RotatorView) SetData(d RotatorData) {
	v.data = d
}

// LogLines is how many activity log lines fit below the panels.
func (v RotatorView) LogLines() int {
	// panels take 9 rows (7 content + 2 border), the log panel adds 3
	n := v.height - 9 - 3
	if n < 1 {
		return 1
	}
	return n
}

// View renders the identity and metrics panels side by side with the
// activity log underneath.
func (v RotatorView) View() string {
	panelWidth := v.width/2 - 2
	if panelWidth < minPanel {
		panelWidth = minPanel
	}

	identityPanel := v.panel("Current Identity", v.identityLines(panelWidth), panelWidth)
	metricsPanel := v.panel("Rotation", v.metricsLines(), panelWidth)

	var top string
	if v.width >= 2*(panelWidth+2) {
		top = lipgloss.JoinHorizontal(lipgloss.Top, identityPanel, metricsPanel)
	} else {
		top = lipgloss.JoinVertical(lipgloss.Left, identityPanel, metricsPanel)
	}

	logWidth := v.width - 4
	if logWidth < minPanel {
		logWidth = minPanel
	}
	activity := v.panel("Activity", v.logLines(logWidth), logWidth)

	return lipgloss.JoinVertical(lipgloss.Left, top, activity)
}

func (v RotatorView) panel(title string, lines []string, width int) string {
	content := v.sty.PanelTitle.Render(title) + "\n" + strings.Join(lines, "\n")
	return v.sty.Panel.Width(width).Render(content)
}

func (v RotatorView) row(label, value string) string {
	return v.sty.Label.Render(padRight(label, labelWidth)) + value
}

func (v RotatorView) identityLines(width int) []string {
	id := v.data.Snapshot.Current
	valueWidth := width - labelWidth - 2

	screen := id.Screen
	if screen == "" {
		screen = "-"
	}
	created := "-"
	if !id.CreatedAt.IsZero() {
		created = id.CreatedAt.Format("15:04:05")
	}

	return []string{
		v.row("Address", v.sty.Address.Render(id.Address)),
		v.row("Device", v.sty.Value.Render(id.DeviceClass.Title())),
		v.row("Agent", v.sty.ValueDim.Render(truncate(id.AgentString, valueWidth))),
		v.row("Country", v.sty.Value.Render(id.Region)),
		v.row("Screen", v.sty.Value.Render(screen)),
		v.row("Created", v.sty.Value.Render(created)),
	}
}

func (v RotatorView) metricsLines() []string {
	snap := v.data.Snapshot
	running := snap.State == engine.RotatorRunning

	state := v.sty.StatusDown.Render(strings.ToUpper(snap.State.String()))
	if running {
		state = v.sty.StatusUp.Render(strings.ToUpper(snap.State.String()))
	}

	rate := snap.SuccessRate()
	rateStyle := v.sty.StatusUp
	if rate < 100 {
		rateStyle = v.sty.StatusWarn
	}

	refreshLine := v.sty.ValueDim.Render("idle")
	if v.data.Refresh.Active() {
		refreshLine = v.sty.StatusUp.Render(fmt.Sprintf("%d sent, last %s",
			v.data.Refresh.Count, v.data.Refresh.LastRefresh.Format("15:04:05")))
	}
	sdk := v.data.Zone.SDK
	if sdk == "" {
		sdk = "-"
	}

	return []string{
		v.row("State", state),
		v.row("Rotations", v.sty.Value.Render(fmt.Sprintf("%d", snap.RotationCount))),
		v.row("Success", rateStyle.Render(fmt.Sprintf("%d%%", rate))),
		v.row("Uptime", v.sty.Value.Render(engine.FormatUptime(snap.Uptime()))),
		v.row("Next", v.sty.Value.Render(engine.FormatCountdown(snap.Countdown, running))),
		v.row("Refresh", refreshLine+v.sty.ValueDim.Render("  sdk "+sdk)),
	}
}

func (v RotatorView) logLines(width int) []string {
	entries := v.data.Log
	if n := v.LogLines(); len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	if len(entries) == 0 {
		return []string{v.sty.ValueDim.Render("no activity yet")}
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		ts := v.sty.LogTime.Render(e.Time.Format("15:04:05"))
		lines = append(lines, ts+"  "+v.levelStyle(e.Level).Render(truncate(e.Message, width-12)))
	}
	return lines
}

func (v RotatorView) levelStyle(level engine.LogLevel) lipgloss.Style {
	switch level {
	case engine.LevelSuccess:
		return v.sty.LogSuccess
	case engine.LevelWarning:
		return v.sty.LogWarning
	case engine.LevelError:
		return v.sty.LogError
	default:
		return v.sty.LogInfo
	}
}
