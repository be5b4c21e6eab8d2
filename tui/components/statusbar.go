package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/rotor/tui/styles"
)

// StatusInfo carries the values shown in the top line of the status bar.
type StatusInfo struct {
	Interval    time.Duration
	Countdown   string
	Uptime      string
	SuccessRate int
}

// RenderStatusBar renders the two-line footer showing rotation timing,
// success rate and key bindings.
func RenderStatusBar(theme styles.Theme, info StatusInfo, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")
	textStyle := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg)

	intervalSeg := textStyle.Render(fmt.Sprintf("interval: %s", info.Interval))
	nextSeg := textStyle.Render(fmt.Sprintf("next: %s", info.Countdown))
	uptimeSeg := textStyle.Render(fmt.Sprintf("uptime: %s", info.Uptime))

	rateColor := theme.Base0B
	if info.SuccessRate < 100 {
		rateColor = theme.Base0A
	}
	rateSeg := lipgloss.NewStyle().Foreground(rateColor).Background(bg).
		Render(fmt.Sprintf("%d%% success", info.SuccessRate))

	topContent := bgStyle.Render(" ") + intervalSeg + sep + nextSeg + sep + uptimeSeg + sep + rateSeg
	if w := lipgloss.Width(topContent); w < width {
		topContent += bgStyle.Render(strings.Repeat(" ", width-w))
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ") +
		keyStyle.Render("s") + descStyle.Render(":start") + spacer +
		keyStyle.Render("x") + descStyle.Render(":stop") + spacer +
		keyStyle.Render("r") + descStyle.Render(":rotate") + spacer +
		keyStyle.Render("z") + descStyle.Render(":reset") + spacer +
		keyStyle.Render("i") + descStyle.Render(":interval") + spacer +
		keyStyle.Render("?") + descStyle.Render(":help") + spacer +
		keyStyle.Render("q") + descStyle.Render(":quit")

	if w := lipgloss.Width(keys); w < width {
		keys += bgStyle.Render(strings.Repeat(" ", width-w))
	}

	return lipgloss.JoinVertical(lipgloss.Left, topContent, keys)
}
