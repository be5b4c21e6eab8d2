package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/rotor/tui/styles"
)

// RenderHeader renders the top header bar with app name, zone, live/stopped
// status, rotation count and version.
func RenderHeader(theme styles.Theme, zone string, isLive bool, rotations, width int, ver, build string) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(theme.Base01).
		Bold(true).
		Render("rotor")

	displayZone := zone
	if displayZone == "" {
		displayZone = "(no zone)"
	}
	center := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(theme.Base01).
		Render("zone " + displayZone)

	status := "STOPPED"
	statusColor := theme.Base08
	if isLive {
		status = "LIVE"
		statusColor = theme.Base0B
	}
	right := lipgloss.NewStyle().
		Foreground(statusColor).
		Background(theme.Base01).
		Bold(true).
		Render(status)

	count := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render(fmt.Sprintf("%d rotations", rotations))

	versionStr := "v" + ver
	if build != "" {
		versionStr += "  " + build
	}
	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render(versionStr)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s  |  %s ", left, center, right, count, versionSeg)

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		Render(content)
}
