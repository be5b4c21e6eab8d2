package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a Base16 color scheme.
type Theme struct {
	Name   string
	Base00 lipgloss.Color // Background
	Base01 lipgloss.Color // Lighter background
	Base02 lipgloss.Color // Selection
	Base03 lipgloss.Color // Comments / dim
	Base04 lipgloss.Color // Light foreground
	Base05 lipgloss.Color // Foreground
	Base06 lipgloss.Color // Light foreground
	Base07 lipgloss.Color // Light background
	Base08 lipgloss.Color // Red
	Base09 lipgloss.Color // Orange
	Base0A lipgloss.Color // Yellow
	Base0B lipgloss.Color // Green
	Base0C lipgloss.Color // Cyan
	Base0D lipgloss.Color // Blue
	Base0E lipgloss.Color // Magenta
	Base0F lipgloss.Color // Brown
}

// DefaultSlug names the theme used when the configured one is unknown.
const DefaultSlug = "solarized-dark"

var (
	DefaultTheme Theme
	sortedSlugs  []string
)

func init() {
	sortedSlugs = make([]string, 0, len(Themes))
	for slug := range Themes {
		sortedSlugs = append(sortedSlugs, slug)
	}
	sort.Strings(sortedSlugs)
	DefaultTheme = Themes[DefaultSlug]
}

// GetThemeByName returns a theme by its slug, or nil if not found.
func GetThemeByName(name string) *Theme {
	t, ok := Themes[name]
	if !ok {
		return nil
	}
	return &t
}

// ThemeOrDefault returns the named theme, or DefaultTheme when the name is
// unknown or empty.
func ThemeOrDefault(name string) Theme {
	if t := GetThemeByName(name); t != nil {
		return *t
	}
	return DefaultTheme
}

// ListThemes returns sorted theme slugs.
func ListThemes() []string {
	return sortedSlugs
}

// GetThemeIndex returns the sorted index of a theme slug, or -1.
func GetThemeIndex(slug string) int {
	for i, s := range sortedSlugs {
		if s == slug {
			return i
		}
	}
	return -1
}

// NextTheme returns the theme after slug in sorted order, wrapping at the
// end. An unknown slug is displayed as DefaultTheme, so cycling continues
// from the default rather than from the first theme.
func NextTheme(slug string) (string, Theme) {
	idx := GetThemeIndex(slug)
	if idx < 0 {
		idx = GetThemeIndex(DefaultSlug)
	}
	next := sortedSlugs[(idx+1)%len(sortedSlugs)]
	return next, Themes[next]
}
