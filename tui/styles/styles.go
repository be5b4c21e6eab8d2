package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Panels
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	ValueDim   lipgloss.Style
	Address    lipgloss.Style

	// Status colors
	StatusUp   lipgloss.Style
	StatusDown lipgloss.Style
	StatusWarn lipgloss.Style

	// Activity log
	LogTime    lipgloss.Style
	LogInfo    lipgloss.Style
	LogSuccess lipgloss.Style
	LogWarning lipgloss.Style
	LogError   lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style

	// Form
	FormLabel       lipgloss.Style
	FormInputActive lipgloss.Style
	FormError       lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base03).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(theme.Base04),
		Value: lipgloss.NewStyle().
			Foreground(theme.Base05),
		ValueDim: lipgloss.NewStyle().
			Foreground(theme.Base03),
		Address: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),

		StatusUp: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		StatusDown: lipgloss.NewStyle().
			Foreground(theme.Base08),
		StatusWarn: lipgloss.NewStyle().
			Foreground(theme.Base0A),

		LogTime: lipgloss.NewStyle().
			Foreground(theme.Base03),
		LogInfo: lipgloss.NewStyle().
			Foreground(theme.Base05),
		LogSuccess: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		LogWarning: lipgloss.NewStyle().
			Foreground(theme.Base0A),
		LogError: lipgloss.NewStyle().
			Foreground(theme.Base08),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),

		FormLabel: lipgloss.NewStyle().
			Foreground(theme.Base04),
		FormInputActive: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Background(theme.Base02),
		FormError: lipgloss.NewStyle().
			Foreground(theme.Base08),
	}
}
