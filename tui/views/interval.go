package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/rotor/tui/keys"
	"github.com/tonhe/rotor/tui/styles"
)

// IntervalAction describes what the app should do after an editor update.
type IntervalAction int

const (
	// IntervalNone means keep the editor open.
	IntervalNone IntervalAction = iota
	// IntervalCancel means the user closed the editor without applying.
	IntervalCancel
	// IntervalSubmit means Minutes holds a parsed value to apply.
	IntervalSubmit
)

// IntervalView is a small modal for entering a new rotation interval in
// minutes.
type IntervalView struct {
	theme styles.Theme
	sty   *styles.Styles

	input       textinput.Model
	minInterval time.Duration
	maxInterval time.Duration
	err         string

	// Minutes is the last successfully parsed value.
	Minutes float64

	width  int
	height int
}

// NewIntervalView creates an editor prefilled with the current interval.
func NewIntervalView(theme styles.Theme, current, minInterval, maxInterval time.Duration) IntervalView {
	input := textinput.New()
	input.Placeholder = "5"
	input.CharLimit = 8
	input.Width = 12
	input.SetValue(strconv.FormatFloat(current.Minutes(), 'f', -1, 64))
	input.Focus()

	return IntervalView{
		theme:       theme,
		sty:         styles.NewStyles(theme),
		input:       input,
		minInterval: minInterval,
		maxInterval: maxInterval,
	}
}

// SetSize updates the available dimensions for the overlay.
func (v *IntervalView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetError shows msg under the input, keeping the editor open.
func (v *IntervalView) SetError(msg string) {
	v.err = msg
}

// Update handles key input for the editor.
func (v IntervalView) Update(msg tea.Msg) (IntervalView, tea.Cmd, IntervalAction) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Escape):
			return v, nil, IntervalCancel
		case key.Matches(msg, keys.DefaultKeyMap.Enter):
			raw := strings.TrimSpace(v.input.Value())
			minutes, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				v.err = fmt.Sprintf("%q is not a number of minutes", raw)
				return v, nil, IntervalNone
			}
			v.err = ""
			v.Minutes = minutes
			return v, nil, IntervalSubmit
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd, IntervalNone
}

// View renders the editor as a centered modal.
func (v IntervalView) View() string {
	var lines []string
	lines = append(lines, v.sty.ModalTitle.Render("Rotation Interval"))
	lines = append(lines, "")
	lines = append(lines, v.sty.FormLabel.Render("Minutes: ")+v.sty.FormInputActive.Render(v.input.View()))
	lines = append(lines, v.sty.ValueDim.Render(fmt.Sprintf("allowed %s to %s", v.minInterval, v.maxInterval)))
	if v.err != "" {
		lines = append(lines, "")
		lines = append(lines, v.sty.FormError.Render(v.err))
	}
	lines = append(lines, "")
	lines = append(lines, v.sty.ValueDim.Render("[enter] apply  [esc] cancel"))

	modal := v.sty.ModalBorder.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}
