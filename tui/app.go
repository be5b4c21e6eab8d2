package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/rotor/internal/app"
	"github.com/tonhe/rotor/internal/engine"
	"github.com/tonhe/rotor/tui/components"
	"github.com/tonhe/rotor/tui/keys"
	"github.com/tonhe/rotor/tui/styles"
	"github.com/tonhe/rotor/tui/views"
)

// AppState represents the current screen/view of the application.
type AppState int

const (
	StateMain AppState = iota
	StateInterval
)

// TickMsg triggers a periodic UI refresh so uptime and countdown advance.
type TickMsg struct{}

// RotatorEventMsg carries one event from the rotator subscription.
type RotatorEventMsg struct {
	Event engine.Event
}

// AppModel is the root Bubble Tea model that manages all views and state.
type AppModel struct {
	state    AppState
	theme    styles.Theme
	app      *app.App
	events   <-chan engine.Event
	main     views.RotatorView
	interval views.IntervalView
	help     views.HelpView
	width    int
	height   int
	version  string
	build    string
}

// NewAppModel creates a new AppModel driving the given app.
func NewAppModel(a *app.App, version, build string) AppModel {
	theme := styles.ThemeOrDefault(a.Config.Theme)
	m := AppModel{
		state:   StateMain,
		theme:   theme,
		app:     a,
		events:  a.Rotator.Subscribe(),
		main:    views.NewRotatorView(theme),
		help:    views.NewHelpView(theme),
		version: version,
		build:   build,
	}
	m.refresh()
	return m
}

// Init returns the initial commands: the tick loop and the event listener.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForEvent(m.events))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

func waitForEvent(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return RotatorEventMsg{Event: e}
	}
}

func (m *AppModel) refresh() {
	m.main.SetData(views.RotatorData{
		Snapshot: m.app.Rotator.Snapshot(),
		Zone:     m.app.Trigger.Zone(),
		Refresh:  m.app.Trigger.Status(),
		Log:      m.app.Log.Tail(m.main.LogLines()),
	})
}

func (m *AppModel) setTheme(theme styles.Theme) {
	m.theme = theme
	m.main.SetTheme(theme)
	m.help.SetTheme(theme)
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Body height = total - 1 (header) - 2 (status bar lines)
		m.main.SetSize(msg.Width, msg.Height-3)
		m.help.SetSize(msg.Width, msg.Height-3)
		m.interval.SetSize(msg.Width, msg.Height-3)
		m.refresh()
		return m, nil

	case TickMsg:
		m.refresh()
		return m, tickCmd()

	case RotatorEventMsg:
		m.refresh()
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		if m.state == StateInterval {
			return m.updateInterval(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m AppModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.app.Rotator

	if m.help.IsVisible() {
		if key.Matches(msg, keys.DefaultKeyMap.Help) || key.Matches(msg, keys.DefaultKeyMap.Escape) {
			m.help.Toggle()
		}
		if key.Matches(msg, keys.DefaultKeyMap.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.DefaultKeyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.DefaultKeyMap.Help):
		m.help.Toggle()
	case key.Matches(msg, keys.DefaultKeyMap.Start):
		if err := r.Start(0); err != nil {
			m.app.Log.Add(engine.LevelError, err.Error())
		}
	case key.Matches(msg, keys.DefaultKeyMap.Stop):
		r.Stop()
	case key.Matches(msg, keys.DefaultKeyMap.Rotate):
		r.Rotate()
	case key.Matches(msg, keys.DefaultKeyMap.Reset):
		r.Reset()
	case key.Matches(msg, keys.DefaultKeyMap.ClearLog):
		m.app.Log.Clear()
	case key.Matches(msg, keys.DefaultKeyMap.Theme):
		slug, theme := styles.NextTheme(m.app.Config.Theme)
		m.app.Config.Theme = slug
		m.setTheme(theme)
		m.app.Log.Add(engine.LevelInfo, "theme: "+m.theme.Name)
	case key.Matches(msg, keys.DefaultKeyMap.Interval):
		lo, hi := r.Bounds()
		m.interval = views.NewIntervalView(m.theme, r.Interval(), lo, hi)
		m.interval.SetSize(m.width, m.height-3)
		m.state = StateInterval
	}
	m.refresh()
	return m, nil
}

func (m AppModel) updateInterval(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.DefaultKeyMap.Quit) && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	var action views.IntervalAction
	m.interval, cmd, action = m.interval.Update(msg)
	switch action {
	case views.IntervalCancel:
		m.state = StateMain
	case views.IntervalSubmit:
		err := m.app.Rotator.UpdateInterval(m.interval.Minutes)
		if errors.Is(err, engine.ErrIntervalOutOfRange) {
			lo, hi := m.app.Rotator.Bounds()
			m.interval.SetError(fmt.Sprintf("interval must be between %s and %s", lo, hi))
			return m, nil
		}
		if err != nil {
			m.interval.SetError(err.Error())
			return m, nil
		}
		m.state = StateMain
		m.refresh()
	}
	return m, cmd
}

// View renders the full application UI by composing header, body, and status.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.app.Rotator.Snapshot()
	running := snap.State == engine.RotatorRunning

	header := components.RenderHeader(
		m.theme,
		m.app.Trigger.Zone().ID,
		running,
		snap.RotationCount,
		m.width,
		m.version,
		m.build,
	)

	var body string
	switch {
	case m.state == StateInterval:
		body = m.interval.View()
	case m.help.IsVisible():
		body = m.help.View()
	default:
		body = m.main.View()
	}

	statusBar := components.RenderStatusBar(m.theme, components.StatusInfo{
		Interval:    snap.Interval,
		Countdown:   engine.FormatCountdown(snap.Countdown, running),
		Uptime:      engine.FormatUptime(snap.Uptime()),
		SuccessRate: snap.SuccessRate(),
	}, m.width)

	// Fill body to the available height between header and status bar
	bodyHeight := m.height - 1 - 2 // 1 header line, 2 status bar lines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}
