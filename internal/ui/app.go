package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/fleetops/internal/backend"
	"github.com/gravitrone/fleetops/internal/config"
	"github.com/gravitrone/fleetops/internal/fleet"
	"github.com/gravitrone/fleetops/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabActivities  = 0
	tabVehicles    = 1
	tabDrivers     = 2
	tabRoutes      = 3
	tabFuel        = 4
	tabMaintenance = 5
	tabTimeCards   = 6
	tabCalendar    = 7
)

var tabNames = []string{"Activities", "Vehicles", "Drivers", "Routes", "Fuel", "Maintenance", "Time Cards", "Calendar"}

// --- App Model ---

// App is the root TUI model that routes between record tabs.
type App struct {
	config      *config.Config
	backendName string
	tabs        []tabModel
	tab         int
	width       int
	height      int
	quitConfirm bool
}

// NewApp builds one tab per record kind on the given backend.
func NewApp(b *backend.Backend, cfg *config.Config) (App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := ManageOptions{
		Placeholder: cfg.SearchPlaceholder,
		Unknown:     cfg.UnknownText,
		VimKeys:     cfg.VimKeys,
	}

	tabs := make([]tabModel, 0, len(tabNames))
	for _, build := range []func() (tabModel, error){
		func() (tabModel, error) { return newTab(b, fleet.Activities(), opts) },
		func() (tabModel, error) { return newTab(b, fleet.Vehicles(), opts) },
		func() (tabModel, error) { return newTab(b, fleet.Drivers(), opts) },
		func() (tabModel, error) { return newTab(b, fleet.Routes(), opts) },
		func() (tabModel, error) { return newTab(b, fleet.Fuel(), opts) },
		func() (tabModel, error) { return newTab(b, fleet.Maintenance(), opts) },
		func() (tabModel, error) { return newTab(b, fleet.TimeCards(), opts) },
		func() (tabModel, error) { return newTab(b, fleet.Calendar(), opts) },
	} {
		t, err := build()
		if err != nil {
			return App{}, err
		}
		tabs = append(tabs, t)
	}

	return App{
		config:      cfg,
		backendName: b.Describe(),
		tabs:        tabs,
		tab:         tabActivities,
	}, nil
}

func newTab[T any](b *backend.Backend, kind fleet.Kind[T], opts ManageOptions) (tabModel, error) {
	repo, err := backend.Repository(b, kind)
	if err != nil {
		return nil, err
	}
	return NewManageModel(kind, repo, opts)
}

func (a App) Init() tea.Cmd {
	return a.tabs[a.tab].Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, t := range a.tabs {
			t.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case refreshMsg:
		if t := a.tabByName(msg.tab); t != nil {
			return a, t.Update(msg)
		}
		return a, nil
	case clearToastMsg:
		if t := a.tabByName(msg.tab); t != nil {
			return a, t.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		active := a.tabs[a.tab]
		if active.Capturing() {
			if isKey(msg, "ctrl+c") {
				a.quitConfirm = true
				return a, nil
			}
			return a, active.Update(msg)
		}
		switch {
		case isQuit(msg):
			return a, tea.Quit
		case isKey(msg, "tab", "right"):
			return a.switchTab((a.tab + 1) % len(a.tabs))
		case isKey(msg, "shift+tab", "left"):
			return a.switchTab((a.tab + len(a.tabs) - 1) % len(a.tabs))
		}
		if idx, ok := tabIndexForKey(msg.String()); ok {
			return a.switchTab(idx)
		}
		return a, active.Update(msg)
	}

	return a, a.tabs[a.tab].Update(msg)
}

func (a App) switchTab(newTab int) (App, tea.Cmd) {
	oldTab := a.tab
	a.tab = newTab
	if oldTab != newTab {
		return a, a.tabs[newTab].Init()
	}
	return a, nil
}

func (a App) tabByName(name string) tabModel {
	for _, t := range a.tabs {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

func (a App) View() string {
	banner := RenderCompactBanner()
	if a.height == 0 || a.height >= 40 {
		banner = RenderBanner()
	}
	banner = centerBlockUniform(banner, a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)

	content := a.tabs[a.tab].View()
	if a.quitConfirm {
		content = components.ConfirmDialog("Quit", "Discard the open form and quit?")
	}
	content = centerBlockUniform(content, a.width)

	hints := a.tabs[a.tab].Hints()
	if a.quitConfirm {
		hints = components.Hints("y", "Confirm", "n", "Cancel")
	} else if !a.tabs[a.tab].Capturing() {
		hints = append(hints, components.Hints("1-8", "Tabs", "q", "Quit")...)
	}
	bar := components.StatusBar(hints, a.width)

	source := centerBlockUniform(components.InfoRow("backend", a.backendName), a.width)
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", banner, tabs, content, bar, source)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(a.tabs))
	for i, t := range a.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Title())
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
