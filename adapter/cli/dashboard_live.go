package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/application"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/application/subscribers"
	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

const (
	liveRefreshInterval = 2 * time.Second
	liveActivityLimit   = 5
)

type liveSource interface {
	DerivedState() application.DashboardState
}

type activitySource interface {
	Recent(limit int) []subscribers.Activity
}

type liveDashboardModel struct {
	source   liveSource
	activity activitySource
	phase    domain.Phase

	state   application.DashboardState
	recent  []subscribers.Activity
	updated time.Time
}

type refreshMsg time.Time

func newLiveDashboardModel(source liveSource, activity activitySource, phase domain.Phase) liveDashboardModel {
	m := liveDashboardModel{source: source, activity: activity, phase: phase}
	return m.refresh(time.Now())
}

func (m liveDashboardModel) refresh(now time.Time) liveDashboardModel {
	m.state = m.source.DerivedState()
	if m.activity != nil {
		m.recent = m.activity.Recent(liveActivityLimit)
	}
	m.updated = now
	return m
}

func tick() tea.Cmd {
	return tea.Tick(liveRefreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m liveDashboardModel) Init() tea.Cmd {
	return tick()
}

func (m liveDashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.phase = nextPhase(m.phase)
			return m, nil
		case "r":
			return m.refresh(time.Now()), nil
		}
	case refreshMsg:
		return m.refresh(time.Time(msg)), tick()
	}
	return m, nil
}

func (m liveDashboardModel) View() string {
	var b strings.Builder
	b.WriteString(RenderDashboard(m.state, m.phase))

	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render("Recent activity"))
	b.WriteString("\n")
	if len(m.recent) == 0 {
		b.WriteString(MutedStyle.Render("  Nothing yet."))
		b.WriteString("\n")
	}
	for _, a := range m.recent {
		fmt.Fprintf(&b, "  %s  %-14s %s\n", a.OccurredAt.Local().Format("15:04:05"), a.Actor, a.Summary)
	}

	filter := "all phases"
	if m.phase != "" {
		filter = m.phase.String()
	}
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("showing %s, updated %s | tab: phase | r: refresh | q: quit",
		filter, m.updated.Format("15:04:05"))))
	return b.String()
}

// nextPhase cycles all -> pre -> during -> post -> all.
func nextPhase(current domain.Phase) domain.Phase {
	phases := domain.Phases()
	if current == "" {
		return phases[0]
	}
	for i, p := range phases {
		if p == current && i+1 < len(phases) {
			return phases[i+1]
		}
	}
	return ""
}

func runLiveDashboard(ctx context.Context, app *App, phase domain.Phase) error {
	model := newLiveDashboardModel(app.Container.Coordinator, app.Container.ActivityFeed, phase)
	_, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
