package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/eventboard/internal/dashboard/domain"
)

const progressBarWidth = 20

// Style definitions.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusNotStarted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusInProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	statusCompleted  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	statusBlocked    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	barFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	barEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)

// ProgressBar renders pct (0..100) as a fixed-width bar followed by the figure.
func ProgressBar(pct int) string {
	pct = max(0, min(pct, domain.MaxProgress))
	filled := pct * progressBarWidth / domain.MaxProgress
	return barFilled.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", progressBarWidth-filled)) +
		fmt.Sprintf(" %3d%%", pct)
}

// StatusLabel renders a status in its colour.
func StatusLabel(s domain.Status) string {
	switch s {
	case domain.StatusCompleted:
		return statusCompleted.Render(s.String())
	case domain.StatusInProgress:
		return statusInProgress.Render(s.String())
	case domain.StatusBlocked:
		return statusBlocked.Render(s.String())
	default:
		return statusNotStarted.Render(s.String())
	}
}

// PriorityLabel renders a priority in its colour.
func PriorityLabel(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return priorityHigh.Render(string(p))
	case domain.PriorityMedium:
		return priorityMedium.Render(string(p))
	default:
		return priorityLow.Render(string(p))
	}
}

// FormatDate renders a calendar date the way the dashboard stores it.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(domain.DateLayout)
}
