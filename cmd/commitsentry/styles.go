package main

import (
	"fmt"
	"strings"

	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Width(16)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))
)

func field(label string, value any) string {
	return labelStyle.Render(label) + fmt.Sprint(value)
}

func styleCycleStatus(s models.CycleStatus) string {
	switch s {
	case models.CycleStatusIdle:
		return okStyle.Render(string(s))
	case models.CycleStatusFailed:
		return failStyle.Render(string(s))
	case models.CycleStatusCancelled, models.CycleStatusSkipped:
		return warnStyle.Render(string(s))
	default:
		return dimStyle.Render(string(s))
	}
}

func folderList(cfg models.MonitorConfiguration) string {
	if cfg.NotifyForAllFolders {
		return "(all folders)"
	}
	if len(cfg.MonitoredFolders) == 0 {
		return dimStyle.Render("(none)")
	}
	return strings.Join(cfg.MonitoredFolders, ", ")
}

func renderConfiguration(cfg models.MonitorConfiguration) string {
	sound := cfg.SelectedSound
	if !cfg.SoundEnabled {
		sound += dimStyle.Render(" (muted)")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		field("Enabled", cfg.Enabled),
		field("Interval", fmt.Sprintf("%d min", cfg.CheckIntervalMinutes)),
		field("Folders", folderList(cfg)),
		field("Sound", sound),
	)
}

func renderReport(r models.CycleReport) string {
	s := fmt.Sprintf("fetched %d, new %d, notified %d", r.Fetched, r.Candidates, r.Notified)
	if r.Deferred > 0 {
		s += warnStyle.Render(fmt.Sprintf(", deferred %d", r.Deferred))
	}
	return s
}
