package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cycledash/internal/cycle"
)

func statusColor(s cycle.Status) lipgloss.Color {
	switch s {
	case cycle.StatusActive:
		return lipgloss.Color("#5CCB76")
	case cycle.StatusPaused:
		return lipgloss.Color("#E6C06C")
	case cycle.StatusCompleted:
		return lipgloss.Color("#7C6CE6")
	}
	return lipgloss.Color("#9CA3AF")
}

func (m model) renderCycleCard(c cycle.Cycle, selected bool, width int) string {
	borderColor := statusColor(c.Status)
	if selected {
		borderColor = lipgloss.Color("#87CEEB")
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width)

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F3F4F6")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	badgeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#111111")).
		Background(statusColor(c.Status)).
		Padding(0, 1)

	title := nameStyle.Render(c.Name)
	if c.FullName != "" {
		title += dimStyle.Render("  " + c.FullName)
	}
	badge := badgeStyle.Render(string(c.Status))
	if c.TotalCount > 1 {
		badge += dimStyle.Render(fmt.Sprintf(" ×%d", c.TotalCount))
	}
	gap := width - lipgloss.Width(title) - lipgloss.Width(badge) - 2
	header := title + strings.Repeat(" ", max(1, gap)) + badge

	profitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB76"))
	if c.Profit < 0 {
		profitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F15B5B"))
	}
	stats := dimStyle.Render("Total ") + nameStyle.Render("₹"+formatAmount(c.TotalAmount)) +
		dimStyle.Render("   Profit ") + profitStyle.Render("₹"+formatAmount(c.Profit)) +
		dimStyle.Render("   Started ") + nameStyle.Render(c.StartDate)

	executed := c.ExecutedCount()
	progress := m.renderProgressBar(c.Progress(), min(width-20, 40))
	progressLine := dimStyle.Render(fmt.Sprintf("Executed %d/%d  ", executed, cycle.WeeksPerCycle)) + progress

	weekCards := make([]string, 0, len(c.Weeks))
	for i, w := range c.Weeks {
		weekSelected := selected && i == m.weekCursor
		weekCards = append(weekCards, m.renderWeekCard(c, w, weekSelected))
	}
	weeks := lipgloss.JoinHorizontal(lipgloss.Top, weekCards...)

	lines := []string{header, stats, progressLine, weeks}

	if c.Status != cycle.StatusCompleted {
		action := "p pause"
		if c.Status == cycle.StatusPaused {
			action = "p resume"
		}
		if m.toggleBusy {
			action = "…"
		}
		lines = append(lines, dimStyle.Render(action))
	}

	return card.Render(strings.Join(lines, "\n"))
}

func (m model) renderProgressBar(percent float64, width int) string {
	width = max(10, width)
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB76")).
		Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).
			Render(strings.Repeat("░", width-filled))
	return bar + lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).
		Render(fmt.Sprintf(" %.0f%%", percent))
}
