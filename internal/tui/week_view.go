package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cycledash/internal/cycle"
	"cycledash/internal/cycleapi"
)

func weekStatusColor(s cycle.WeekStatus) lipgloss.Color {
	switch s {
	case cycle.WeekExecuted:
		return lipgloss.Color("#5CCB76")
	case cycle.WeekActive:
		return lipgloss.Color("#87CEEB")
	case cycle.WeekFailed:
		return lipgloss.Color("#F15B5B")
	case cycle.WeekPending:
		return lipgloss.Color("#E6C06C")
	}
	return lipgloss.Color("#4B5563")
}

func (m model) renderWeekCard(c cycle.Cycle, w cycle.Week, selected bool) string {
	borderColor := weekStatusColor(w.Status)
	if selected {
		borderColor = lipgloss.Color("#FFFFFF")
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(18)

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	strong := lipgloss.NewStyle().Foreground(lipgloss.Color("#F3F4F6"))

	header := dim.Render(fmt.Sprintf("Week %d", w.WeekNumber))
	if w.Status == cycle.WeekExecuted {
		header += lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB76")).Render(" ✓")
	}

	lines := []string{
		header,
		strong.Render("₹" + formatAmount(w.Amount)),
		dim.Render(w.Date),
	}

	switch w.Status {
	case cycle.WeekExecuted:
		if w.Qty > 0 {
			lines = append(lines, dim.Render(fmt.Sprintf("%.2f × %d", w.LTP, w.Qty)))
		}
	case cycle.WeekFailed:
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F15B5B")).Bold(true).Render("Failed"))
	case cycle.WeekInactive:
		lines = append(lines, dim.Render("Inactive"))
	default:
		hints := make([]string, 0, 2)
		if c.CanEdit(w) {
			hints = append(hints, "e edit")
		}
		if c.CanExecute(w) {
			hints = append(hints, "x exec")
		}
		if len(hints) > 0 {
			lines = append(lines, dim.Render(strings.Join(hints, "  ")))
		}
	}

	return card.Render(strings.Join(lines, "\n"))
}

func (m model) openWeekEditor() (tea.Model, tea.Cmd) {
	c, w, ok := m.selectedWeek()
	if !ok || !c.CanEdit(w) {
		return m, nil
	}
	m.editing = true
	m.editErr = ""
	m.editFocus = 0
	m.editAmount.SetValue(formatPlainAmount(w.Amount))
	m.editDate.SetValue(w.Date)
	m.editAmount.Focus()
	m.editDate.Blur()
	return m, nil
}

func (m model) updateWeekEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		// Discard the draft; the mirrored week is untouched.
		m.editing = false
		m.editErr = ""
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.editFocus = 1 - m.editFocus
		if m.editFocus == 0 {
			m.editAmount.Focus()
			m.editDate.Blur()
		} else {
			m.editDate.Focus()
			m.editAmount.Blur()
		}
		return m, nil

	case "enter":
		return m.submitWeekEdit()
	}

	var cmd tea.Cmd
	if m.editFocus == 0 {
		m.editAmount, cmd = m.editAmount.Update(msg)
	} else {
		m.editDate, cmd = m.editDate.Update(msg)
	}
	return m, cmd
}

func (m model) submitWeekEdit() (tea.Model, tea.Cmd) {
	_, w, ok := m.selectedWeek()
	if !ok {
		m.editing = false
		return m, nil
	}

	amount, err := parseAmount(m.editAmount.Value())
	if err != nil || amount <= 0 {
		m.editErr = "amount must be a positive number"
		return m, nil
	}
	serverDate, err := cycle.ToServerDate(strings.TrimSpace(m.editDate.Value()))
	if err != nil {
		m.editErr = "date must be DD/MM/YYYY"
		return m, nil
	}

	m.editing = false
	m.editErr = ""
	return m, m.updateScheduleCmd(cycleapi.UpdateRequest{
		ScheduleID:    w.ScheduleID,
		Amount:        amount,
		ExecutionDate: serverDate,
	})
}

func (m model) renderWeekEditor() string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#87CEEB")).
		Padding(0, 2).
		Width(40)

	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#F3F4F6")).Bold(true).Render("Edit week"),
		"",
		m.editAmount.View(),
		m.editDate.View(),
	}
	if m.editErr != "" {
		lines = append(lines, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F15B5B")).Render(m.editErr))
	}
	return card.Render(strings.Join(lines, "\n"))
}
