package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cycledash/internal/cycle"
)

func (m model) openForm() (tea.Model, tea.Cmd) {
	m.formOpen = true
	m.formErr = ""
	m.formFocus = 0
	m.formName.SetValue("")
	m.formAmount.SetValue("")
	m.formDate.SetValue(time.Now().Format(cycle.DisplayDateLayout))
	m.formName.Focus()
	m.formAmount.Blur()
	m.formDate.Blur()
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.formOpen = false
		m.formErr = ""
		return m, nil

	case "tab", "down":
		return m.moveFormFocus(1), nil

	case "shift+tab", "up":
		return m.moveFormFocus(-1), nil

	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		m.formName, cmd = m.formName.Update(msg)
	case 1:
		m.formAmount, cmd = m.formAmount.Update(msg)
	case 2:
		m.formDate, cmd = m.formDate.Update(msg)
	}
	return m, cmd
}

func (m model) moveFormFocus(delta int) model {
	m.formFocus = (m.formFocus + delta + 3) % 3
	m.formName.Blur()
	m.formAmount.Blur()
	m.formDate.Blur()
	switch m.formFocus {
	case 0:
		m.formName.Focus()
	case 1:
		m.formAmount.Focus()
	case 2:
		m.formDate.Focus()
	}
	return m
}

// submitForm validates the draft, projects the new cycle locally, and
// fires the create request without waiting on it.
func (m model) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.formName.Value())
	if name == "" {
		m.formErr = "name is required"
		return m, nil
	}
	amount, err := parseAmount(m.formAmount.Value())
	if err != nil || amount <= 0 {
		m.formErr = "amount must be a positive number"
		return m, nil
	}
	display := strings.TrimSpace(m.formDate.Value())
	start, err := cycle.ParseDisplayDate(display)
	if err != nil {
		m.formErr = "start date must be DD/MM/YYYY"
		return m, nil
	}
	serverDate, err := cycle.ToServerDate(display)
	if err != nil {
		m.formErr = "start date must be DD/MM/YYYY"
		return m, nil
	}

	m.cycles = append(m.cycles, cycle.New(name, amount, start))
	m.formOpen = false
	m.formErr = ""
	m.clampCursors()
	return m, m.scheduleCycleCmd(name, amount, serverDate)
}

func (m model) renderForm(width int) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C6CE6")).
		Padding(0, 2).
		Width(min(width, 52))

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#F3F4F6")).Bold(true).Render("New cycle"),
		"",
		m.formName.View(),
		m.formAmount.View(),
		m.formDate.View(),
	}

	if amount, err := parseAmount(m.formAmount.Value()); err == nil && amount > 0 {
		split := cycle.WeeklySplit(amount)
		lines = append(lines, "",
			dim.Render(fmt.Sprintf("weekly: ₹%s × %d", formatAmount(split[0]), cycle.WeeksPerCycle)))
	}

	if m.formErr != "" {
		lines = append(lines, "", lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F15B5B")).Render(m.formErr))
	}
	return card.Render(strings.Join(lines, "\n"))
}

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}

func formatPlainAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
