package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cycledash/internal/cycle"
	"cycledash/internal/cycleapi"
	"cycledash/internal/storage"
)

func renderBlockTitle() string {
	glyphs := map[rune][3]string{
		'A': {"▄▀█", "█▀█", "▀ ▀"},
		'C': {"█▀▀", "█▄▄", "▀▀▀"},
		'D': {"█▀▄", "█ █", "▀▀ "},
		'E': {"█▀▀", "█▀▀", "▀▀▀"},
		'H': {"█ █", "█▀█", "▀ ▀"},
		'L': {"█  ", "█▄▄", "▀▀▀"},
		'S': {"█▀▀", "▀▀█", "▀▀▀"},
		'Y': {"█ █", " █ ", " ▀ "},
		' ': {" ", " ", " "},
	}
	title := "CYCLE DASH"
	lines := [3][]string{{}, {}, {}}
	for _, ch := range title {
		g, ok := glyphs[ch]
		if !ok {
			continue
		}
		lines[0] = append(lines[0], g[0])
		lines[1] = append(lines[1], g[1])
		lines[2] = append(lines[2], g[2])
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true)
	out := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		out = append(out, style.Render(strings.Join(lines[i], " ")))
	}
	return strings.Join(out, "\n")
}

func (m model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.tab = (m.tab + 1) % len(tabNames)
		m.cycleCursor = 0
		m.weekCursor = 0
		return m, m.savePrefsCmd(map[string]string{
			storage.KeyLastTab: tabNames[m.tab],
		})

	case "shift+tab":
		m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
		m.cycleCursor = 0
		m.weekCursor = 0
		return m, m.savePrefsCmd(map[string]string{
			storage.KeyLastTab: tabNames[m.tab],
		})

	case "up", "k":
		m.cycleCursor--
		m.clampCursors()
		return m, nil

	case "down", "j":
		m.cycleCursor++
		m.clampCursors()
		return m, nil

	case "left", "h":
		m.weekCursor--
		m.clampCursors()
		return m, nil

	case "right", "l":
		m.weekCursor++
		m.clampCursors()
		return m, nil

	case "r":
		m.loading = len(m.cycles) == 0
		return m, m.loadCyclesCmd()

	case "a":
		return m.openForm()

	case "e":
		return m.openWeekEditor()

	case "x":
		return m.executeSelectedWeek()

	case "p":
		return m.toggleSelectedCycle()
	}

	return m, nil
}

// executeSelectedWeek issues the manual execute intent for the active
// week: an update command carrying status executed. The local mirror is
// not touched; the authoritative flip arrives with the re-fetch.
func (m model) executeSelectedWeek() (tea.Model, tea.Cmd) {
	c, w, ok := m.selectedWeek()
	if !ok || !c.CanExecute(w) {
		return m, nil
	}
	serverDate, err := cycle.ToServerDate(w.Date)
	if err != nil {
		return m.withToast(err.Error())
	}
	return m, m.updateScheduleCmd(cycleapi.UpdateRequest{
		ScheduleID:    w.ScheduleID,
		Amount:        w.Amount,
		ExecutionDate: serverDate,
	})
}

func (m model) toggleSelectedCycle() (tea.Model, tea.Cmd) {
	if m.toggleBusy {
		return m, nil
	}
	c, ok := m.selectedCycle()
	if !ok {
		return m, nil
	}
	action := c.Toggle()
	if action == cycle.ToggleNone {
		return m, nil
	}
	m.toggleBusy = true
	return m, m.toggleStatusCmd(c.ID, action)
}

func (m model) renderDashboardScreen(layoutWidth int) string {
	title := renderBlockTitle()
	title = lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, title)

	parts := []string{title, ""}
	parts = append(parts, lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, m.renderHeaderStats()))
	parts = append(parts, lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, m.renderTabs()))
	parts = append(parts, "")

	cardWidth := min(layoutWidth-4, 110)
	cardWidth = max(60, cardWidth)

	switch {
	case m.loading:
		parts = append(parts, lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center,
			lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render("loading cycles…")))
	case len(m.cycles) == 0:
		empty := strings.Join([]string{
			lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")).Bold(true).Render("No cycles yet"),
			lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render("Create your first trading cycle to get started"),
		}, "\n")
		parts = append(parts, lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, empty))
	default:
		visible := m.visibleCycles()
		if len(visible) == 0 {
			parts = append(parts, lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center,
				lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render("no cycles in this tab")))
		}
		for i, c := range visible {
			selected := i == m.cycleCursor
			card := m.renderCycleCard(c, selected, cardWidth)
			parts = append(parts, lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, card))
		}
	}

	if m.formOpen {
		parts = append(parts, "", lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, m.renderForm(cardWidth)))
	}
	if m.editing {
		parts = append(parts, "", lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, m.renderWeekEditor()))
	}

	if strings.TrimSpace(m.toastText) != "" {
		toast := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F15B5B")).
			Foreground(lipgloss.Color("#F15B5B")).
			Padding(0, 1).
			Render(m.toastText)
		parts = append(parts, "", lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, toast))
	}

	hint := "tab switch  ↑/↓ cycle  ←/→ week  a add  e edit  x execute  p pause/resume  r refresh  q quit"
	if m.formOpen || m.editing {
		hint = "enter save  tab next field  esc cancel"
	}
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render(hint)
	parts = append(parts, "", lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, footer))

	return strings.Join(parts, "\n")
}

func (m model) renderHeaderStats() string {
	counts := cycle.CountByStatus(m.cycles)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB76")).Bold(true)
	totalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true)

	return labelStyle.Render("Advanced trading cycle automation   ") +
		activeStyle.Render(fmt.Sprintf("%d Active", counts.Active)) +
		labelStyle.Render("   ") +
		totalStyle.Render("₹"+formatAmount(cycle.TotalInvested(m.cycles)))
}

func (m model) renderTabs() string {
	counts := cycle.CountByStatus(m.cycles)
	byTab := []int{counts.All, counts.Active, counts.Paused, counts.Completed}

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7C6CE6")).
		Bold(true).
		Padding(0, 1)
	idleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF")).
		Padding(0, 1)

	rendered := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%s (%d)", titleCase(name), byTab[i])
		if i == m.tab {
			rendered = append(rendered, selectedStyle.Render(label))
		} else {
			rendered = append(rendered, idleStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatAmount renders a monetary value with thousands separators and
// two decimal places.
func formatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v)
	frac := int64((v-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, ch := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	out := fmt.Sprintf("%s.%02d", b.String(), frac)
	if neg {
		return "-" + out
	}
	return out
}
