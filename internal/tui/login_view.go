package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cycledash/internal/storage"
)

const (
	loginFocusEmail = iota
	loginFocusPassword
)

// The login screen is a placeholder: it performs no verification and
// establishes no session. Sign-in only remembers the email and moves on.
func (m model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		if m.loginFocus == loginFocusEmail {
			m.loginFocus = loginFocusPassword
			m.loginEmail.Blur()
			m.loginPassword.Focus()
		} else {
			m.loginFocus = loginFocusEmail
			m.loginPassword.Blur()
			m.loginEmail.Focus()
		}
		return m, nil

	case "enter":
		m.screen = screenDashboard
		m.loginPassword.SetValue("")
		email := strings.TrimSpace(m.loginEmail.Value())
		if email == "" {
			return m, nil
		}
		return m, m.savePrefsCmd(map[string]string{
			storage.KeyLoginEmail: email,
		})
	}

	var cmd tea.Cmd
	if m.loginFocus == loginFocusEmail {
		m.loginEmail, cmd = m.loginEmail.Update(msg)
	} else {
		m.loginPassword, cmd = m.loginPassword.Update(msg)
	}
	return m, cmd
}

func (m model) renderLoginScreen(layoutWidth int) string {
	title := renderBlockTitle()
	title = lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, title)

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF")).
		Render("Sign in to continue to your account")

	email := m.loginEmail
	password := m.loginPassword
	email.Width = max(24, min(48, layoutWidth-20))
	password.Width = email.Width

	body := strings.Join([]string{
		subtitle,
		"",
		email.View(),
		password.View(),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render("enter sign in  tab switch field  ctrl+c quit"),
	}, "\n")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#6CBFE6")).
		Padding(1, 2).
		Width(min(layoutWidth-4, 60)).
		Render(body)
	card = lipgloss.PlaceHorizontal(layoutWidth, lipgloss.Center, card)

	return strings.Join([]string{title, "", card}, "\n")
}
