package tui

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cycledash/internal/cycle"
	"cycledash/internal/cycleapi"
	"cycledash/internal/storage"
)

type screenMode int

const (
	screenLogin screenMode = iota
	screenDashboard
)

type loadCyclesMsg struct {
	cycles []cycle.Cycle
	result cycleapi.Result
}

type scheduleCycleMsg struct {
	result cycleapi.Result
}

type updateScheduleMsg struct {
	result cycleapi.Result
}

type toggleStatusMsg struct {
	result cycleapi.Result
}

type loadPrefsMsg struct {
	tab   string
	email string
	err   error
}

type savePrefsMsg struct {
	err error
}

type clearToastMsg struct {
	id int
}

var tabNames = []string{"all", "active", "paused", "completed"}

type model struct {
	db     *sql.DB
	client *cycleapi.Client

	width  int
	height int

	screen screenMode

	// login (decorative: posts nothing, accepts anything)
	loginEmail    textinput.Model
	loginPassword textinput.Model
	loginFocus    int

	// dashboard
	cycles      []cycle.Cycle
	loading     bool
	tab         int
	cycleCursor int
	weekCursor  int

	// One flag for the whole page: while any pause/resume request is in
	// flight every toggle control is disabled.
	toggleBusy bool

	// add-cycle form
	formOpen   bool
	formName   textinput.Model
	formAmount textinput.Model
	formDate   textinput.Model
	formFocus  int
	formErr    string

	// week editor
	editing    bool
	editAmount textinput.Model
	editDate   textinput.Model
	editFocus  int
	editErr    string

	toastText string
	toastID   int

	quitting bool
}

// New builds the initial model. db may be nil when the build has no
// sqlcipher support; preferences are then session-only.
func New(db *sql.DB, client *cycleapi.Client) tea.Model {
	email := textinput.New()
	email.Prompt = "email: "
	email.Placeholder = "you@example.com"
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Prompt = "password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.Width = 36

	name := textinput.New()
	name.Prompt = "name: "
	name.Placeholder = "e.g. ABC"
	name.Width = 28

	amount := textinput.New()
	amount.Prompt = "amount: "
	amount.Placeholder = "e.g. 1000000"
	amount.Width = 28

	date := textinput.New()
	date.Prompt = "start: "
	date.Placeholder = "DD/MM/YYYY"
	date.Width = 28

	editAmount := textinput.New()
	editAmount.Prompt = "amount: "
	editAmount.Width = 24

	editDate := textinput.New()
	editDate.Prompt = "date: "
	editDate.Placeholder = "DD/MM/YYYY"
	editDate.Width = 24

	return model{
		db:            db,
		client:        client,
		screen:        screenLogin,
		loginEmail:    email,
		loginPassword: password,
		formName:      name,
		formAmount:    amount,
		formDate:      date,
		editAmount:    editAmount,
		editDate:      editDate,
		loading:       true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCyclesCmd(),
		m.loadPrefsCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadCyclesMsg:
		m.loading = false
		if !msg.result.Success {
			// Keep the previous mirror; a failed refresh never clears it.
			return m.withToast(msg.result.Message)
		}
		m.cycles = msg.cycles
		m.clampCursors()
		return m, nil

	case scheduleCycleMsg:
		// Fire-and-forget: the optimistic cycle stays either way.
		if !msg.result.Success {
			return m.withToast(msg.result.Message)
		}
		return m, nil

	case updateScheduleMsg:
		// Resynchronize after every update, success or failure.
		if !msg.result.Success {
			next, cmd := m.withToast(msg.result.Message)
			return next, tea.Batch(cmd, next.loadCyclesCmd())
		}
		return m, m.loadCyclesCmd()

	case toggleStatusMsg:
		m.toggleBusy = false
		if !msg.result.Success {
			return m.withToast(msg.result.Message)
		}
		return m, m.loadCyclesCmd()

	case loadPrefsMsg:
		if msg.err != nil {
			return m, nil
		}
		for i, name := range tabNames {
			if name == msg.tab {
				m.tab = i
			}
		}
		if msg.email != "" && m.loginEmail.Value() == "" {
			m.loginEmail.SetValue(msg.email)
		}
		return m, nil

	case savePrefsMsg:
		if msg.err != nil {
			return m.withToast("failed to save preferences: " + msg.err.Error())
		}
		return m, nil

	case clearToastMsg:
		if msg.id == m.toastID {
			m.toastText = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenDashboard:
			if m.formOpen {
				return m.updateForm(msg)
			}
			if m.editing {
				return m.updateWeekEditor(msg)
			}
			return m.updateDashboard(msg)
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C6CE6")).
		Padding(1, 1)
	contentStyle := lipgloss.NewStyle().Padding(1, 1, 0, 1)
	if m.width > 0 {
		frame = frame.Width(max(1, m.width-frame.GetHorizontalBorderSize()))
	}
	if m.height > 0 {
		frame = frame.Height(max(1, m.height-frame.GetVerticalBorderSize()))
	}

	layoutWidth := max(1, m.width-frame.GetHorizontalFrameSize()-contentStyle.GetHorizontalFrameSize())

	if m.screen == screenLogin {
		return frame.Render(contentStyle.Render(m.renderLoginScreen(layoutWidth)))
	}
	return frame.Render(contentStyle.Render(m.renderDashboardScreen(layoutWidth)))
}

func (m model) withToast(text string) (model, tea.Cmd) {
	m.toastText = text
	m.toastID++
	id := m.toastID
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

func (m model) loadCyclesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		cycles, result := client.ListCycles(context.Background())
		return loadCyclesMsg{cycles: cycles, result: result}
	}
}

func (m model) scheduleCycleCmd(name string, amount float64, startDate string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result := client.ScheduleCycle(context.Background(), cycleapi.ScheduleRequest{
			TotalAmount: amount,
			Name:        name,
			StartDate:   startDate,
		})
		return scheduleCycleMsg{result: result}
	}
}

func (m model) updateScheduleCmd(req cycleapi.UpdateRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result := client.UpdateSchedule(context.Background(), req)
		return updateScheduleMsg{result: result}
	}
}

func (m model) toggleStatusCmd(cycleID string, action cycle.ToggleAction) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		var result cycleapi.Result
		switch action {
		case cycle.TogglePause:
			result = client.PauseCycle(context.Background(), cycleID)
		default:
			result = client.ResumeCycle(context.Background(), cycleID)
		}
		return toggleStatusMsg{result: result}
	}
}

func (m model) loadPrefsCmd() tea.Cmd {
	db := m.db
	return func() tea.Msg {
		if db == nil {
			return loadPrefsMsg{}
		}
		repo := storage.NewAppConfigRepo(db)
		ctx := context.Background()

		tab, _, err := repo.Get(ctx, storage.KeyLastTab)
		if err != nil {
			return loadPrefsMsg{err: err}
		}
		email, _, err := repo.Get(ctx, storage.KeyLoginEmail)
		if err != nil {
			return loadPrefsMsg{err: err}
		}
		return loadPrefsMsg{tab: tab, email: email}
	}
}

func (m model) savePrefsCmd(values map[string]string) tea.Cmd {
	db := m.db
	return func() tea.Msg {
		if db == nil {
			return savePrefsMsg{}
		}
		repo := storage.NewAppConfigRepo(db)
		if err := repo.UpsertMany(context.Background(), values); err != nil {
			return savePrefsMsg{err: err}
		}
		return savePrefsMsg{}
	}
}

// visibleCycles is the current tab's partition of the mirrored list.
func (m model) visibleCycles() []cycle.Cycle {
	return cycle.Filter(m.cycles, tabNames[m.tab])
}

func (m model) selectedCycle() (cycle.Cycle, bool) {
	visible := m.visibleCycles()
	if m.cycleCursor < 0 || m.cycleCursor >= len(visible) {
		return cycle.Cycle{}, false
	}
	return visible[m.cycleCursor], true
}

func (m model) selectedWeek() (cycle.Cycle, cycle.Week, bool) {
	c, ok := m.selectedCycle()
	if !ok {
		return cycle.Cycle{}, cycle.Week{}, false
	}
	if m.weekCursor < 0 || m.weekCursor >= len(c.Weeks) {
		return c, cycle.Week{}, false
	}
	return c, c.Weeks[m.weekCursor], true
}

func (m *model) clampCursors() {
	visible := m.visibleCycles()
	if len(visible) == 0 {
		m.cycleCursor = 0
		m.weekCursor = 0
		return
	}
	if m.cycleCursor < 0 {
		m.cycleCursor = 0
	}
	if m.cycleCursor >= len(visible) {
		m.cycleCursor = len(visible) - 1
	}
	weeks := len(visible[m.cycleCursor].Weeks)
	if weeks == 0 {
		m.weekCursor = 0
		return
	}
	if m.weekCursor < 0 {
		m.weekCursor = 0
	}
	if m.weekCursor >= weeks {
		m.weekCursor = weeks - 1
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
