package cycle

// Status is a cycle lifecycle state. The server owns transitions; the
// client only mirrors them.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// WeekStatus is a tranche execution state.
type WeekStatus string

const (
	WeekActive   WeekStatus = "active"
	WeekInactive WeekStatus = "inactive"
	WeekPending  WeekStatus = "pending"
	WeekExecuted WeekStatus = "executed"
	WeekFailed   WeekStatus = "failed"
)

// WeeksPerCycle is fixed by the product: every cycle splits its total
// amount into five weekly tranches.
const WeeksPerCycle = 5

// Week is one scheduled tranche. It carries two identifiers: the display
// id from the list payload and the schedule id the server expects when
// addressing update commands. They are not guaranteed equal.
type Week struct {
	ID         string     `json:"id"`
	ScheduleID string     `json:"schedule_id"`
	WeekNumber int        `json:"weekNumber"`
	Amount     float64    `json:"amount"`
	Date       string     `json:"date"`
	LTP        float64    `json:"ltp"`
	Qty        int        `json:"qty"`
	Status     WeekStatus `json:"status"`
}

// Cycle is a staged investment plan mirrored from the server.
type Cycle struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	FullName    string  `json:"full_name,omitempty"`
	TotalAmount float64 `json:"totalAmount"`
	TotalQty    int     `json:"totalQty"`
	Profit      float64 `json:"profit"`
	Status      Status  `json:"status"`
	TotalCount  int     `json:"totalCount"`
	StartDate   string  `json:"startDate,omitempty"`
	Weeks       []Week  `json:"weeks"`
}

// Disabled reports whether a cycle accepts no further week interaction.
func (c Cycle) Disabled() bool {
	return c.Status == StatusPaused || c.Status == StatusCompleted
}

// ExecutedCount counts weeks the server has marked executed.
func (c Cycle) ExecutedCount() int {
	n := 0
	for _, w := range c.Weeks {
		if w.Status == WeekExecuted {
			n++
		}
	}
	return n
}

// Progress returns the execution progress as a percentage over the fixed
// five-week denominator.
func (c Cycle) Progress() float64 {
	return float64(c.ExecutedCount()) / float64(WeeksPerCycle) * 100
}

// CanEdit reports whether a week's amount and date may still be changed:
// only before execution and only while the cycle itself is interactive.
func (c Cycle) CanEdit(w Week) bool {
	return w.Status != WeekExecuted && !c.Disabled()
}

// CanExecute reports whether the week offers the manual execute action.
func (c Cycle) CanExecute(w Week) bool {
	return w.Status == WeekActive && !c.Disabled()
}

// ToggleAction is the command a status toggle should issue.
type ToggleAction string

const (
	TogglePause  ToggleAction = "pause"
	ToggleResume ToggleAction = "resume"
	ToggleNone   ToggleAction = ""
)

// Toggle decides pause vs resume from the mirrored status. Active cycles
// pause; any other non-completed state resumes. Completed is terminal and
// offers no toggle.
func (c Cycle) Toggle() ToggleAction {
	switch c.Status {
	case StatusCompleted:
		return ToggleNone
	case StatusActive:
		return TogglePause
	default:
		return ToggleResume
	}
}
