package cycle

import (
	"math"
	"testing"
	"time"
)

func TestNewSplitsAmountAcrossFiveWeeks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	c := New("ABC", 1000000, start)

	if len(c.Weeks) != WeeksPerCycle {
		t.Fatalf("len(weeks) = %d, want %d", len(c.Weeks), WeeksPerCycle)
	}

	sum := 0.0
	for i, w := range c.Weeks {
		if w.WeekNumber != i+1 {
			t.Fatalf("weeks[%d].WeekNumber = %d, want %d", i, w.WeekNumber, i+1)
		}
		if w.Amount != 200000 {
			t.Fatalf("weeks[%d].Amount = %v, want 200000", i, w.Amount)
		}
		sum += w.Amount
	}
	if math.Abs(sum-1000000) > 1e-6 {
		t.Fatalf("sum of week amounts = %v, want 1000000", sum)
	}
}

func TestNewDatesAdvanceSevenDays(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	c := New("ABC", 1000000, start)

	want := []string{"01/01/2024", "08/01/2024", "15/01/2024", "22/01/2024", "29/01/2024"}
	for i, w := range c.Weeks {
		if w.Date != want[i] {
			t.Fatalf("weeks[%d].Date = %q, want %q", i, w.Date, want[i])
		}
	}
}

func TestNewOnlyFirstWeekActive(t *testing.T) {
	c := New("ABC", 500, time.Date(2024, 6, 3, 0, 0, 0, 0, time.Local))

	want := []WeekStatus{WeekActive, WeekInactive, WeekInactive, WeekInactive, WeekInactive}
	for i, w := range c.Weeks {
		if w.Status != want[i] {
			t.Fatalf("weeks[%d].Status = %q, want %q", i, w.Status, want[i])
		}
	}
	if c.Status != StatusActive {
		t.Fatalf("cycle status = %q, want %q", c.Status, StatusActive)
	}
	if c.StartDate != "03/06/2024" {
		t.Fatalf("start date = %q, want %q", c.StartDate, "03/06/2024")
	}
}

func TestNewAssignsDistinctIdentifiers(t *testing.T) {
	c := New("ABC", 500, time.Now())

	seen := map[string]bool{c.ID: true}
	for _, w := range c.Weeks {
		if w.ID == "" || w.ScheduleID == "" {
			t.Fatalf("week %d missing identifier: id=%q schedule_id=%q", w.WeekNumber, w.ID, w.ScheduleID)
		}
		if seen[w.ScheduleID] {
			t.Fatalf("duplicate schedule id %q", w.ScheduleID)
		}
		seen[w.ScheduleID] = true
	}
}

func TestExecutedCountAndProgress(t *testing.T) {
	c := Cycle{
		Weeks: []Week{
			{Status: WeekExecuted},
			{Status: WeekExecuted},
			{Status: WeekActive},
			{Status: WeekInactive},
			{Status: WeekFailed},
		},
	}

	if got := c.ExecutedCount(); got != 2 {
		t.Fatalf("ExecutedCount() = %d, want 2", got)
	}
	if got := c.Progress(); got != 40 {
		t.Fatalf("Progress() = %v, want 40", got)
	}
}

func TestCanEditBlocksExecutedAndDisabledCycles(t *testing.T) {
	tests := []struct {
		name  string
		cycle Status
		week  WeekStatus
		want  bool
	}{
		{"active cycle pending week", StatusActive, WeekInactive, true},
		{"active cycle active week", StatusActive, WeekActive, true},
		{"executed week", StatusActive, WeekExecuted, false},
		{"paused cycle", StatusPaused, WeekActive, false},
		{"completed cycle", StatusCompleted, WeekInactive, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Cycle{Status: tc.cycle}
			if got := c.CanEdit(Week{Status: tc.week}); got != tc.want {
				t.Fatalf("CanEdit() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanExecuteOnlyActiveWeekOfInteractiveCycle(t *testing.T) {
	active := Cycle{Status: StatusActive}
	if !active.CanExecute(Week{Status: WeekActive}) {
		t.Fatal("CanExecute() = false for active week of active cycle")
	}
	if active.CanExecute(Week{Status: WeekInactive}) {
		t.Fatal("CanExecute() = true for inactive week")
	}
	paused := Cycle{Status: StatusPaused}
	if paused.CanExecute(Week{Status: WeekActive}) {
		t.Fatal("CanExecute() = true for paused cycle")
	}
}

func TestToggleBinaryBranch(t *testing.T) {
	tests := []struct {
		status Status
		want   ToggleAction
	}{
		{StatusActive, TogglePause},
		{StatusPaused, ToggleResume},
		{StatusCompleted, ToggleNone},
	}

	for _, tc := range tests {
		c := Cycle{Status: tc.status}
		if got := c.Toggle(); got != tc.want {
			t.Fatalf("Toggle() for %q = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	cycles := []Cycle{
		{ID: "1", Status: StatusActive},
		{ID: "2", Status: StatusPaused},
		{ID: "3", Status: StatusActive},
		{ID: "4", Status: StatusCompleted},
	}

	all := Filter(cycles, "all")
	if len(all) != 4 {
		t.Fatalf("Filter(all) returned %d cycles, want 4", len(all))
	}
	for i := range all {
		if all[i].ID != cycles[i].ID {
			t.Fatalf("Filter(all)[%d].ID = %q, want %q", i, all[i].ID, cycles[i].ID)
		}
	}

	active := Filter(cycles, "active")
	if len(active) != 2 || active[0].ID != "1" || active[1].ID != "3" {
		t.Fatalf("Filter(active) = %+v, want cycles 1 and 3 in order", active)
	}

	completed := Filter(cycles, "completed")
	if len(completed) != 1 || completed[0].ID != "4" {
		t.Fatalf("Filter(completed) = %+v, want cycle 4", completed)
	}
}

func TestCountByStatus(t *testing.T) {
	cycles := []Cycle{
		{Status: StatusActive},
		{Status: StatusActive},
		{Status: StatusPaused},
		{Status: StatusCompleted},
	}

	counts := CountByStatus(cycles)
	if counts.All != 4 || counts.Active != 2 || counts.Paused != 1 || counts.Completed != 1 {
		t.Fatalf("CountByStatus() = %+v", counts)
	}
}

func TestWeeklySplitNoRoundingCorrection(t *testing.T) {
	shares := WeeklySplit(100)
	for i, s := range shares {
		if s != 20 {
			t.Fatalf("shares[%d] = %v, want 20", i, s)
		}
	}

	// 1000.01 / 5 leaves a fractional remainder by design.
	shares = WeeklySplit(1000.01)
	for i := 1; i < len(shares); i++ {
		if shares[i] != shares[0] {
			t.Fatalf("shares[%d] = %v, want equal to shares[0] = %v", i, shares[i], shares[0])
		}
	}
}

func TestToServerDate(t *testing.T) {
	got, err := ToServerDate("05/02/2024")
	if err != nil {
		t.Fatalf("ToServerDate() unexpected error: %v", err)
	}
	if got != "2024-02-05" {
		t.Fatalf("ToServerDate() = %q, want %q", got, "2024-02-05")
	}

	if _, err := ToServerDate("2024-02-05"); err == nil {
		t.Fatal("ToServerDate() accepted a server-form date")
	}
	if _, err := ToServerDate("31/13/2024"); err == nil {
		t.Fatal("ToServerDate() accepted an impossible month")
	}
}

func TestTotalInvested(t *testing.T) {
	cycles := []Cycle{{TotalAmount: 100.5}, {TotalAmount: 199.5}}
	if got := TotalInvested(cycles); got != 300 {
		t.Fatalf("TotalInvested() = %v, want 300", got)
	}
}
