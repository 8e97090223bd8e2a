package cycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DisplayDateLayout is the DD/MM/YYYY form shown in cards and edit
	// fields, matching the list payload.
	DisplayDateLayout = "02/01/2006"
	// ServerDateLayout is the YYYY-MM-DD form every command sends.
	ServerDateLayout = "2006-01-02"
)

// New builds the optimistic local projection for a freshly created cycle:
// five equal tranches a week apart, week 1 active. The ids are temporary;
// the authoritative record arrives with the next list fetch.
func New(name string, amount float64, start time.Time) Cycle {
	id := uuid.NewString()
	weekAmount := amount / WeeksPerCycle

	weeks := make([]Week, 0, WeeksPerCycle)
	for i := 0; i < WeeksPerCycle; i++ {
		status := WeekInactive
		if i == 0 {
			status = WeekActive
		}
		weeks = append(weeks, Week{
			ID:         fmt.Sprintf("%s-%d", id, i+1),
			ScheduleID: uuid.NewString(),
			WeekNumber: i + 1,
			Amount:     weekAmount,
			Date:       start.AddDate(0, 0, i*7).Format(DisplayDateLayout),
			Status:     status,
		})
	}

	return Cycle{
		ID:          id,
		Name:        name,
		TotalAmount: amount,
		Status:      StatusActive,
		StartDate:   start.Format(DisplayDateLayout),
		Weeks:       weeks,
	}
}

// WeeklySplit is the creation-form preview: five equal shares of the
// entered amount. No rounding correction is applied to the last share.
func WeeklySplit(amount float64) [WeeksPerCycle]float64 {
	var out [WeeksPerCycle]float64
	share := amount / WeeksPerCycle
	for i := range out {
		out[i] = share
	}
	return out
}

// Filter partitions the mirrored list by tab. "all" returns the slice
// unchanged; anything else returns the matching subset in original order.
func Filter(cycles []Cycle, tab string) []Cycle {
	if tab == "all" {
		return cycles
	}
	out := make([]Cycle, 0, len(cycles))
	for _, c := range cycles {
		if string(c.Status) == tab {
			out = append(out, c)
		}
	}
	return out
}

// Counts holds the derived per-tab totals.
type Counts struct {
	All       int
	Active    int
	Paused    int
	Completed int
}

// CountByStatus derives tab counts from the mirrored list.
func CountByStatus(cycles []Cycle) Counts {
	counts := Counts{All: len(cycles)}
	for _, c := range cycles {
		switch c.Status {
		case StatusActive:
			counts.Active++
		case StatusPaused:
			counts.Paused++
		case StatusCompleted:
			counts.Completed++
		}
	}
	return counts
}

// TotalInvested sums the total amounts across all mirrored cycles.
func TotalInvested(cycles []Cycle) float64 {
	sum := 0.0
	for _, c := range cycles {
		sum += c.TotalAmount
	}
	return sum
}

// ToServerDate converts a DD/MM/YYYY display date to the YYYY-MM-DD form
// the update command requires.
func ToServerDate(display string) (string, error) {
	t, err := time.ParseInLocation(DisplayDateLayout, strings.TrimSpace(display), time.Local)
	if err != nil {
		return "", fmt.Errorf("date must be DD/MM/YYYY: %w", err)
	}
	return t.Format(ServerDateLayout), nil
}

// ParseDisplayDate validates a DD/MM/YYYY edit-field value.
func ParseDisplayDate(display string) (time.Time, error) {
	t, err := time.ParseInLocation(DisplayDateLayout, strings.TrimSpace(display), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be DD/MM/YYYY: %w", err)
	}
	return t, nil
}
