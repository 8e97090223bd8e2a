package cycleapi

import (
	"context"
	"encoding/json"

	"cycledash/internal/cycle"
)

// DefaultExecutionTime is sent with every schedule update; the service
// executes updated tranches at this time of day.
const DefaultExecutionTime = "15:36:00"

// ListCycles calls GET /all_etf_details and returns the full cycle
// snapshot. A body that is not a JSON array (null, object) is a failure;
// callers keep their previous state in that case.
func (c *Client) ListCycles(ctx context.Context) ([]cycle.Cycle, Result) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/all_etf_details", &raw); err != nil {
		return nil, failResult(err.Error())
	}

	var cycles []cycle.Cycle
	if err := json.Unmarshal(raw, &cycles); err != nil || cycles == nil {
		return nil, failResult("cycle list response is not an array")
	}
	return cycles, okResult()
}

// ScheduleRequest is the body for POST /schedule_etf.
type ScheduleRequest struct {
	TotalAmount float64 `json:"total_amount"`
	Name        string  `json:"etf_name"`
	StartDate   string  `json:"start_date"`
}

// ScheduleCycle creates a new five-week cycle on the server. StartDate
// must be in YYYY-MM-DD form.
func (c *Client) ScheduleCycle(ctx context.Context, req ScheduleRequest) Result {
	if err := c.postJSON(ctx, "/schedule_etf", req, nil); err != nil {
		return failResult(err.Error())
	}
	return okResult()
}

// UpdateRequest is the body for POST /update_schedule. ScheduleID is the
// week's schedule identifier, never its display id.
type UpdateRequest struct {
	ScheduleID    string  `json:"schedule_id"`
	Amount        float64 `json:"amount"`
	ExecutionDate string  `json:"execution_date"`
	ExecutionTime string  `json:"execution_time"`
}

// UpdateSchedule changes a pending week's amount and execution date, or
// marks it executed (manual execution goes through the same command).
// ExecutionDate must be in YYYY-MM-DD form.
func (c *Client) UpdateSchedule(ctx context.Context, req UpdateRequest) Result {
	if req.ExecutionTime == "" {
		req.ExecutionTime = DefaultExecutionTime
	}
	if err := c.postJSON(ctx, "/update_schedule", req, nil); err != nil {
		return failResult(err.Error())
	}
	return okResult()
}

type cycleIDRequest struct {
	CycleID string `json:"cycle_id"`
}

// PauseCycle calls POST /pause_cycle.
func (c *Client) PauseCycle(ctx context.Context, cycleID string) Result {
	if err := c.postJSON(ctx, "/pause_cycle", cycleIDRequest{CycleID: cycleID}, nil); err != nil {
		return failResult(err.Error())
	}
	return okResult()
}

// ResumeCycle calls POST /resume_cycle.
func (c *Client) ResumeCycle(ctx context.Context, cycleID string) Result {
	if err := c.postJSON(ctx, "/resume_cycle", cycleIDRequest{CycleID: cycleID}, nil); err != nil {
		return failResult(err.Error())
	}
	return okResult()
}
