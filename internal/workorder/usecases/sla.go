package usecases

import (
	"time"

	"dcops-server/internal/workorder/domain"
)

const _defaultSLA = 72 * time.Hour

func NewSLACalculator(durations map[domain.OperationType]time.Duration) *SLACalculator {
	return &SLACalculator{durations: durations}
}

// SLACalculator derives deadlines and remaining time for work orders. Each
// operation type can carry its own duration; everything else falls back to
// the default.
type SLACalculator struct {
	durations map[domain.OperationType]time.Duration
}

func (c *SLACalculator) durationFor(operationType domain.OperationType) time.Duration {
	if duration, found := c.durations[operationType]; found && duration > 0 {
		return duration
	}
	return _defaultSLA
}

func (c *SLACalculator) Deadline(operationType domain.OperationType, from time.Time) time.Time {
	return from.Add(c.durationFor(operationType))
}

// Countdown returns the remaining time before the SLA deadline, negative once
// overdue. An explicit deadline on the work order wins; otherwise the deadline
// is derived from the creation time and the operation type's duration.
// Terminal work orders have no countdown.
func (c *SLACalculator) Countdown(workOrder domain.WorkOrder, now time.Time) *time.Duration {
	if workOrder.Status.IsTerminal() {
		return nil
	}

	deadline := c.Deadline(workOrder.OperationType, workOrder.CreatedAt.Time)
	if workOrder.SLADeadline != nil {
		deadline = *workOrder.SLADeadline
	}

	remaining := deadline.Sub(now)
	return &remaining
}

func (c *SLACalculator) IsOverdue(workOrder domain.WorkOrder, now time.Time) bool {
	countdown := c.Countdown(workOrder, now)
	return countdown != nil && *countdown < 0
}
