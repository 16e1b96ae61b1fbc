package domain

import (
	"time"

	"dcops-server/internal/infra/utils"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// statusRank orders statuses along the lifecycle. Terminal statuses share the
// highest rank so no transition out of them is possible.
var statusRank = map[Status]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
	StatusCancelled:  2,
}

var statusLabels = map[Status]string{
	StatusPending:    "Pending",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

func (s Status) String() string {
	return string(s)
}

func (s Status) DisplayLabel() string {
	if label, found := statusLabels[s]; found {
		return label
	}
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether moving to the target status is allowed.
// Transitions only move forward, never back.
func (s Status) CanTransitionTo(target Status) bool {
	from, okFrom := statusRank[s]
	to, okTo := statusRank[target]
	if !okFrom || !okTo {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	return to > from
}

// TicketStatus tracks the approval ticket lifecycle in the external system,
// independently from the work order's own status.
type TicketStatus string

const (
	TicketStatusProcessing TicketStatus = "processing"
	TicketStatusCompleted  TicketStatus = "completed"
	TicketStatusFailed     TicketStatus = "failed"
)

type WorkOrder struct {
	ID            string
	BatchID       string
	OperationType OperationType
	Title         string
	Status        Status
	TicketStatus  TicketStatus
	Applicant     string
	Assignee      string
	Reviewer      string
	CompletedBy   string
	OrderNumber   string
	Room          string
	Remark        string
	SLADeadline   *time.Time
	IsTimeout     bool
	DeviceCount   int
	CabinetCount  int
	Extra         map[string]any
	Items         []WorkOrderItem
	CreatedAt     utils.Time
	UpdatedAt     utils.Time
	StartTime     *utils.Time
	CloseTime     *utils.Time
	CompletedAt   *utils.Time
}

// Actor returns who is acting on the work order right now: the completer
// when set, otherwise the applicant.
func (w WorkOrder) Actor() string {
	if w.CompletedBy != "" {
		return w.CompletedBy
	}
	return w.Applicant
}

// TransitionTo moves the work order to the target status, or returns false
// when the transition is not allowed.
func (w *WorkOrder) TransitionTo(target Status) bool {
	if !w.Status.CanTransitionTo(target) {
		return false
	}
	now := utils.Time{Time: time.Now()}
	w.Status = target
	w.UpdatedAt = now
	if target == StatusInProgress && w.StartTime == nil {
		w.StartTime = &now
	}
	if target.IsTerminal() {
		w.CloseTime = &now
	}
	if target == StatusCompleted {
		w.CompletedAt = &now
	}
	return true
}

func NewWorkOrderBuilder() *workOrderBuilder {
	return &workOrderBuilder{}
}

type workOrderBuilder struct {
	actions []workOrderHandler
}

type workOrderHandler func(w *WorkOrder) error

func (b *workOrderBuilder) WithBatchID(value string) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.BatchID = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithOperationType(value OperationType) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.OperationType = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithTitle(value string) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Title = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithApplicant(value string) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Applicant = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithAssignee(value string) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Assignee = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithReviewer(value string) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Reviewer = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithRoom(value string) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Room = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithRemark(value string) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Remark = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithSLADeadline(value time.Time) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.SLADeadline = &value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithExtra(value map[string]any) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Extra = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) WithItems(value []WorkOrderItem) *workOrderBuilder {
	b.actions = append(b.actions, func(w *WorkOrder) error {
		w.Items = value
		return nil
	})
	return b
}

func (b *workOrderBuilder) Build() (WorkOrder, error) {
	now := utils.Time{Time: time.Now()}
	result := WorkOrder{
		ID:        utils.GenerateUUID(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return WorkOrder{}, err
		}
	}
	for i := range result.Items {
		result.Items[i].BatchID = result.BatchID
	}
	result.DeviceCount = len(result.Items)
	result.CabinetCount = countDistinctCabinets(result.Items)
	return result, nil
}

func countDistinctCabinets(items []WorkOrderItem) int {
	seen := map[string]struct{}{}
	for _, item := range items {
		cabinet, _ := item.Data["cabinet"].(string)
		if cabinet == "" {
			continue
		}
		seen[cabinet] = struct{}{}
	}
	return len(seen)
}
