package usecases

//go:generate mockgen -source=./api.go -destination=../../../test/unit/doubles/workorder/usecases/api_mock.go -package=usecases

import (
	"context"
	"time"

	"dcops-server/internal/workorder/domain"
)

type CreateWorkOrderItem struct {
	Identifier string
	Data       map[string]any
}

type CreateWorkOrderCommand struct {
	OperationType          domain.OperationType
	Title                  string
	Applicant              string
	Assignee               string
	Reviewer               string
	Room                   string
	Remark                 string
	ExpectedCompletionTime *time.Time
	Extra                  map[string]any
	Items                  []CreateWorkOrderItem
}

// ItemFailure describes one item the completion engine could not apply.
type ItemFailure struct {
	ItemID     string
	Identifier string
	Reason     string
}

// CompletionResult is the outcome of completing a work order. Partial is set
// when some items failed; the work order itself still completes.
type CompletionResult struct {
	BatchID   string
	Total     int
	Succeeded int
	Failures  []ItemFailure
}

func (r CompletionResult) Partial() bool {
	return len(r.Failures) > 0 && r.Succeeded > 0
}

type OperationSummary struct {
	Counts map[domain.Status]int
	Total  int
}

type WorkOrderService interface {
	CreateWorkOrder(context.Context, CreateWorkOrderCommand) (domain.WorkOrder, error)
	CompleteWorkOrder(ctx context.Context, batchID, completedBy string) (CompletionResult, error)
	GetWorkOrder(context.Context, string) (domain.WorkOrder, error)
	ListWorkOrders(context.Context, Pagination) ([]domain.WorkOrder, int, error)
	UpdateTicketStatus(ctx context.Context, orderNumber string, approved bool) error
	OperationSummary(context.Context) (OperationSummary, error)
}

type RoomSummaryService interface {
	RoomCabinetSummary(ctx context.Context, room, batchID string) (RoomCabinetSummary, error)
}
