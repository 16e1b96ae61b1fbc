package internal

import (
	"time"

	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/usecases"
)

// Request models
type WorkOrderCreateRequest struct {
	OperationType          string                 `json:"operation_type" validate:"required"`
	Title                  string                 `json:"title" validate:"max=200"`
	Applicant              string                 `json:"applicant" validate:"required"`
	Assignee               string                 `json:"assignee"`
	Reviewer               string                 `json:"reviewer"`
	Room                   string                 `json:"room"`
	Remark                 string                 `json:"remark"`
	ExpectedCompletionTime *time.Time             `json:"expected_completion_time,omitempty"`
	Extra                  map[string]any         `json:"extra,omitempty"`
	Items                  []WorkOrderItemRequest `json:"items"`
}

type WorkOrderItemRequest struct {
	Identifier string         `json:"identifier" validate:"required"`
	Data       map[string]any `json:"data,omitempty"`
}

type CompletionRequest struct {
	CompletedBy string `json:"completed_by" validate:"required"`
}

type TicketCallbackRequest struct {
	OrderNumber string `json:"order_number" validate:"required"`
	Approved    bool   `json:"approved"`
}

// Response models
type WorkOrderResponse struct {
	ID             string                  `json:"id"`
	BatchID        string                  `json:"batch_id"`
	OperationType  string                  `json:"operation_type"`
	OperationLabel string                  `json:"operation_label"`
	Title          string                  `json:"title"`
	Status         string                  `json:"status"`
	StatusLabel    string                  `json:"status_label"`
	TicketStatus   string                  `json:"ticket_status,omitempty"`
	Applicant      string                  `json:"applicant"`
	Assignee       string                  `json:"assignee,omitempty"`
	Reviewer       string                  `json:"reviewer,omitempty"`
	CompletedBy    string                  `json:"completed_by,omitempty"`
	OrderNumber    string                  `json:"order_number,omitempty"`
	Room           string                  `json:"room,omitempty"`
	Remark         string                  `json:"remark,omitempty"`
	SLADeadline    *time.Time              `json:"sla_deadline,omitempty"`
	SLASecondsLeft *int64                  `json:"sla_seconds_left,omitempty"`
	IsTimeout      bool                    `json:"is_timeout"`
	DeviceCount    int                     `json:"device_count"`
	CabinetCount   int                     `json:"cabinet_count"`
	Extra          map[string]any          `json:"extra,omitempty"`
	Items          []WorkOrderItemResponse `json:"items"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	StartTime      *time.Time              `json:"start_time,omitempty"`
	CloseTime      *time.Time              `json:"close_time,omitempty"`
	CompletedAt    *time.Time              `json:"completed_at,omitempty"`
}

type WorkOrderItemResponse struct {
	ID            string         `json:"id"`
	AssetID       string         `json:"asset_id,omitempty"`
	AssetSerial   string         `json:"asset_serial"`
	AssetTag      string         `json:"asset_tag,omitempty"`
	Summary       string         `json:"summary"`
	Status        string         `json:"status"`
	FailureReason string         `json:"failure_reason,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

type CompletionResponse struct {
	BatchID   string                `json:"batch_id"`
	Total     int                   `json:"total"`
	Succeeded int                   `json:"succeeded"`
	Partial   bool                  `json:"partial"`
	Failures  []ItemFailureResponse `json:"failures,omitempty"`
}

type ItemFailureResponse struct {
	ItemID     string `json:"item_id"`
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

type OperationSummaryResponse struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

type RoomSummaryResponse struct {
	Room     string                    `json:"room"`
	Cabinets []CabinetOccupancyCabinet `json:"cabinets"`
	Unparsed []string                  `json:"unparsed,omitempty"`
}

type CabinetOccupancyCabinet struct {
	Code       string   `json:"code"`
	Registered bool     `json:"registered"`
	Capacity   int      `json:"capacity,omitempty"`
	PowerType  string   `json:"power_type,omitempty"`
	Status     string   `json:"status,omitempty"`
	InBatch    []string `json:"in_batch,omitempty"`
	Others     []string `json:"others,omitempty"`
}

type ValidationErrorResponse struct {
	Message string   `json:"message"`
	Reasons []string `json:"reasons"`
}

// Conversion functions
func ToCreateCommand(body WorkOrderCreateRequest) usecases.CreateWorkOrderCommand {
	items := make([]usecases.CreateWorkOrderItem, len(body.Items))
	for i, item := range body.Items {
		items[i] = usecases.CreateWorkOrderItem{
			Identifier: item.Identifier,
			Data:       item.Data,
		}
	}

	return usecases.CreateWorkOrderCommand{
		OperationType:          domain.OperationType(body.OperationType),
		Title:                  body.Title,
		Applicant:              body.Applicant,
		Assignee:               body.Assignee,
		Reviewer:               body.Reviewer,
		Room:                   body.Room,
		Remark:                 body.Remark,
		ExpectedCompletionTime: body.ExpectedCompletionTime,
		Extra:                  body.Extra,
		Items:                  items,
	}
}

func ToWorkOrderResponse(workOrder domain.WorkOrder, sla *usecases.SLACalculator) WorkOrderResponse {
	items := make([]WorkOrderItemResponse, len(workOrder.Items))
	for i, item := range workOrder.Items {
		items[i] = toItemResponse(workOrder.OperationType, item)
	}

	response := WorkOrderResponse{
		ID:             workOrder.ID,
		BatchID:        workOrder.BatchID,
		OperationType:  workOrder.OperationType.String(),
		OperationLabel: workOrder.OperationType.DisplayLabel(),
		Title:          workOrder.Title,
		Status:         workOrder.Status.String(),
		StatusLabel:    workOrder.Status.DisplayLabel(),
		TicketStatus:   string(workOrder.TicketStatus),
		Applicant:      workOrder.Applicant,
		Assignee:       workOrder.Assignee,
		Reviewer:       workOrder.Reviewer,
		CompletedBy:    workOrder.CompletedBy,
		OrderNumber:    workOrder.OrderNumber,
		Room:           workOrder.Room,
		Remark:         workOrder.Remark,
		SLADeadline:    workOrder.SLADeadline,
		IsTimeout:      workOrder.IsTimeout,
		DeviceCount:    workOrder.DeviceCount,
		CabinetCount:   workOrder.CabinetCount,
		Extra:          workOrder.Extra,
		Items:          items,
		CreatedAt:      workOrder.CreatedAt.Time,
		UpdatedAt:      workOrder.UpdatedAt.Time,
	}

	if countdown := sla.Countdown(workOrder, time.Now()); countdown != nil {
		seconds := int64(countdown.Seconds())
		response.SLASecondsLeft = &seconds
	}
	if workOrder.StartTime != nil {
		startTime := workOrder.StartTime.Time
		response.StartTime = &startTime
	}
	if workOrder.CloseTime != nil {
		closeTime := workOrder.CloseTime.Time
		response.CloseTime = &closeTime
	}
	if workOrder.CompletedAt != nil {
		completedAt := workOrder.CompletedAt.Time
		response.CompletedAt = &completedAt
	}

	return response
}

func toItemResponse(operationType domain.OperationType, item domain.WorkOrderItem) WorkOrderItemResponse {
	response := WorkOrderItemResponse{
		ID:            item.ID,
		AssetID:       item.AssetID,
		AssetSerial:   item.AssetSerial,
		AssetTag:      item.AssetTag,
		Summary:       item.Summary(operationType),
		Status:        string(item.Status),
		FailureReason: item.FailureReason,
		Data:          item.Data,
	}
	if item.CompletedAt != nil {
		completedAt := item.CompletedAt.Time
		response.CompletedAt = &completedAt
	}
	return response
}

func ToCompletionResponse(result usecases.CompletionResult) CompletionResponse {
	failures := make([]ItemFailureResponse, len(result.Failures))
	for i, failure := range result.Failures {
		failures[i] = ItemFailureResponse{
			ItemID:     failure.ItemID,
			Identifier: failure.Identifier,
			Reason:     failure.Reason,
		}
	}

	return CompletionResponse{
		BatchID:   result.BatchID,
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Partial:   result.Partial(),
		Failures:  failures,
	}
}

func ToOperationSummaryResponse(summary usecases.OperationSummary) OperationSummaryResponse {
	counts := make(map[string]int, len(summary.Counts))
	for status, count := range summary.Counts {
		counts[status.String()] = count
	}

	return OperationSummaryResponse{
		Total:  summary.Total,
		Counts: counts,
	}
}

func ToRoomSummaryResponse(summary usecases.RoomCabinetSummary) RoomSummaryResponse {
	cabinets := make([]CabinetOccupancyCabinet, len(summary.Cabinets))
	for i, cabinet := range summary.Cabinets {
		cabinets[i] = CabinetOccupancyCabinet{
			Code:       cabinet.Code,
			Registered: cabinet.Registered,
			Capacity:   cabinet.Capacity,
			PowerType:  cabinet.PowerType,
			Status:     cabinet.Status,
			InBatch:    cabinet.InBatch,
			Others:     cabinet.Others,
		}
	}

	return RoomSummaryResponse{
		Room:     summary.Room,
		Cabinets: cabinets,
		Unparsed: summary.Unparsed,
	}
}
