package internal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"dcops-server/internal/infra/utils"
	"dcops-server/internal/workorder/domain"
)

// JSONMap stores an arbitrary payload as a json column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch data := value.(type) {
	case string:
		return json.Unmarshal([]byte(data), m)
	case []byte:
		return json.Unmarshal(data, m)
	default:
		return errors.New("type assertion to string or bytes failed")
	}
}

type WorkOrder struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	BatchID       string          `json:"batch_id" gorm:"uniqueIndex;not null"`
	OperationType string          `json:"operation_type" gorm:"index;not null"`
	Title         string          `json:"title"`
	Status        string          `json:"status" gorm:"index;not null"`
	TicketStatus  string          `json:"ticket_status"`
	Applicant     string          `json:"applicant"`
	Assignee      string          `json:"assignee"`
	Reviewer      string          `json:"reviewer"`
	CompletedBy   string          `json:"completed_by"`
	OrderNumber   string          `json:"order_number" gorm:"index"`
	Room          string          `json:"room"`
	Remark        string          `json:"remark"`
	SLADeadline   *time.Time      `json:"sla_deadline" gorm:"index"`
	IsTimeout     bool            `json:"is_timeout"`
	DeviceCount   int             `json:"device_count"`
	CabinetCount  int             `json:"cabinet_count"`
	Extra         JSONMap         `json:"extra" gorm:"type:json"`
	Items         []WorkOrderItem `json:"items" gorm:"foreignKey:WorkOrderID;references:ID"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	StartTime     *time.Time      `json:"start_time"`
	CloseTime     *time.Time      `json:"close_time"`
	CompletedAt   *time.Time      `json:"completed_at"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

func (w WorkOrder) ToDomain() domain.WorkOrder {
	items := make([]domain.WorkOrderItem, len(w.Items))
	for i, item := range w.Items {
		items[i] = item.ToDomain()
	}

	result := domain.WorkOrder{
		ID:            w.ID,
		BatchID:       w.BatchID,
		OperationType: domain.OperationType(w.OperationType),
		Title:         w.Title,
		Status:        domain.Status(w.Status),
		TicketStatus:  domain.TicketStatus(w.TicketStatus),
		Applicant:     w.Applicant,
		Assignee:      w.Assignee,
		Reviewer:      w.Reviewer,
		CompletedBy:   w.CompletedBy,
		OrderNumber:   w.OrderNumber,
		Room:          w.Room,
		Remark:        w.Remark,
		SLADeadline:   w.SLADeadline,
		IsTimeout:     w.IsTimeout,
		DeviceCount:   w.DeviceCount,
		CabinetCount:  w.CabinetCount,
		Extra:         w.Extra,
		Items:         items,
		CreatedAt:     utils.Time{Time: w.CreatedAt},
		UpdatedAt:     utils.Time{Time: w.UpdatedAt},
	}
	if w.StartTime != nil {
		startTime := utils.Time{Time: *w.StartTime}
		result.StartTime = &startTime
	}
	if w.CloseTime != nil {
		closeTime := utils.Time{Time: *w.CloseTime}
		result.CloseTime = &closeTime
	}
	if w.CompletedAt != nil {
		completedAt := utils.Time{Time: *w.CompletedAt}
		result.CompletedAt = &completedAt
	}
	return result
}

func FromWorkOrder(value domain.WorkOrder) WorkOrder {
	items := make([]WorkOrderItem, len(value.Items))
	for i, item := range value.Items {
		items[i] = FromWorkOrderItem(item)
		items[i].WorkOrderID = value.ID
	}

	result := WorkOrder{
		ID:            value.ID,
		BatchID:       value.BatchID,
		OperationType: value.OperationType.String(),
		Title:         value.Title,
		Status:        value.Status.String(),
		TicketStatus:  string(value.TicketStatus),
		Applicant:     value.Applicant,
		Assignee:      value.Assignee,
		Reviewer:      value.Reviewer,
		CompletedBy:   value.CompletedBy,
		OrderNumber:   value.OrderNumber,
		Room:          value.Room,
		Remark:        value.Remark,
		SLADeadline:   value.SLADeadline,
		IsTimeout:     value.IsTimeout,
		DeviceCount:   value.DeviceCount,
		CabinetCount:  value.CabinetCount,
		Extra:         JSONMap(value.Extra),
		Items:         items,
		CreatedAt:     value.CreatedAt.Time,
		UpdatedAt:     value.UpdatedAt.Time,
	}
	if value.StartTime != nil {
		startTime := value.StartTime.Time
		result.StartTime = &startTime
	}
	if value.CloseTime != nil {
		closeTime := value.CloseTime.Time
		result.CloseTime = &closeTime
	}
	if value.CompletedAt != nil {
		completedAt := value.CompletedAt.Time
		result.CompletedAt = &completedAt
	}
	return result
}

type WorkOrderItem struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	WorkOrderID   string     `json:"work_order_id" gorm:"index"`
	BatchID       string     `json:"batch_id" gorm:"index;not null"`
	AssetID       string     `json:"asset_id" gorm:"index"`
	AssetSerial   string     `json:"asset_serial"`
	AssetTag      string     `json:"asset_tag"`
	Status        string     `json:"status"`
	FailureReason string     `json:"failure_reason"`
	Data          JSONMap    `json:"data" gorm:"type:json"`
	CompletedAt   *time.Time `json:"completed_at"`
}

func (WorkOrderItem) TableName() string {
	return "work_order_items"
}

func (i WorkOrderItem) ToDomain() domain.WorkOrderItem {
	result := domain.WorkOrderItem{
		ID:            i.ID,
		BatchID:       i.BatchID,
		AssetID:       i.AssetID,
		AssetSerial:   i.AssetSerial,
		AssetTag:      i.AssetTag,
		Status:        domain.ItemStatus(i.Status),
		FailureReason: i.FailureReason,
		Data:          i.Data,
	}
	if i.CompletedAt != nil {
		completedAt := utils.Time{Time: *i.CompletedAt}
		result.CompletedAt = &completedAt
	}
	return result
}

func FromWorkOrderItem(value domain.WorkOrderItem) WorkOrderItem {
	result := WorkOrderItem{
		ID:            value.ID,
		BatchID:       value.BatchID,
		AssetID:       value.AssetID,
		AssetSerial:   value.AssetSerial,
		AssetTag:      value.AssetTag,
		Status:        string(value.Status),
		FailureReason: value.FailureReason,
		Data:          JSONMap(value.Data),
	}
	if value.CompletedAt != nil {
		completedAt := value.CompletedAt.Time
		result.CompletedAt = &completedAt
	}
	return result
}
