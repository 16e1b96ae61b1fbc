package domain

import (
	"fmt"
	"time"

	"dcops-server/internal/infra/utils"
)

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusCompleted ItemStatus = "completed"
	ItemStatusFailed    ItemStatus = "failed"
)

// WorkOrderItem is one asset-level line of a work order. Data carries the
// operation specific payload, e.g. target U positions for racking or the
// power action for power management.
type WorkOrderItem struct {
	ID            string
	BatchID       string
	AssetID       string
	AssetSerial   string
	AssetTag      string
	Status        ItemStatus
	FailureReason string
	Data          map[string]any
	CompletedAt   *utils.Time
}

func NewWorkOrderItem(assetSerial string, data map[string]any) WorkOrderItem {
	return WorkOrderItem{
		ID:          utils.GenerateUUID(),
		AssetSerial: assetSerial,
		Status:      ItemStatusPending,
		Data:        data,
	}
}

func (i *WorkOrderItem) MarkCompleted() {
	now := utils.Time{Time: time.Now()}
	i.Status = ItemStatusCompleted
	i.FailureReason = ""
	i.CompletedAt = &now
}

func (i *WorkOrderItem) MarkFailed(reason string) {
	i.Status = ItemStatusFailed
	i.FailureReason = reason
}

// Reference returns the best identifier we have for the item's asset.
func (i WorkOrderItem) Reference() string {
	switch {
	case i.AssetSerial != "":
		return i.AssetSerial
	case i.AssetTag != "":
		return i.AssetTag
	default:
		return i.AssetID
	}
}

// Summary renders a one-line description of the requested operation, shown in
// work order listings and detail views.
func (i WorkOrderItem) Summary(operationType OperationType) string {
	field := func(key string) string {
		value, _ := i.Data[key].(string)
		return value
	}

	switch operationType {
	case OperationTypeReceiving:
		return fmt.Sprintf("receive %s", i.Reference())
	case OperationTypeRacking:
		return fmt.Sprintf("rack %s into %s %s", i.Reference(), field("cabinet"), field("u_position"))
	case OperationTypePowerManagement:
		if field("power_action") == "power_off" {
			return fmt.Sprintf("power off %s, reason: %s", i.Reference(), field("reason"))
		}
		return fmt.Sprintf("power on %s (%s)", i.Reference(), field("power_type"))
	case OperationTypeConfiguration:
		if sn := field("sn"); sn != "" {
			return fmt.Sprintf("install %s into %s", sn, i.Reference())
		}
		return fmt.Sprintf("install %s into %s", field("title"), i.Reference())
	case OperationTypeNetworkCable:
		return fmt.Sprintf("cable %s %s to %s", i.Reference(), field("source_port"), field("destination"))
	case OperationTypeMaintenance:
		return fmt.Sprintf("maintain %s: %s", i.Reference(), field("description"))
	default:
		return fmt.Sprintf("%s %s", operationType, i.Reference())
	}
}
