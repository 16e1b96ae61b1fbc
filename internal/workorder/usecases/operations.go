package usecases

import (
	"context"
	"fmt"
	"time"

	"dcops-server/internal/infra/utils"
	"dcops-server/internal/workorder/domain"
)

// OperationHandler carries the per-type behavior of a work order: request
// validation at creation time and the asset side effects at completion time.
// Completion side effects run inside the completion transaction.
type OperationHandler interface {
	ValidateItem(item *CreateWorkOrderItem) []string
	CompleteItem(ctx context.Context, repos TxRepos, workOrder *domain.WorkOrder, item *domain.WorkOrderItem) error
}

func NewOperationRegistry() *OperationRegistry {
	return &OperationRegistry{
		handlers: map[domain.OperationType]OperationHandler{
			domain.OperationTypeReceiving:       &receivingHandler{},
			domain.OperationTypeRacking:         &rackingHandler{},
			domain.OperationTypePowerManagement: &powerManagementHandler{},
			domain.OperationTypeConfiguration:   &configurationHandler{},
			domain.OperationTypeNetworkCable:    &networkCableHandler{},
			domain.OperationTypeMaintenance:     &maintenanceHandler{},
		},
		fallback: &defaultHandler{},
	}
}

// OperationRegistry dispatches to the handler matching the operation type.
// Unknown types get a passthrough handler that accepts anything and only
// marks items completed.
type OperationRegistry struct {
	handlers map[domain.OperationType]OperationHandler
	fallback OperationHandler
}

func (r *OperationRegistry) HandlerFor(operationType domain.OperationType) OperationHandler {
	if handler, found := r.handlers[operationType]; found {
		return handler
	}
	return r.fallback
}

func stringField(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	if value, ok := data[key].(string); ok {
		return value
	}
	return ""
}

func numberField(data map[string]any, key string) (float64, bool) {
	if data == nil {
		return 0, false
	}
	switch value := data[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	default:
		return 0, false
	}
}

func resolveItemAsset(ctx context.Context, repos TxRepos, item *domain.WorkOrderItem) (domain.Asset, error) {
	if item.AssetID != "" {
		return repos.Assets.GetByID(ctx, item.AssetID)
	}
	return repos.Assets.Resolve(ctx, item.AssetSerial)
}

func appendStatusChange(ctx context.Context, repos TxRepos, asset domain.Asset, workOrder *domain.WorkOrder, oldStatus domain.AssetStatus) error {
	entry := domain.NewChangeLogEntry(
		asset.ID,
		workOrder.BatchID,
		"status",
		string(oldStatus),
		string(asset.Status),
		workOrder.Actor(),
	)
	return repos.ChangeLogs.Append(ctx, entry)
}

type defaultHandler struct{}

func (h *defaultHandler) ValidateItem(_ *CreateWorkOrderItem) []string {
	return nil
}

func (h *defaultHandler) CompleteItem(_ context.Context, _ TxRepos, _ *domain.WorkOrder, _ *domain.WorkOrderItem) error {
	return nil
}

// receivingHandler moves assets into the destination room on completion.
type receivingHandler struct{}

func (h *receivingHandler) ValidateItem(item *CreateWorkOrderItem) []string {
	var reasons []string
	if item.Identifier == "" {
		reasons = append(reasons, "asset identifier is required")
	}
	return reasons
}

func (h *receivingHandler) CompleteItem(ctx context.Context, repos TxRepos, workOrder *domain.WorkOrder, item *domain.WorkOrderItem) error {
	asset, err := resolveItemAsset(ctx, repos, item)
	if err != nil {
		return fmt.Errorf("resolving asset: %w", err)
	}

	oldStatus := asset.Status
	oldRoom := asset.Room
	asset.MoveToRoom(workOrder.Room)
	asset.SetStatus(domain.AssetStatusReceived)

	if err := repos.Assets.Update(ctx, asset); err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}

	roomEntry := domain.NewChangeLogEntry(asset.ID, workOrder.BatchID, "room", oldRoom, workOrder.Room, workOrder.Actor())
	if err := repos.ChangeLogs.Append(ctx, roomEntry); err != nil {
		return fmt.Errorf("recording room change: %w", err)
	}

	return appendStatusChange(ctx, repos, asset, workOrder, oldStatus)
}

// rackingHandler places assets into a cabinet at the requested U positions.
type rackingHandler struct{}

func (h *rackingHandler) ValidateItem(item *CreateWorkOrderItem) []string {
	var reasons []string
	if item.Identifier == "" {
		reasons = append(reasons, "asset identifier is required")
	}
	if stringField(item.Data, "cabinet") == "" {
		reasons = append(reasons, "cabinet is required for racking")
	}
	if uPosition := stringField(item.Data, "u_position"); uPosition == "" {
		reasons = append(reasons, "u_position is required for racking")
	} else if _, err := domain.ParseURange(uPosition); err != nil {
		reasons = append(reasons, err.Error())
	}
	return reasons
}

func (h *rackingHandler) CompleteItem(ctx context.Context, repos TxRepos, workOrder *domain.WorkOrder, item *domain.WorkOrderItem) error {
	asset, err := resolveItemAsset(ctx, repos, item)
	if err != nil {
		return fmt.Errorf("resolving asset: %w", err)
	}

	cabinet := stringField(item.Data, "cabinet")
	uRange, err := domain.ParseURange(stringField(item.Data, "u_position"))
	if err != nil {
		return fmt.Errorf("parsing u position: %w", err)
	}
	location := fmt.Sprintf("%s %s", cabinet, uRange.String())

	oldStatus := asset.Status
	oldLocation := fmt.Sprintf("%s %s", asset.Cabinet, asset.UPosition)
	asset.PlaceInCabinet(cabinet, uRange.String())
	asset.SetStatus(domain.AssetStatusRacked)

	if err := repos.Assets.Update(ctx, asset); err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}

	locationEntry := domain.NewChangeLogEntry(asset.ID, workOrder.BatchID, "location", oldLocation, location, workOrder.Actor())
	if err := repos.ChangeLogs.Append(ctx, locationEntry); err != nil {
		return fmt.Errorf("recording location change: %w", err)
	}

	return appendStatusChange(ctx, repos, asset, workOrder, oldStatus)
}

// powerManagementHandler powers assets on or off. Powering off requires a
// reason; powering on defaults the power type to AC.
type powerManagementHandler struct{}

const (
	powerActionOn  = "power_on"
	powerActionOff = "power_off"

	defaultPowerType = "AC"
)

func (h *powerManagementHandler) ValidateItem(item *CreateWorkOrderItem) []string {
	var reasons []string
	if item.Identifier == "" {
		reasons = append(reasons, "asset identifier is required")
	}

	action := stringField(item.Data, "power_action")
	switch action {
	case powerActionOn:
		if stringField(item.Data, "power_type") == "" {
			if item.Data == nil {
				item.Data = map[string]any{}
			}
			item.Data["power_type"] = defaultPowerType
		}
	case powerActionOff:
		if stringField(item.Data, "reason") == "" {
			reasons = append(reasons, "reason is required when powering off")
		}
	default:
		reasons = append(reasons, fmt.Sprintf("unknown power action %q", action))
	}

	return reasons
}

func (h *powerManagementHandler) CompleteItem(ctx context.Context, repos TxRepos, workOrder *domain.WorkOrder, item *domain.WorkOrderItem) error {
	asset, err := resolveItemAsset(ctx, repos, item)
	if err != nil {
		return fmt.Errorf("resolving asset: %w", err)
	}

	oldStatus := asset.Status
	switch stringField(item.Data, "power_action") {
	case powerActionOn:
		asset.PowerType = stringField(item.Data, "power_type")
		asset.SetStatus(domain.AssetStatusPoweredOn)
	case powerActionOff:
		asset.SetStatus(domain.AssetStatusPoweredOff)
	default:
		return fmt.Errorf("unknown power action %q", stringField(item.Data, "power_action"))
	}

	if err := repos.Assets.Update(ctx, asset); err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}

	if item.Data == nil {
		item.Data = map[string]any{}
	}
	item.Data["executed_at"] = utils.Time{Time: time.Now()}
	item.Data["executed_by"] = workOrder.Actor()

	return appendStatusChange(ctx, repos, asset, workOrder, oldStatus)
}

// configurationHandler attaches components to a parent asset. A component is
// either a physical asset referenced by serial number with a quantity, or a
// virtual one referenced by title only.
type configurationHandler struct{}

func (h *configurationHandler) ValidateItem(item *CreateWorkOrderItem) []string {
	var reasons []string
	if item.Identifier == "" {
		reasons = append(reasons, "parent asset identifier is required")
	}

	serial := stringField(item.Data, "sn")
	title := stringField(item.Data, "title")
	switch {
	case serial != "":
		if quantity, ok := numberField(item.Data, "quantity"); !ok || quantity < 1 {
			reasons = append(reasons, "quantity must be at least 1 for component by serial number")
		}
	case title != "":
		// virtual component, nothing more to check
	default:
		reasons = append(reasons, "component requires either sn with quantity or title")
	}

	return reasons
}

func (h *configurationHandler) CompleteItem(ctx context.Context, repos TxRepos, workOrder *domain.WorkOrder, item *domain.WorkOrderItem) error {
	parent, err := resolveItemAsset(ctx, repos, item)
	if err != nil {
		return fmt.Errorf("resolving parent asset: %w", err)
	}

	serial := stringField(item.Data, "sn")
	if serial != "" {
		component, err := repos.Assets.Resolve(ctx, serial)
		if err != nil {
			return fmt.Errorf("resolving component %s: %w", serial, err)
		}

		kind := domain.RelationshipComponent
		if stringField(item.Data, "attach") == "downstream" {
			kind = domain.RelationshipDownstream
		}
		edge := domain.NewRelationshipEdge(parent.ID, component.ID, kind, workOrder.BatchID)
		if err := repos.Relationships.Append(ctx, edge); err != nil {
			return fmt.Errorf("appending relationship: %w", err)
		}

		componentOldStatus := component.Status
		component.SetStatus(domain.AssetStatusInstalled)
		if err := repos.Assets.Update(ctx, component); err != nil {
			return fmt.Errorf("updating component asset: %w", err)
		}
		if err := appendStatusChange(ctx, repos, component, workOrder, componentOldStatus); err != nil {
			return fmt.Errorf("recording component status change: %w", err)
		}
	} else {
		edge := domain.NewRelationshipEdge(parent.ID, "", domain.RelationshipComponentVirtual, workOrder.BatchID)
		edge.Label = stringField(item.Data, "title")
		if err := repos.Relationships.Append(ctx, edge); err != nil {
			return fmt.Errorf("appending virtual relationship: %w", err)
		}
	}

	oldStatus := parent.Status
	if parent.Status != domain.AssetStatusConfigured {
		parent.SetStatus(domain.AssetStatusConfigured)
		if err := repos.Assets.Update(ctx, parent); err != nil {
			return fmt.Errorf("updating parent asset: %w", err)
		}
		return appendStatusChange(ctx, repos, parent, workOrder, oldStatus)
	}

	return nil
}

// networkCableHandler records cabling between an asset and its peer.
type networkCableHandler struct{}

func (h *networkCableHandler) ValidateItem(item *CreateWorkOrderItem) []string {
	var reasons []string
	if item.Identifier == "" {
		reasons = append(reasons, "asset identifier is required")
	}
	if stringField(item.Data, "source_port") == "" {
		reasons = append(reasons, "source_port is required for network cabling")
	}
	if stringField(item.Data, "destination") == "" {
		reasons = append(reasons, "destination is required for network cabling")
	}
	return reasons
}

func (h *networkCableHandler) CompleteItem(ctx context.Context, repos TxRepos, workOrder *domain.WorkOrder, item *domain.WorkOrderItem) error {
	asset, err := resolveItemAsset(ctx, repos, item)
	if err != nil {
		return fmt.Errorf("resolving asset: %w", err)
	}

	destination := stringField(item.Data, "destination")
	peer, err := repos.Assets.Resolve(ctx, destination)
	if err != nil {
		return fmt.Errorf("resolving destination %s: %w", destination, err)
	}

	edge := domain.NewRelationshipEdge(asset.ID, peer.ID, domain.RelationshipDownstream, workOrder.BatchID)
	edge.Label = stringField(item.Data, "source_port")
	if err := repos.Relationships.Append(ctx, edge); err != nil {
		return fmt.Errorf("appending cable relationship: %w", err)
	}

	entry := domain.NewChangeLogEntry(asset.ID, workOrder.BatchID, "cabling", "", fmt.Sprintf("%s -> %s", edge.Label, destination), workOrder.Actor())
	return repos.ChangeLogs.Append(ctx, entry)
}

// maintenanceHandler records maintenance work without changing asset state.
type maintenanceHandler struct{}

func (h *maintenanceHandler) ValidateItem(item *CreateWorkOrderItem) []string {
	var reasons []string
	if item.Identifier == "" {
		reasons = append(reasons, "asset identifier is required")
	}
	if stringField(item.Data, "description") == "" {
		reasons = append(reasons, "description is required for maintenance")
	}
	return reasons
}

func (h *maintenanceHandler) CompleteItem(ctx context.Context, repos TxRepos, workOrder *domain.WorkOrder, item *domain.WorkOrderItem) error {
	asset, err := resolveItemAsset(ctx, repos, item)
	if err != nil {
		return fmt.Errorf("resolving asset: %w", err)
	}

	entry := domain.NewChangeLogEntry(asset.ID, workOrder.BatchID, "maintenance", "", stringField(item.Data, "description"), workOrder.Actor())
	return repos.ChangeLogs.Append(ctx, entry)
}
