package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dcops-server/internal/infra/node"
	"dcops-server/internal/infra/pubsub"
	"dcops-server/internal/infra/ticket"
	"dcops-server/internal/shared_kernel/avro"
	"dcops-server/internal/workorder/domain"
)

const _workOrderAuditTopic = "work_order_audit"

func NewWorkOrderService(
	repository WorkOrderRepository,
	assets AssetRepository,
	rooms RoomRepository,
	unitOfWork UnitOfWork,
	registry *OperationRegistry,
	batchIDs *BatchIDGenerator,
	sla *SLACalculator,
	tickets ticket.Client,
	publisherFactory pubsub.PublisherFactory,
) (*SimpleWorkOrderService, error) {
	publisher, err := publisherFactory.New(_workOrderAuditTopic, &avro.WorkOrderAuditEvent{})
	if err != nil {
		return nil, fmt.Errorf("creating audit publisher: %w", err)
	}

	return &SimpleWorkOrderService{
		repository:     repository,
		assets:         assets,
		rooms:          rooms,
		unitOfWork:     unitOfWork,
		registry:       registry,
		batchIDs:       batchIDs,
		sla:            sla,
		tickets:        tickets,
		auditPublisher: publisher,
	}, nil
}

var _ WorkOrderService = (*SimpleWorkOrderService)(nil)

type SimpleWorkOrderService struct {
	repository     WorkOrderRepository
	assets         AssetRepository
	rooms          RoomRepository
	unitOfWork     UnitOfWork
	registry       *OperationRegistry
	batchIDs       *BatchIDGenerator
	sla            *SLACalculator
	tickets        ticket.Client
	auditPublisher pubsub.Publisher
}

// CreateWorkOrder checks the request preconditions, resolves the room and
// every referenced asset, validates the items, then persists the work order
// and opens the external ticket inside the same transaction. A ticket failure
// rolls everything back; nothing is retried because the ticket system opens
// at most one ticket per request.
func (s *SimpleWorkOrderService) CreateWorkOrder(ctx context.Context, cmd CreateWorkOrderCommand) (domain.WorkOrder, error) {
	if reasons := createPreconditions(cmd); len(reasons) > 0 {
		return domain.WorkOrder{}, &ValidationError{OperationType: cmd.OperationType, Reasons: reasons}
	}

	room := cmd.Room
	if cmd.Room != "" {
		resolved, err := s.resolveRoom(ctx, cmd.Room)
		if errors.Is(err, ErrRoomNotFound) {
			return domain.WorkOrder{}, NewNotFoundError("rooms", []string{cmd.Room})
		}
		if err != nil {
			slog.Error("resolving room", slog.String("room", cmd.Room), slog.String("error", err.Error()))
			return domain.WorkOrder{}, errUnknown
		}
		room = resolved.Name
	}

	resolvedAssets := make([]domain.Asset, len(cmd.Items))
	var missing []string
	for i, requested := range cmd.Items {
		asset, err := s.assets.Resolve(ctx, requested.Identifier)
		if errors.Is(err, ErrAssetNotFound) {
			missing = append(missing, requested.Identifier)
			continue
		}
		if err != nil {
			slog.Error("resolving asset", slog.String("identifier", requested.Identifier), slog.String("error", err.Error()))
			return domain.WorkOrder{}, errUnknown
		}
		resolvedAssets[i] = asset
	}
	if len(missing) > 0 {
		return domain.WorkOrder{}, NewNotFoundError("assets", missing)
	}

	handler := s.registry.HandlerFor(cmd.OperationType)
	for i := range cmd.Items {
		reasons := handler.ValidateItem(&cmd.Items[i])
		if len(reasons) == 0 {
			continue
		}
		for j, reason := range reasons {
			reasons[j] = fmt.Sprintf("item %d: %s", i+1, reason)
		}
		return domain.WorkOrder{}, &ValidationError{OperationType: cmd.OperationType, Reasons: reasons}
	}

	items := make([]domain.WorkOrderItem, 0, len(cmd.Items))
	for i, requested := range cmd.Items {
		item := domain.NewWorkOrderItem(resolvedAssets[i].SerialNumber, requested.Data)
		item.AssetID = resolvedAssets[i].ID
		item.AssetTag = resolvedAssets[i].AssetTag
		items = append(items, item)
	}

	batchID := s.batchIDs.Next(cmd.OperationType)
	builder := domain.NewWorkOrderBuilder().
		WithBatchID(batchID).
		WithOperationType(cmd.OperationType).
		WithTitle(cmd.Title).
		WithApplicant(cmd.Applicant).
		WithAssignee(cmd.Assignee).
		WithReviewer(cmd.Reviewer).
		WithRoom(room).
		WithRemark(cmd.Remark).
		WithExtra(cmd.Extra).
		WithItems(items)
	if cmd.ExpectedCompletionTime != nil {
		builder = builder.WithSLADeadline(*cmd.ExpectedCompletionTime)
	}
	workOrder, err := builder.Build()
	if err != nil {
		return domain.WorkOrder{}, fmt.Errorf("building work order: %w", err)
	}

	err = s.unitOfWork.Do(ctx, func(repos TxRepos) error {
		if err := repos.WorkOrders.Create(ctx, workOrder); err != nil {
			return fmt.Errorf("persisting work order: %w", err)
		}

		orderNumber, err := s.tickets.CreateTicket(ctx, ticket.CreateRequest{
			BatchID:       workOrder.BatchID,
			OperationType: workOrder.OperationType.String(),
			Title:         workOrder.Title,
			Applicant:     workOrder.Applicant,
			Payload:       workOrder.Extra,
		})
		if err != nil {
			return &ExternalSystemError{System: "ticket", Err: err}
		}

		workOrder.OrderNumber = orderNumber
		workOrder.TicketStatus = domain.TicketStatusProcessing
		if err := repos.WorkOrders.Update(ctx, workOrder); err != nil {
			return fmt.Errorf("recording order number: %w", err)
		}

		return nil
	})
	if err != nil {
		var externalErr *ExternalSystemError
		if errors.As(err, &externalErr) {
			slog.Warn("work order rolled back",
				slog.String("batch_id", workOrder.BatchID),
				slog.String("error", externalErr.Error()))
			return domain.WorkOrder{}, externalErr
		}
		slog.Error("creating work order", slog.String("error", err.Error()))
		return domain.WorkOrder{}, errUnknown
	}

	slog.Info("work order created",
		slog.String("batch_id", workOrder.BatchID),
		slog.String("operation_type", workOrder.OperationType.String()),
		slog.String("order_number", workOrder.OrderNumber))

	s.publishAudit(ctx, workOrder, "created", workOrder.Applicant)

	return workOrder, nil
}

// createPreconditions checks the request shape before anything is resolved.
// Power management requests come in two forms: room level, addressed by the
// power_action in the extra payload with no items, and device level, which
// additionally needs an assignee and a completion deadline.
func createPreconditions(cmd CreateWorkOrderCommand) []string {
	var reasons []string

	if cmd.OperationType == domain.OperationTypePowerManagement {
		if action := stringField(cmd.Extra, "power_action"); action != "" {
			if len(cmd.Items) > 0 {
				reasons = append(reasons, "items are not allowed for room level power management")
			}
			switch action {
			case powerActionOn:
			case powerActionOff:
				if stringField(cmd.Extra, "reason") == "" {
					reasons = append(reasons, "reason is required when powering off a room")
				}
			default:
				reasons = append(reasons, fmt.Sprintf("unknown power action %q", action))
			}
			if cmd.Room == "" {
				reasons = append(reasons, "room is required for room level power management")
			}
			return reasons
		}

		if cmd.Assignee == "" {
			reasons = append(reasons, "assignee is required for power management")
		}
		if cmd.Room == "" {
			reasons = append(reasons, "room is required for power management")
		}
		if cmd.ExpectedCompletionTime == nil {
			reasons = append(reasons, "expected_completion_time is required for power management")
		}
	}

	if cmd.OperationType == domain.OperationTypeReceiving && cmd.Room == "" {
		reasons = append(reasons, "room is required for receiving")
	}

	if len(cmd.Items) == 0 {
		reasons = append(reasons, "at least one item is required")
	}

	return reasons
}

func (s *SimpleWorkOrderService) resolveRoom(ctx context.Context, identifier string) (domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, identifier)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, ErrRoomNotFound) {
		return domain.Room{}, err
	}
	return s.rooms.GetByAbbreviation(ctx, identifier)
}

// CompleteWorkOrder applies the per-type completion side effects to every
// pending item. A failing item is recorded and skipped; the work order
// completes regardless, reporting a partial result.
func (s *SimpleWorkOrderService) CompleteWorkOrder(ctx context.Context, batchID, completedBy string) (CompletionResult, error) {
	workOrder, err := s.repository.GetByBatchID(ctx, batchID)
	if errors.Is(err, ErrWorkOrderNotFound) {
		return CompletionResult{}, ErrWorkOrderNotFound
	}
	if err != nil {
		slog.Error("getting work order", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		return CompletionResult{}, errUnknown
	}

	if workOrder.Status.IsTerminal() {
		return CompletionResult{}, &ConflictError{
			BatchID: batchID,
			Reason:  fmt.Sprintf("already %s", workOrder.Status),
		}
	}

	workOrder.CompletedBy = completedBy
	handler := s.registry.HandlerFor(workOrder.OperationType)
	result := CompletionResult{BatchID: batchID, Total: len(workOrder.Items)}

	err = s.unitOfWork.Do(ctx, func(repos TxRepos) error {
		for i := range workOrder.Items {
			item := &workOrder.Items[i]
			if item.Status == domain.ItemStatusCompleted {
				result.Succeeded++
				continue
			}

			if err := handler.CompleteItem(ctx, repos, &workOrder, item); err != nil {
				item.MarkFailed(err.Error())
				result.Failures = append(result.Failures, ItemFailure{
					ItemID:     item.ID,
					Identifier: item.AssetSerial,
					Reason:     err.Error(),
				})
				slog.Warn("work order item failed",
					slog.String("batch_id", batchID),
					slog.String("asset_serial", item.AssetSerial),
					slog.String("error", err.Error()))
			} else {
				item.MarkCompleted()
				result.Succeeded++
			}

			if err := repos.WorkOrders.UpdateItem(ctx, *item); err != nil {
				return fmt.Errorf("updating item %s: %w", item.ID, err)
			}
		}

		workOrder.TransitionTo(domain.StatusCompleted)
		if err := repos.WorkOrders.Update(ctx, workOrder); err != nil {
			return fmt.Errorf("updating work order: %w", err)
		}

		return nil
	})
	if err != nil {
		slog.Error("completing work order", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		return CompletionResult{}, errUnknown
	}

	slog.Info("work order completed",
		slog.String("batch_id", batchID),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", len(result.Failures)))

	s.publishAudit(ctx, workOrder, "completed", completedBy)

	return result, nil
}

func (s *SimpleWorkOrderService) GetWorkOrder(ctx context.Context, batchID string) (domain.WorkOrder, error) {
	workOrder, err := s.repository.GetByBatchID(ctx, batchID)
	if errors.Is(err, ErrWorkOrderNotFound) {
		return domain.WorkOrder{}, ErrWorkOrderNotFound
	}
	if err != nil {
		slog.Error("getting work order", slog.String("batch_id", batchID), slog.String("error", err.Error()))
		return domain.WorkOrder{}, errUnknown
	}

	return workOrder, nil
}

func (s *SimpleWorkOrderService) ListWorkOrders(ctx context.Context, pagination Pagination) ([]domain.WorkOrder, int, error) {
	workOrders, total, err := s.repository.FindAll(ctx, pagination)
	if err != nil {
		slog.Error("listing work orders", slog.String("error", err.Error()))
		return nil, 0, errUnknown
	}

	return workOrders, total, nil
}

// UpdateTicketStatus reacts to an approval decision from the ticket system.
// Approval moves the work order into progress; rejection cancels it.
func (s *SimpleWorkOrderService) UpdateTicketStatus(ctx context.Context, orderNumber string, approved bool) error {
	workOrder, err := s.repository.GetByOrderNumber(ctx, orderNumber)
	if errors.Is(err, ErrWorkOrderNotFound) {
		return ErrWorkOrderNotFound
	}
	if err != nil {
		slog.Error("getting work order by order number", slog.String("order_number", orderNumber), slog.String("error", err.Error()))
		return errUnknown
	}

	target := domain.StatusInProgress
	ticketStatus := domain.TicketStatusCompleted
	if !approved {
		target = domain.StatusCancelled
		ticketStatus = domain.TicketStatusFailed
	}

	if !workOrder.TransitionTo(target) {
		return &ConflictError{
			BatchID: workOrder.BatchID,
			Reason:  fmt.Sprintf("cannot move from %s to %s", workOrder.Status, target),
		}
	}
	workOrder.TicketStatus = ticketStatus

	if err := s.repository.Update(ctx, workOrder); err != nil {
		slog.Error("updating work order status", slog.String("batch_id", workOrder.BatchID), slog.String("error", err.Error()))
		return errUnknown
	}

	slog.Info("ticket status applied",
		slog.String("batch_id", workOrder.BatchID),
		slog.String("order_number", orderNumber),
		slog.Bool("approved", approved))

	s.publishAudit(ctx, workOrder, "ticket_updated", workOrder.Applicant)

	return nil
}

func (s *SimpleWorkOrderService) OperationSummary(ctx context.Context) (OperationSummary, error) {
	counts, err := s.repository.CountByStatus(ctx)
	if err != nil {
		slog.Error("counting work orders", slog.String("error", err.Error()))
		return OperationSummary{}, errUnknown
	}

	summary := OperationSummary{Counts: counts}
	for _, count := range counts {
		summary.Total += count
	}

	return summary, nil
}

func (s *SimpleWorkOrderService) publishAudit(ctx context.Context, workOrder domain.WorkOrder, action, actor string) {
	event := &avro.WorkOrderAuditEvent{
		BatchID:       workOrder.BatchID,
		OperationType: workOrder.OperationType.String(),
		Action:        action,
		Status:        workOrder.Status.String(),
		Actor:         actor,
		NodeID:        node.GetNodeInfo().ID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.auditPublisher.Publish(ctx, pubsub.Key(workOrder.BatchID), event); err != nil {
		slog.Warn("publishing audit event",
			slog.String("batch_id", workOrder.BatchID),
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
