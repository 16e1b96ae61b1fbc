package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"dcops-server/internal/infra/httpserver"
	"dcops-server/internal/workorder/httpapi/internal"
	"dcops-server/internal/workorder/usecases"
)

const (
	createWorkOrderErrMessage   = "failed to create work order"
	completeWorkOrderErrMessage = "failed to complete work order"
	getWorkOrderErrMessage      = "failed to get work order"
	listWorkOrdersErrMessage    = "failed to list work orders"
	workOrderNotFoundErrMessage = "work order not found"
	ticketCallbackErrMessage    = "failed to apply ticket status"
	summaryErrMessage           = "failed to build summary"
)

func NewWorkOrderController(service usecases.WorkOrderService, sla *usecases.SLACalculator) *WorkOrderController {
	return &WorkOrderController{
		service: service,
		sla:     sla,
	}
}

var _ httpserver.Controller = &WorkOrderController{}

type WorkOrderController struct {
	service usecases.WorkOrderService
	sla     *usecases.SLACalculator
}

func (c *WorkOrderController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /v1/work-orders", c.createWorkOrder())
	router.Handle("GET /v1/work-orders", c.listWorkOrders())
	router.Handle("GET /v1/work-orders/summary", c.operationSummary())
	router.Handle("GET /v1/work-orders/{batch_id}", c.getWorkOrder())
	router.Handle("POST /v1/work-orders/{batch_id}/completion", c.completeWorkOrder())
	router.Handle("POST /v1/tickets/callback", c.ticketCallback())
}

func (c *WorkOrderController) createWorkOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.WorkOrderCreateRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding create work order request", slog.String("error", err.Error()))
			http.Error(w, createWorkOrderErrMessage, http.StatusBadRequest)
			return
		}

		workOrder, err := c.service.CreateWorkOrder(r.Context(), internal.ToCreateCommand(body))
		if err != nil {
			c.replyWithServiceError(w, err, createWorkOrderErrMessage)
			return
		}

		response := internal.ToWorkOrderResponse(workOrder, c.sla)
		httpserver.ReplyJSONResponse(w, http.StatusCreated, response)
	}
}

func (c *WorkOrderController) listWorkOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httpserver.ExtractPaginationParams(r)
		pagination := usecases.Pagination{Limit: params.Limit, Offset: params.Offset()}

		workOrders, total, err := c.service.ListWorkOrders(r.Context(), pagination)
		if err != nil {
			slog.Error("listing work orders", slog.String("error", err.Error()))
			http.Error(w, listWorkOrdersErrMessage, http.StatusInternalServerError)
			return
		}

		responses := make([]internal.WorkOrderResponse, len(workOrders))
		for i, workOrder := range workOrders {
			responses[i] = internal.ToWorkOrderResponse(workOrder, c.sla)
		}

		httpserver.ReplyWithPaginatedData(w, http.StatusOK, responses, total, params)
	}
}

func (c *WorkOrderController) getWorkOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batchID := httpserver.GetPathParam(r, "batch_id")
		if batchID == "" {
			http.Error(w, "batch id is required", http.StatusBadRequest)
			return
		}

		workOrder, err := c.service.GetWorkOrder(r.Context(), batchID)
		if errors.Is(err, usecases.ErrWorkOrderNotFound) {
			http.Error(w, workOrderNotFoundErrMessage, http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("getting work order", slog.String("batch_id", batchID), slog.String("error", err.Error()))
			http.Error(w, getWorkOrderErrMessage, http.StatusInternalServerError)
			return
		}

		response := internal.ToWorkOrderResponse(workOrder, c.sla)
		httpserver.ReplyJSONResponse(w, http.StatusOK, response)
	}
}

func (c *WorkOrderController) completeWorkOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batchID := httpserver.GetPathParam(r, "batch_id")
		if batchID == "" {
			http.Error(w, "batch id is required", http.StatusBadRequest)
			return
		}

		var body internal.CompletionRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding completion request", slog.String("error", err.Error()))
			http.Error(w, completeWorkOrderErrMessage, http.StatusBadRequest)
			return
		}
		if body.CompletedBy == "" {
			http.Error(w, "completed_by is required", http.StatusBadRequest)
			return
		}

		result, err := c.service.CompleteWorkOrder(r.Context(), batchID, body.CompletedBy)
		if err != nil {
			c.replyWithServiceError(w, err, completeWorkOrderErrMessage)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToCompletionResponse(result))
	}
}

func (c *WorkOrderController) ticketCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.TicketCallbackRequest
		err := httpserver.DecodeJSONBody(r, &body)
		if err != nil {
			slog.Error("decoding ticket callback", slog.String("error", err.Error()))
			http.Error(w, ticketCallbackErrMessage, http.StatusBadRequest)
			return
		}
		if body.OrderNumber == "" {
			http.Error(w, "order_number is required", http.StatusBadRequest)
			return
		}

		err = c.service.UpdateTicketStatus(r.Context(), body.OrderNumber, body.Approved)
		if err != nil {
			c.replyWithServiceError(w, err, ticketCallbackErrMessage)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (c *WorkOrderController) operationSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := c.service.OperationSummary(r.Context())
		if err != nil {
			slog.Error("building operation summary", slog.String("error", err.Error()))
			http.Error(w, summaryErrMessage, http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToOperationSummaryResponse(summary))
	}
}

func (c *WorkOrderController) replyWithServiceError(w http.ResponseWriter, err error, fallbackMessage string) {
	var validationErr *usecases.ValidationError
	if errors.As(err, &validationErr) {
		httpserver.ReplyJSONResponse(w, http.StatusBadRequest, internal.ValidationErrorResponse{
			Message: "validation failed",
			Reasons: validationErr.Reasons,
		})
		return
	}

	var notFoundErr *usecases.NotFoundError
	if errors.As(err, &notFoundErr) {
		http.Error(w, notFoundErr.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, usecases.ErrWorkOrderNotFound) {
		http.Error(w, workOrderNotFoundErrMessage, http.StatusNotFound)
		return
	}

	var conflictErr *usecases.ConflictError
	if errors.As(err, &conflictErr) {
		http.Error(w, conflictErr.Error(), http.StatusConflict)
		return
	}

	var externalErr *usecases.ExternalSystemError
	if errors.As(err, &externalErr) {
		http.Error(w, externalErr.Error(), http.StatusBadGateway)
		return
	}

	slog.Error("work order request failed", slog.String("error", err.Error()))
	http.Error(w, fallbackMessage, http.StatusInternalServerError)
}
