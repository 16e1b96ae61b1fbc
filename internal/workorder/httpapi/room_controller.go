package httpapi

import (
	"log/slog"
	"net/http"

	"dcops-server/internal/infra/httpserver"
	"dcops-server/internal/workorder/httpapi/internal"
	"dcops-server/internal/workorder/usecases"
)

const roomSummaryErrMessage = "failed to build room summary"

func NewRoomController(service usecases.RoomSummaryService) *RoomController {
	return &RoomController{service: service}
}

var _ httpserver.Controller = &RoomController{}

type RoomController struct {
	service usecases.RoomSummaryService
}

func (c *RoomController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/rooms/{room}/cabinets", c.roomCabinets())
}

func (c *RoomController) roomCabinets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := httpserver.GetPathParam(r, "room")
		if room == "" {
			http.Error(w, "room is required", http.StatusBadRequest)
			return
		}

		batchID := httpserver.GetQueryParam(r, "batch_id")

		summary, err := c.service.RoomCabinetSummary(r.Context(), room, batchID)
		if err != nil {
			slog.Error("building room summary",
				slog.String("room", room),
				slog.String("error", err.Error()))
			http.Error(w, roomSummaryErrMessage, http.StatusInternalServerError)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToRoomSummaryResponse(summary))
	}
}
