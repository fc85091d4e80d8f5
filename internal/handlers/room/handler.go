package room

import (
	"net/http"
	"turndown/infras/otel"
	"turndown/internal/domains/room/service"
	"turndown/shared/constant"
	"turndown/transport/http/middleware"
	"turndown/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Room
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Room, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{number}", handler.GetRoomByNumber)

		routerGroup.Group(func(housekeeper chi.Router) {
			housekeeper.Use(handler.middleware.RequireRole(constant.RoleHousekeeper))
			housekeeper.Post("/{number}/tasks/{taskId}/toggle", handler.ToggleTask)
		})
	})
}

// GetRooms lists every room with its cleaning progress.
// @Summary List rooms
// @Description Retrieve all rooms with status, assignee and checklist progress.
// @Tags Room
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetRoomsResponse "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	rooms, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByNumber returns one room with its visible task list.
// @Summary Get room detail
// @Description Retrieve one room with its merged, ordered task list.
// @Tags Room
// @Accept json
// @Produce json
// @Param number path string true "Room number"
// @Success 200 {object} dto.RoomDetailResponse "Room detail"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{number} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByNumber(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByNumber")
	defer scope.End()

	number := chi.URLParam(r, constant.RequestParamNumber)

	room, err := handler.service.Get(ctx, number)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// ToggleTask flips one checklist flag on a room being cleaned.
// @Summary Toggle a cleaning task
// @Description Complete or un-complete a task. Completing requires all earlier tasks of the category to be done.
// @Tags Room
// @Accept json
// @Produce json
// @Param number path string true "Room number"
// @Param taskId path string true "Task ID"
// @Success 200 {object} dto.RoomDetailResponse "Updated room detail"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{number}/tasks/{taskId}/toggle [post]
// @Security BearerAuth
func (handler *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleTask")
	defer scope.End()

	number := chi.URLParam(r, constant.RequestParamNumber)
	taskID := chi.URLParam(r, constant.RequestParamTaskID)

	room, err := handler.service.ToggleTask(ctx, number, taskID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle task")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Task " + taskID + " toggled on room " + number)

	response.WithJSON(w, http.StatusOK, room)
}
