package history

import (
	"net/http"
	"turndown/infras/otel"
	"turndown/internal/domains/history/service"
	"turndown/shared/constant"
	gDto "turndown/shared/dto"
	"turndown/transport/http/middleware"
	"turndown/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.History
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.History, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/history", func(routerGroup chi.Router) {
		routerGroup.Get("/cleanings", handler.GetCleanings)
		routerGroup.Get("/rooms", handler.GetRoomHistory)

		routerGroup.Group(func(manager chi.Router) {
			manager.Use(handler.middleware.RequireRole(constant.RoleManager))
			manager.Post("/archive", handler.Archive)
		})
	})
}

// GetCleanings lists cleaning records newest first.
// @Summary List cleaning records
// @Description Retrieve completed cleanings, optionally filtered to one cleaner, paginated.
// @Tags History
// @Accept json
// @Produce json
// @Param cleaner_id query string false "Filter by cleaner ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetCleaningsResponse "Cleaning records"
// @Failure 500 {object} response.Error
// @Router /v1/history/cleanings [get]
// @Security BearerAuth
func (handler *Handler) GetCleanings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCleanings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	cleanerID := r.URL.Query().Get(constant.RequestParamCleanerID)

	records, err := handler.service.GetCleanings(ctx, cleanerID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cleaning records")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, records)
}

// GetRoomHistory lists a cleaner's room pairings newest first.
// @Summary List room history
// @Description Retrieve the rooms a cleaner has been linked to and how each link was made.
// @Tags History
// @Accept json
// @Produce json
// @Param cleaner_id query string true "Cleaner ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetRoomHistoryResponse "Room history"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/history/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRoomHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomHistory")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	cleanerID := r.URL.Query().Get(constant.RequestParamCleanerID)

	entries, err := handler.service.GetRoomHistory(ctx, cleanerID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, entries)
}

// Archive exports the cleaning ledger to object storage.
// @Summary Archive cleaning records
// @Description Export the full cleaning ledger as a JSON document to S3.
// @Tags History
// @Accept json
// @Produce json
// @Success 200 {object} dto.ArchiveResponse "Archive location"
// @Failure 500 {object} response.Error
// @Router /v1/history/archive [post]
// @Security BearerAuth
func (handler *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Archive")
	defer scope.End()

	result, err := handler.service.Archive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to archive cleaning records")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cleaning archive exported by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}
