package cleaner

import (
	"net/http"
	"turndown/infras/otel"
	"turndown/internal/domains/cleaner/model/dto"
	"turndown/internal/domains/cleaner/service"
	"turndown/shared/constant"
	"turndown/shared/validator"
	"turndown/transport/http/middleware"
	"turndown/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Cleaner
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Cleaner, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cleaners", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.RequireRole(constant.RoleManager))

		routerGroup.Post("/", handler.CreateCleaner)
		routerGroup.Get("/", handler.GetCleaners)
		routerGroup.Get("/{id}", handler.GetCleanerByID)
		routerGroup.Patch("/{id}", handler.UpdateCleaner)
		routerGroup.Delete("/{id}", handler.DeactivateCleaner)
	})
}

// CreateCleaner registers a new cleaner profile.
// @Summary Create a cleaner
// @Description Register a cleaner with validated contact and identity fields.
// @Tags Cleaner
// @Accept json
// @Produce json
// @Param request body dto.CreateCleanerRequest true "Create Cleaner Request"
// @Success 201 {object} dto.CleanerResponse "Created cleaner"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cleaners [post]
// @Security BearerAuth
func (handler *Handler) CreateCleaner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCleaner")
	defer scope.End()

	req := dto.CreateCleanerRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	cleaner, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create cleaner")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cleaner created by user " + user)

	response.WithJSON(w, http.StatusCreated, cleaner)
}

// GetCleaners lists every cleaner profile.
// @Summary List cleaners
// @Description Retrieve all cleaner profiles, active and retired.
// @Tags Cleaner
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetCleanersResponse "List of cleaners"
// @Failure 500 {object} response.Error
// @Router /v1/cleaners [get]
// @Security BearerAuth
func (handler *Handler) GetCleaners(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCleaners")
	defer scope.End()

	cleaners, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cleaners")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cleaners)
}

// GetCleanerByID returns one cleaner profile.
// @Summary Get a cleaner by ID
// @Tags Cleaner
// @Accept json
// @Produce json
// @Param id path string true "Cleaner ID"
// @Success 200 {object} dto.CleanerResponse "Cleaner profile"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cleaners/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCleanerByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCleanerByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	cleaner, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cleaner")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cleaner)
}

// UpdateCleaner overlays new field values on an existing profile.
// @Summary Update a cleaner
// @Tags Cleaner
// @Accept json
// @Produce json
// @Param id path string true "Cleaner ID"
// @Param request body dto.UpdateCleanerRequest true "Update Cleaner Request"
// @Success 200 {object} dto.CleanerResponse "Updated cleaner"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cleaners/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCleaner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCleaner")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCleanerRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	cleaner, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update cleaner")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cleaner updated by user " + user)

	response.WithJSON(w, http.StatusOK, cleaner)
}

// DeactivateCleaner retires a cleaner and returns their waiting rooms to the queue.
// @Summary Deactivate a cleaner
// @Description Retire the cleaner. Rooms waiting on them return to checkout; rooms mid-clean are untouched.
// @Tags Cleaner
// @Accept json
// @Produce json
// @Param id path string true "Cleaner ID"
// @Success 200 {object} dto.DeactivateCleanerResponse "Deactivation result"
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cleaners/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeactivateCleaner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateCleaner")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	result, err := handler.service.Deactivate(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate cleaner")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cleaner deactivated by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}
