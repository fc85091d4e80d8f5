package assignment

import (
	"net/http"
	"turndown/infras/otel"
	"turndown/internal/domains/assignment/model/dto"
	"turndown/internal/domains/assignment/service"
	"turndown/shared/constant"
	"turndown/shared/validator"
	"turndown/transport/http/middleware"
	"turndown/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Assignment
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Assignment, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/assignments", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.RequireRole(constant.RoleManager))

		routerGroup.Post("/propose", handler.Propose)
		routerGroup.Post("/confirm", handler.Confirm)
	})

	router.Group(func(manager chi.Router) {
		manager.Use(handler.middleware.RequireRole(constant.RoleManager))
		manager.Get("/messages", handler.GetMessages)
	})

	router.Route("/sessions", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.RequireRole(constant.RoleHousekeeper))

		routerGroup.Get("/me", handler.GetSession)
		routerGroup.Post("/select", handler.Select)
		routerGroup.Post("/deselect", handler.Deselect)
		routerGroup.Post("/proceed", handler.Proceed)
		routerGroup.Post("/abandon", handler.Abandon)
		routerGroup.Post("/finish", handler.Finish)
	})
}

// Propose parks an assignment on a room pending the cleaner's answer.
// @Summary Propose an assignment
// @Description Offer a room to a cleaner. The room's status is captured for conflict detection at confirm time.
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.ProposeRequest true "Propose Request"
// @Success 201 {object} dto.ProposalResponse "Pending proposal"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/assignments/propose [post]
// @Security BearerAuth
func (handler *Handler) Propose(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Propose")
	defer scope.End()

	req := dto.ProposeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	proposal, err := handler.service.Propose(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to propose assignment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, proposal)
}

// Confirm resolves a pending proposal with the cleaner's answer.
// @Summary Confirm or reject a proposal
// @Description Apply the cleaner's accept/reject answer. A rejection returns alternate cleaners for reassignment.
// @Tags Assignment
// @Accept json
// @Produce json
// @Param request body dto.ConfirmRequest true "Confirm Request"
// @Success 200 {object} dto.ConfirmResponse "Confirmation result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/assignments/confirm [post]
// @Security BearerAuth
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Confirm")
	defer scope.End()

	req := dto.ConfirmRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.Confirm(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm assignment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, result)
}

// GetMessages lists the exception channel for manager triage.
// @Summary List exception messages
// @Description Retrieve abandon messages oldest first with derived actionability.
// @Tags Assignment
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetMessagesResponse "Exception messages"
// @Failure 500 {object} response.Error
// @Router /v1/messages [get]
// @Security BearerAuth
func (handler *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMessages")
	defer scope.End()

	messages, err := handler.service.GetMessages(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, messages)
}

// GetSession returns the caller's cleaning session.
// @Summary Get my session
// @Description Retrieve the caller's selected rooms and session timers.
// @Tags Session
// @Accept json
// @Produce json
// @Success 200 {object} dto.SessionResponse "Session"
// @Failure 500 {object} response.Error
// @Router /v1/sessions/me [get]
// @Security BearerAuth
func (handler *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSession")
	defer scope.End()

	session, err := handler.service.GetSession(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// Select adds rooms to the caller's working set.
// @Summary Select rooms
// @Description Pick up rooms for cleaning. The batch is all-or-nothing.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.SelectRequest true "Select Request"
// @Success 200 {object} dto.SessionResponse "Updated session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/sessions/select [post]
// @Security BearerAuth
func (handler *Handler) Select(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Select")
	defer scope.End()

	req := dto.SelectRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Select(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to select rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// Deselect drops a room picked up by mistake.
// @Summary Deselect a room
// @Description Drop a selected room before cleaning starts.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.DeselectRequest true "Deselect Request"
// @Success 200 {object} dto.SessionResponse "Updated session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/sessions/deselect [post]
// @Security BearerAuth
func (handler *Handler) Deselect(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Deselect")
	defer scope.End()

	req := dto.DeselectRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Deselect(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deselect room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// Proceed starts cleaning every selected room at once.
// @Summary Proceed with cleaning
// @Description Move every selected room into cleaning with one shared start timestamp.
// @Tags Session
// @Accept json
// @Produce json
// @Success 200 {object} dto.SessionResponse "Updated session"
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/sessions/proceed [post]
// @Security BearerAuth
func (handler *Handler) Proceed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Proceed")
	defer scope.End()

	session, err := handler.service.Proceed(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to proceed with cleaning")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}

// Abandon backs out of a running clean and leaves an exception message.
// @Summary Abandon a room mid-clean
// @Description Return the room to checkout and record an exception message for the manager.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.AbandonRequest true "Abandon Request"
// @Success 200 {object} dto.MessageResponse "Exception message"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/sessions/abandon [post]
// @Security BearerAuth
func (handler *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Abandon")
	defer scope.End()

	req := dto.AbandonRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.Abandon(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to abandon room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, message)
}

// Finish closes out a fully cleaned room.
// @Summary Finish a room
// @Description Snapshot the checklist into a cleaning record and mark the room available. Requires every visible task complete.
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.FinishRequest true "Finish Request"
// @Success 200 {object} dto.SessionResponse "Updated session"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/sessions/finish [post]
// @Security BearerAuth
func (handler *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Finish")
	defer scope.End()

	req := dto.FinishRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Finish(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to finish room")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, session)
}
