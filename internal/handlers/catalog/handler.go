package catalog

import (
	"encoding/json"
	"net/http"
	"turndown/infras/otel"
	"turndown/internal/domains/catalog/model/dto"
	"turndown/internal/domains/catalog/service"
	"turndown/shared/constant"
	"turndown/shared/failure"
	"turndown/transport/http/middleware"
	"turndown/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Catalog
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Catalog, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/catalog", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCatalog)

		routerGroup.Group(func(manager chi.Router) {
			manager.Use(handler.middleware.RequireRole(constant.RoleManager))
			manager.Put("/", handler.IngestCatalog)
		})
	})
}

// GetCatalog returns the current merged task catalog.
// @Summary Get the task catalog
// @Description Retrieve the versioned task catalog with ordered categories.
// @Tags Catalog
// @Accept json
// @Produce json
// @Success 200 {object} dto.CatalogResponse "Task catalog"
// @Failure 500 {object} response.Error
// @Router /v1/catalog [get]
// @Security BearerAuth
func (handler *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCatalog")
	defer scope.End()

	catalog, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get catalog")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, catalog)
}

// IngestCatalog replaces the catalog from the manager's task-list feed.
// @Summary Ingest a task-list feed
// @Description Overlay the feed on the built-in catalog and bump the version. Accepts both the object shape and the legacy bare-array shape per category.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.Feed true "Task-list feed"
// @Success 200 {object} dto.CatalogResponse "Merged catalog"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/catalog [put]
// @Security BearerAuth
func (handler *Handler) IngestCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IngestCatalog")
	defer scope.End()

	feed := dto.Feed{}
	if err := json.NewDecoder(r.Body).Decode(&feed); err != nil {
		err = failure.BadRequestFromString("failed to decode task-list feed: " + err.Error())
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	catalog, err := handler.service.Ingest(ctx, feed)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to ingest catalog")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Catalog ingested by user " + user)

	response.WithJSON(w, http.StatusOK, catalog)
}
