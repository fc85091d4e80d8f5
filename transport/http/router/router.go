package router

import (
	"turndown/internal/handlers/assignment"
	"turndown/internal/handlers/catalog"
	"turndown/internal/handlers/cleaner"
	"turndown/internal/handlers/history"
	"turndown/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room       room.Handler
	Catalog    catalog.Handler
	Cleaner    cleaner.Handler
	Assignment assignment.Handler
	History    history.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Cleaner.Router(routerGroup)
		r.DomainHandlers.Assignment.Router(routerGroup)
		r.DomainHandlers.History.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
