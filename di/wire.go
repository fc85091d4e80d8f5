//go:build wireinject
// +build wireinject

package di

import (
	"turndown/config"
	"turndown/infras/jwt"
	"turndown/infras/kafka"
	"turndown/infras/otel"
	"turndown/infras/postgres"
	"turndown/infras/redis"
	"turndown/infras/s3"
	"turndown/internal/snapshot"
	"turndown/internal/store"
	"turndown/shared/cache"
	"turndown/transport/http"
	"turndown/transport/http/middleware"
	"turndown/transport/http/router"

	assignmentHandler "turndown/internal/handlers/assignment"
	catalogHandler "turndown/internal/handlers/catalog"
	cleanerHandler "turndown/internal/handlers/cleaner"
	historyHandler "turndown/internal/handlers/history"
	roomHandler "turndown/internal/handlers/room"

	assignmentRepository "turndown/internal/domains/assignment/repository"
	assignmentService "turndown/internal/domains/assignment/service"
	catalogRepository "turndown/internal/domains/catalog/repository"
	catalogService "turndown/internal/domains/catalog/service"
	cleanerRepository "turndown/internal/domains/cleaner/repository"
	cleanerService "turndown/internal/domains/cleaner/service"
	historyRepository "turndown/internal/domains/history/repository"
	historyService "turndown/internal/domains/history/service"
	roomRepository "turndown/internal/domains/room/repository"
	roomService "turndown/internal/domains/room/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var stateStore = wire.NewSet(
	snapshot.New,
	store.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var cleanerDomain = wire.NewSet(
	cleanerRepository.New,
	cleanerService.New,
)

var assignmentDomain = wire.NewSet(
	assignmentRepository.New,
	assignmentService.New,
)

var historyDomain = wire.NewSet(
	historyRepository.New,
	historyService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	roomDomain,
	cleanerDomain,
	assignmentDomain,
	historyDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	catalogHandler.New,
	cleanerHandler.New,
	assignmentHandler.New,
	historyHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		stateStore,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
