//go:build wireinject
// +build wireinject

package di

import (
	"eke/config"
	"eke/infras/jwt"
	"eke/infras/kafka"
	"eke/infras/otel"
	"eke/infras/postgres"
	"eke/infras/redis"
	"eke/internal/notification"
	"eke/internal/workers/expiry"
	"eke/permissions"
	"eke/shared/cache"
	"eke/shared/clock"
	"eke/transport/http"
	"eke/transport/http/middleware"
	"eke/transport/http/router"

	bookingRepository "eke/internal/domains/booking/repository"
	bookingService "eke/internal/domains/booking/service"
	listingRepository "eke/internal/domains/listing/repository"
	listingService "eke/internal/domains/listing/service"
	ratingRepository "eke/internal/domains/rating/repository"
	ratingService "eke/internal/domains/rating/service"

	bookingHandler "eke/internal/handlers/booking"
	healthHandler "eke/internal/handlers/health"
	listingHandler "eke/internal/handlers/listing"
	ratingHandler "eke/internal/handlers/rating"

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
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
	notification.New,
)

var listingDomain = wire.NewSet(
	listingRepository.New,
	listingService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var ratingDomain = wire.NewSet(
	ratingRepository.New,
	ratingService.New,
)

var domains = wire.NewSet(
	listingDomain,
	bookingDomain,
	ratingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	listingHandler.New,
	bookingHandler.New,
	ratingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSweeper() *expiry.Worker {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		listingRepository.New,
		bookingDomain,
		wire.Bind(new(expiry.Sweeper), new(bookingService.Booking)),
		expiry.New,
	)

	return &expiry.Worker{}
}
