//go:build wireinject
// +build wireinject

package di

import (
	"studio/config"
	"studio/infras/jwt"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/infras/redis"
	"studio/infras/s3"
	"studio/internal/domains/commission"
	"studio/permissions"
	"studio/shared/cache"
	"studio/shared/timezone"
	"studio/transport/http"
	"studio/transport/http/middleware"
	"studio/transport/http/router"

	artistRepository "studio/internal/domains/artist/repository"
	artistService "studio/internal/domains/artist/service"
	bookingRepository "studio/internal/domains/booking/repository"
	bookingService "studio/internal/domains/booking/service"
	couponRepository "studio/internal/domains/coupon/repository"
	couponService "studio/internal/domains/coupon/service"
	settlementRepository "studio/internal/domains/settlement/repository"
	settlementService "studio/internal/domains/settlement/service"
	settlementValidator "studio/internal/domains/settlement/validator"
	slotRepository "studio/internal/domains/slot/repository"
	slotService "studio/internal/domains/slot/service"

	artistHandler "studio/internal/handlers/artist"
	bookingHandler "studio/internal/handlers/booking"
	couponHandler "studio/internal/handlers/coupon"
	settlementHandler "studio/internal/handlers/settlement"
	slotHandler "studio/internal/handlers/slot"

	settlementWorker "studio/internal/workers/settlement"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	jwt.New,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
	commission.NewPolicyFromConfig,
)

var artistDomain = wire.NewSet(
	artistRepository.New,
	artistService.New,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var couponDomain = wire.NewSet(
	couponRepository.New,
	couponService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var settlementDomain = wire.NewSet(
	settlementRepository.New,
	settlementRepository.NewJob,
	settlementValidator.New,
	settlementService.New,
)

var domains = wire.NewSet(
	artistDomain,
	slotDomain,
	couponDomain,
	bookingDomain,
	settlementDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	artistHandler.New,
	slotHandler.New,
	couponHandler.New,
	bookingHandler.New,
	settlementHandler.New,
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

func InitializeWorker() *WorkerApp {
	wire.Build(
		config.Get,
		infrastructures,
		cache.NewRedisCache,
		timezone.NewClock,
		artistRepository.New,
		bookingRepository.New,
		couponDomain,
		settlementDomain,
		settlementWorker.New,
		wire.Struct(new(WorkerApp), "*"),
	)

	return &WorkerApp{}
}
