//go:build wireinject
// +build wireinject

package di

import (
	"lifeguard/config"
	"lifeguard/infras/jwt"
	"lifeguard/infras/kafka"
	"lifeguard/infras/mailer"
	"lifeguard/infras/otel"
	"lifeguard/infras/postgres"
	"lifeguard/infras/redis"
	"lifeguard/infras/s3"
	"lifeguard/permissions"
	"lifeguard/shared/cache"
	"lifeguard/shared/timezone"
	"lifeguard/transport/http"
	"lifeguard/transport/http/middleware"
	"lifeguard/transport/http/router"

	adminRepository "lifeguard/internal/domains/admin/repository"
	assignmentService "lifeguard/internal/domains/assignment/service"
	authService "lifeguard/internal/domains/auth/service"
	bookingRepository "lifeguard/internal/domains/booking/repository"
	bookingService "lifeguard/internal/domains/booking/service"
	notificationService "lifeguard/internal/domains/notification/service"
	pricingService "lifeguard/internal/domains/pricing/service"
	reportService "lifeguard/internal/domains/report/service"
	staffRepository "lifeguard/internal/domains/staff/repository"
	staffService "lifeguard/internal/domains/staff/service"

	assignmentHandler "lifeguard/internal/handlers/assignment"
	authHandler "lifeguard/internal/handlers/auth"
	bookingHandler "lifeguard/internal/handlers/booking"
	pricingHandler "lifeguard/internal/handlers/pricing"
	reportHandler "lifeguard/internal/handlers/report"
	staffHandler "lifeguard/internal/handlers/staff"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewClock,
)

var repositories = wire.NewSet(
	bookingRepository.New,
	staffRepository.New,
	adminRepository.New,
)

var domains = wire.NewSet(
	pricingService.New,
	notificationService.NewKafkaNotifier,
	bookingService.New,
	staffService.New,
	assignmentService.New,
	reportService.New,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	staffHandler.New,
	assignmentHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeMailer() *notificationService.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		mailer.New,
		notificationService.NewEmailSender,
		notificationService.NewConsumer,
	)

	return &notificationService.Consumer{}
}
