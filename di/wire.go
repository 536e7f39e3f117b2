//go:build wireinject
// +build wireinject

package di

import (
	"resto/config"
	"resto/infras/jwt"
	"resto/infras/kafka"
	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/infras/redis"
	"resto/infras/s3"
	"resto/permissions"
	"resto/shared/cache"
	"resto/transport/event"
	"resto/transport/http"
	"resto/transport/http/middleware"
	"resto/transport/http/router"

	authService "resto/internal/domains/auth/service"
	bookingRepository "resto/internal/domains/booking/repository"
	bookingService "resto/internal/domains/booking/service"
	galleryRepository "resto/internal/domains/gallery/repository"
	galleryService "resto/internal/domains/gallery/service"
	locationRepository "resto/internal/domains/location/repository"
	locationService "resto/internal/domains/location/service"
	mediaService "resto/internal/domains/media/service"
	menuRepository "resto/internal/domains/menu/repository"
	menuService "resto/internal/domains/menu/service"
	partyHallRepository "resto/internal/domains/partyhall/repository"
	partyHallService "resto/internal/domains/partyhall/service"
	reviewRepository "resto/internal/domains/review/repository"
	reviewService "resto/internal/domains/review/service"
	userRepository "resto/internal/domains/user/repository"
	userService "resto/internal/domains/user/service"
	videoReviewRepository "resto/internal/domains/videoreview/repository"
	videoReviewService "resto/internal/domains/videoreview/service"

	authHandler "resto/internal/handlers/auth"
	bookingHandler "resto/internal/handlers/booking"
	galleryHandler "resto/internal/handlers/gallery"
	locationHandler "resto/internal/handlers/location"
	mediaHandler "resto/internal/handlers/media"
	menuHandler "resto/internal/handlers/menu"
	partyHallHandler "resto/internal/handlers/partyhall"
	reviewHandler "resto/internal/handlers/review"
	userHandler "resto/internal/handlers/user"
	videoReviewHandler "resto/internal/handlers/videoreview"

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
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var mediaDomain = wire.NewSet(
	mediaService.New,
)

var partyHallDomain = wire.NewSet(
	partyHallRepository.New,
	partyHallService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var menuDomain = wire.NewSet(
	menuRepository.NewCategory,
	menuRepository.NewItem,
	menuService.New,
)

var contentDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
	locationRepository.New,
	locationService.New,
	reviewRepository.New,
	reviewService.New,
	videoReviewRepository.New,
	videoReviewService.New,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	mediaDomain,
	partyHallDomain,
	bookingDomain,
	menuDomain,
	contentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	partyHallHandler.New,
	bookingHandler.New,
	menuHandler.New,
	galleryHandler.New,
	locationHandler.New,
	reviewHandler.New,
	videoReviewHandler.New,
	mediaHandler.New,
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

func InitializeWorker() *event.BookingNotifier {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		event.NewBookingNotifier,
	)

	return &event.BookingNotifier{}
}

func InitializeAdminUsers() userService.User {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		cache.NewRedisCache,
		userDomain,
	)

	return nil
}
