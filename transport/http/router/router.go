package router

import (
	"resto/internal/handlers/auth"
	"resto/internal/handlers/booking"
	"resto/internal/handlers/gallery"
	"resto/internal/handlers/location"
	"resto/internal/handlers/media"
	"resto/internal/handlers/menu"
	"resto/internal/handlers/partyhall"
	"resto/internal/handlers/review"
	"resto/internal/handlers/user"
	"resto/internal/handlers/videoreview"
	"resto/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	User        user.Handler
	PartyHall   partyhall.Handler
	Booking     booking.Handler
	Menu        menu.Handler
	Gallery     gallery.Handler
	Location    location.Handler
	Review      review.Handler
	VideoReview videoreview.Handler
	Media       media.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	AppMiddleware  middleware.AppMiddleware
}

// SetupRoutes mounts the public site API under /v1 and the back office under /v1/admin.
// Login, booking and review submissions share the submission budget. Availability checks do not.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Group(func(public chi.Router) {
			r.DomainHandlers.PartyHall.Router(public)
			r.DomainHandlers.Booking.Router(public)
			r.DomainHandlers.Menu.Router(public)
			r.DomainHandlers.Gallery.Router(public)
			r.DomainHandlers.Location.Router(public)
			r.DomainHandlers.VideoReview.Router(public)
		})

		routerGroup.Group(func(submissions chi.Router) {
			submissions.Use(r.AppMiddleware.SubmissionLimit)

			r.DomainHandlers.Auth.Router(submissions)
			r.DomainHandlers.Booking.SubmissionRouter(submissions)
			r.DomainHandlers.Review.Router(submissions)
		})

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

			r.DomainHandlers.Auth.SessionRouter(protected)

			protected.Route("/admin", func(admin chi.Router) {
				r.DomainHandlers.User.AdminRouter(admin)
				r.DomainHandlers.PartyHall.AdminRouter(admin)
				r.DomainHandlers.Booking.AdminRouter(admin)
				r.DomainHandlers.Menu.AdminRouter(admin)
				r.DomainHandlers.Gallery.AdminRouter(admin)
				r.DomainHandlers.Location.AdminRouter(admin)
				r.DomainHandlers.Review.AdminRouter(admin)
				r.DomainHandlers.VideoReview.AdminRouter(admin)
				r.DomainHandlers.Media.AdminRouter(admin)
			})
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		AppMiddleware:  appMiddleware,
	}
}
