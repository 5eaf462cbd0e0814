package router

import (
	"studio/internal/handlers/artist"
	"studio/internal/handlers/booking"
	"studio/internal/handlers/coupon"
	"studio/internal/handlers/settlement"
	"studio/internal/handlers/slot"
	"studio/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Artist     artist.Handler
	Slot       slot.Handler
	Coupon     coupon.Handler
	Booking    booking.Handler
	Settlement settlement.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AuthRole
}

// SetupRoutes mounts every domain under /v1. APIKey runs first so internal
// callers can bypass Auth and RBAC.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.Middleware.APIKey)
		routerGroup.Use(r.Middleware.Auth)
		routerGroup.Use(r.Middleware.RBAC)

		r.DomainHandlers.Artist.Router(routerGroup)
		r.DomainHandlers.Slot.Router(routerGroup)
		r.DomainHandlers.Coupon.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Settlement.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, middleware middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     middleware,
	}
}
