package router

import (
	"slotlink/internal/handlers/availability"
	"slotlink/internal/handlers/booking"
	"slotlink/internal/handlers/calendar"
	"slotlink/internal/handlers/link"
	"slotlink/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Link         link.Handler
	Availability availability.Handler
	Calendar     calendar.Handler
	Booking      booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Link.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Booking.PublicRouter(routerGroup, r.AppMiddleware.RateLimit())
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
	}
}
