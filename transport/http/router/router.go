package router

import (
	"lifeguard/internal/handlers/assignment"
	"lifeguard/internal/handlers/auth"
	"lifeguard/internal/handlers/booking"
	"lifeguard/internal/handlers/pricing"
	"lifeguard/internal/handlers/report"
	"lifeguard/internal/handlers/staff"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth       auth.Handler
	Pricing    pricing.Handler
	Booking    booking.Handler
	Staff      staff.Handler
	Assignment assignment.Handler
	Report     report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)
	r.DomainHandlers.Pricing.Router(router)
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Staff.Router(router)
	r.DomainHandlers.Assignment.Router(router)
	r.DomainHandlers.Report.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
