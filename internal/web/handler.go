// Package web wires the gateway's HTTP surface: session endpoints, the
// traveller-facing storefront, and the guarded admin console, all
// backed by the upstream API clients.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wisata/internal/api"
	"wisata/internal/auth"
	"wisata/internal/auth/guard"
	"wisata/internal/auth/models"
	"wisata/internal/catalog"
	"wisata/internal/platform/health"
	"wisata/internal/platform/middleware"
	"wisata/internal/storefront"
)

// Config carries the wired dependencies for the HTTP surface.
type Config struct {
	Logger  *slog.Logger
	Manager *auth.Manager
	Flow    *auth.Flow
	Guard   *guard.Guard

	Dashboard  *api.DashboardClient
	Tours      *catalog.Controller[api.Tour, api.TourInput]
	Activities *catalog.Controller[api.Activity, api.ActivityInput]
	Rentals    *catalog.Controller[api.Rental, api.RentalInput]

	TourBrowser     *storefront.Browser[api.Tour]
	ActivityBrowser *storefront.Browser[api.Activity]
	RentalBrowser   *storefront.Browser[api.Rental]
	Home            *storefront.Home

	Health         *health.Handler
	MetricsHandler http.Handler
	RequestTimeout time.Duration
}

// Handler is the gateway's HTTP surface.
type Handler struct {
	cfg Config
	log *slog.Logger
}

// New creates the handler. The zero request timeout defaults to 60s.
func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	return &Handler{cfg: cfg, log: cfg.Logger}
}

// Router builds the route tree. Public storefront routes are open; the
// home aggregate and the account pages sit behind the session guard;
// the admin console additionally demands the admin role, with the
// verification requirement waived for admins.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.log))
	r.Use(middleware.Timeout(h.cfg.RequestTimeout))

	if h.cfg.Health != nil {
		h.cfg.Health.Register(r)
	}
	if h.cfg.MetricsHandler != nil {
		r.Handle("/metrics", h.cfg.MetricsHandler)
	}

	// Session endpoints. Sign-in and code resend are open by nature;
	// verification demands a session but is exempt from its own
	// redirect.
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
	r.Post("/resend-otp", h.handleResendOTP)
	r.Group(func(r chi.Router) {
		r.Use(h.cfg.Guard.Protect(guard.Requirement{RequireVerification: true}))
		r.Post("/verify-email", h.handleVerifyEmail)
		r.Get("/verify-email", h.handleVerifyEmailStatus)
	})

	// Traveller storefront, no session required.
	r.Get("/tour-packages", listPublic(h.cfg.TourBrowser))
	r.Get("/tour-packages/{slug}", detailPublic(h.cfg.TourBrowser))
	r.Get("/activity-packages", listPublic(h.cfg.ActivityBrowser))
	r.Get("/activity-packages/{slug}", detailPublic(h.cfg.ActivityBrowser))
	r.Get("/rental-packages", listPublic(h.cfg.RentalBrowser))
	r.Get("/rental-packages/{slug}", detailPublic(h.cfg.RentalBrowser))

	// The home aggregate greets signed-in, verified travellers.
	r.Group(func(r chi.Router) {
		r.Use(h.cfg.Guard.Protect(guard.Requirement{RequireVerification: true}))
		r.Get("/", h.handleHome)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.cfg.Guard.Protect(guard.Requirement{Roles: []models.Role{models.RoleUser}}))
		r.Get("/my-bookings", h.handleMyBookings)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.cfg.Guard.Protect(guard.Requirement{}))
		r.Get("/notifications", h.handleNotifications)
		r.Get("/settings", h.handleSettings)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.cfg.Guard.Protect(guard.Requirement{
			Roles:               []models.Role{models.RoleAdmin},
			RequireVerification: false,
		}))
		r.Get("/", h.handleDashboard)
		r.Get("/dashboard", h.handleDashboard)

		mountResource(r, "/tours", h.cfg.Tours, parseTourInput)
		mountResource(r, "/activities", h.cfg.Activities, parseActivityInput)
		mountResource(r, "/rentals", h.cfg.Rentals, parseRentalInput)
	})

	return r
}
