package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"campusbooking/internal/api"
	"campusbooking/internal/availability"
	"campusbooking/internal/booking"
	"campusbooking/internal/catalog"
	"campusbooking/internal/profile"
	"campusbooking/internal/report"
	"campusbooking/internal/supply"
	"campusbooking/pkg/config"
)

type Dependencies struct {
	Cfg       config.Config
	DB        *pgxpool.Pool
	Publisher booking.Publisher
	// Status serves GET /v1/status; usually the *health.Monitor started in main.
	Status http.Handler
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.CORSMiddleware(api.CORSOptions{
		AllowedOrigins: deps.Cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Dev-User-Id"},
		MaxAgeSeconds:  600,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	profilesRepo := profile.NewRepository(deps.DB)
	bookingRepo := booking.NewRepository(deps.DB)
	bookingHandlers := booking.Handlers{
		Service: booking.NewService(bookingRepo, deps.Publisher),
	}
	catalogHandlers := catalog.Handlers{
		Items:    catalog.NewRepository(deps.DB),
		Bookings: bookingRepo,
		Resolver: availability.Resolver{InclusiveEnd: deps.Cfg.AvailabilityInclusiveEnd},
	}
	reportHandlers := report.Handlers{
		Bookings: report.NewRepository(deps.DB),
		Supplies: supply.NewRepository(deps.DB),
	}

	// v1
	r.Route("/v1", func(r chi.Router) {
		if deps.Status != nil {
			r.Method(http.MethodGet, "/status", deps.Status)
		}

		r.Group(func(r chi.Router) {
			r.Use(api.SessionAuth(deps.Cfg, profilesRepo))

			r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
				api.WriteJSON(w, http.StatusOK, map[string]any{"profile": api.ProfileFromContext(r.Context())})
			})

			// Catalog (read-only)
			r.Get("/rooms", catalogHandlers.Rooms)
			r.Get("/equipment", catalogHandlers.Equipment)
			r.Get("/catalog/bookable", catalogHandlers.Bookable)

			// Bookings
			r.Post("/bookings", bookingHandlers.Submit)
			r.Get("/bookings/mine", bookingHandlers.ListMine)
			r.Get("/bookings/{id}/events", bookingHandlers.Events)

			// Moderation and reports
			r.Group(func(r chi.Router) {
				r.Use(api.RequireRole(profile.RoleModerator, profile.RoleAdmin))

				r.Get("/bookings", bookingHandlers.ListQueue)
				r.Post("/bookings/{id}/approve", bookingHandlers.Approve)
				r.Post("/bookings/{id}/reject", bookingHandlers.Reject)

				r.Get("/reports/bookings", reportHandlers.BookingsReport)
				r.Get("/reports/supplies", reportHandlers.SuppliesReport)
			})
		})
	})

	return r
}
