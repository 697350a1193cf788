package server

import (
	"net/http"
	"time"

	"washpos-backend/internal/config"
	"washpos-backend/internal/domain"
	"washpos-backend/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	customers handler.CustomerHandler,
	washes handler.WashHandler,
	checkout handler.CheckoutHandler,
	reviews handler.ReviewHandler,
	employees handler.EmployeeHandler,
	attendance handler.AttendanceHandler,
	payroll handler.PayrollHandler,
	kasbon handler.KasBonHandler,
	settings handler.SettingsHandler,
	audit handler.AuditHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	reviews.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// kasir-level (kasir/admin)
		pr.Group(func(kr chi.Router) {
			kr.Use(RequireRole(domain.RoleAdmin, domain.RoleKasir))
			customers.RegisterRoutes(kr)
			washes.RegisterRoutes(kr)
			checkout.RegisterRoutes(kr)
			attendance.RegisterRoutes(kr)
		})
		// admin-level
		pr.Group(func(ar chi.Router) {
			ar.Use(RequireRole(domain.RoleAdmin))
			auth.RegisterAdminRoutes(ar)
			employees.RegisterRoutes(ar)
			payroll.RegisterRoutes(ar)
			kasbon.RegisterRoutes(ar)
			settings.RegisterRoutes(ar)
			audit.RegisterRoutes(ar)
		})
	})

	return r
}
