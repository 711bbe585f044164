package http

import (
	"net/http"

	"github.com/employee-records-api/internal/application/auth"
	"github.com/employee-records-api/internal/application/employee"
	fileapp "github.com/employee-records-api/internal/application/file"
	"github.com/employee-records-api/internal/config"
	"github.com/employee-records-api/internal/transport/http/handler"
	appmiddleware "github.com/employee-records-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to the public PIN endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	fileSvc := fileapp.NewService(deps.S3Store, deps.FileRepo)
	employeeSvc := employee.NewService(deps.EmployeeRepo)
	authSvc := auth.NewService(deps.PinStore, deps.Notifier, deps.JWTProvider)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	employeeH := handler.NewEmployeeHandler(employeeSvc, fileSvc)
	fileH := handler.NewFileHandler(fileSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health-check/ping", healthH.Ping)
	r.Route("/api/auth", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/request-pin", authH.RequestPin)
		r.With(sensitiveRL.Limit).Post("/verify-pin", authH.VerifyPin)
	})

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {
		r.Use(authMw)

		r.Post("/employees", employeeH.Create)
		r.Get("/employees", employeeH.List)
		r.Get("/employees/{id}", employeeH.Get)
		r.Put("/employees/{id}", employeeH.Update)
		r.Delete("/employees/{id}", employeeH.Delete)

		r.Get("/files/{id}", fileH.Download)
		r.Delete("/files/{id}", fileH.Delete)
	})

	return r
}
