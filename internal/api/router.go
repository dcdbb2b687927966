package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/isdelr/job-portal-be/internal/api/handlers"
	"github.com/isdelr/job-portal-be/internal/apperr"
	"github.com/isdelr/job-portal-be/internal/auth"
	"github.com/isdelr/job-portal-be/internal/config"
	"github.com/isdelr/job-portal-be/internal/services"
)

// Tokens issues and verifies session tokens.
type Tokens interface {
	auth.Verifier
	handlers.TokenIssuer
}

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	userService services.UserServiceProvider,
	jobService services.JobServiceProvider,
	tokens Tokens,
	store handlers.Pinger,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	userHandler := handlers.NewUserHandler(userService, tokens)
	jobHandler := handlers.NewJobHandler(jobService, cfg.JobReadRequiresOwner)
	testHandler := handlers.NewTestHandler()
	healthHandler := handlers.NewHealthHandler(store)

	guard := auth.Guard(tokens)

	r.Get("/healthz", healthHandler.Check)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(guard)
			r.Put("/update-user", userHandler.Update)
			r.Get("/get-user-details", userHandler.Details)
			r.Put("/change-password", userHandler.ChangePassword)
		})

		r.Route("/job", func(r chi.Router) {
			// get-job is readable by anyone holding a job id unless
			// JOB_READ_REQUIRES_OWNER is set. Every other job route is owner scoped.
			if cfg.JobReadRequiresOwner {
				r.With(guard).Get("/get-job/{id}", jobHandler.Get)
			} else {
				r.Get("/get-job/{id}", jobHandler.Get)
			}

			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Post("/create-job", jobHandler.Create)
				r.Get("/get-all-jobs", jobHandler.List)
				r.Patch("/update-job/{id}", jobHandler.Update)
				r.Delete("/delete-job/{id}", jobHandler.Delete)
				r.Get("/job-stats", jobHandler.Stats)
			})
		})

		r.Route("/test", func(r chi.Router) {
			r.Get("/", testHandler.Ping)
			r.With(guard).Post("/test-post", testHandler.Echo)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperr.Write(w, r, apperr.NotFound("Route not found"))
	})

	return r
}
