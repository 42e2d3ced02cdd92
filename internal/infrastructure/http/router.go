package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dastfox/softdesk/internal/infrastructure/http/handlers"
	"github.com/dastfox/softdesk/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	HealthHandler       *handlers.HealthHandler
	UsersHandler        *handlers.UsersHandler
	ProjectsHandler     *handlers.ProjectsHandler
	ContributorsHandler *handlers.ContributorsHandler
	IssuesHandler       *handlers.IssuesHandler
	CommentsHandler     *handlers.CommentsHandler
	RequireJWT          func(http.Handler) http.Handler
	Log                 zerolog.Logger
	Secure              func(http.Handler) http.Handler
	CORS                func(http.Handler) http.Handler
	IPRateLimit         func(http.Handler) http.Handler
	Metrics             bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Post("/signup", cfg.AuthHandler.Signup)
	r.Post("/login", cfg.AuthHandler.Login)

	if cfg.UsersHandler != nil && cfg.RequireJWT != nil {
		r.Route("/users", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/me", cfg.UsersHandler.Me)
		})
	}

	if cfg.RequireJWT != nil {
		r.Route("/projects", func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Get("/", cfg.ProjectsHandler.List)
			r.Post("/", cfg.ProjectsHandler.Create)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", cfg.ProjectsHandler.Get)
				r.Put("/", cfg.ProjectsHandler.Update)
				r.Delete("/", cfg.ProjectsHandler.Delete)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", cfg.ContributorsHandler.List)
					r.Post("/", cfg.ContributorsHandler.Upsert)
					r.Get("/{userID}", cfg.ContributorsHandler.Get)
					r.Delete("/{userID}", cfg.ContributorsHandler.Remove)
				})

				r.Route("/issues", func(r chi.Router) {
					r.Get("/", cfg.IssuesHandler.List)
					r.Post("/", cfg.IssuesHandler.Create)
					r.Route("/{issueID}", func(r chi.Router) {
						r.Get("/", cfg.IssuesHandler.Get)
						r.Put("/", cfg.IssuesHandler.Update)
						r.Delete("/", cfg.IssuesHandler.Delete)

						r.Route("/comments", func(r chi.Router) {
							r.Get("/", cfg.CommentsHandler.List)
							r.Post("/", cfg.CommentsHandler.Create)
							r.Get("/{commentID}", cfg.CommentsHandler.Get)
							r.Put("/{commentID}", cfg.CommentsHandler.Update)
							r.Delete("/{commentID}", cfg.CommentsHandler.Delete)
						})
					})
				})
			})
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
