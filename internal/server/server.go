// Package server wires repositories, services and handlers into the router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/auth"
	"github.com/BuzzLyutic/tasklists/internal/config"
	"github.com/BuzzLyutic/tasklists/internal/handler"
	"github.com/BuzzLyutic/tasklists/internal/metrics"
	appmw "github.com/BuzzLyutic/tasklists/internal/middleware"
	"github.com/BuzzLyutic/tasklists/internal/repo"
	"github.com/BuzzLyutic/tasklists/internal/service"
	"github.com/BuzzLyutic/tasklists/internal/view"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

type Deps struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Redis  *redis.Client // nil disables rate limiting
	Issuer *auth.Issuer
	Logger *zap.Logger
}

func NewRouter(d Deps) (http.Handler, error) {
	renderer, err := view.NewRenderer(d.Logger)
	if err != nil {
		return nil, err
	}

	listRepo := repo.NewListRepo(d.Pool)
	taskRepo := repo.NewTaskRepo(d.Pool)

	listService := service.NewListService(listRepo, d.Logger)
	taskService := service.NewTaskService(taskRepo, listRepo, d.Logger)
	dashboardService := service.NewDashboardService(listRepo, taskRepo)

	pages := handler.NewPageHandler(listService, taskService, dashboardService, renderer, d.Logger, d.Config.SecureCookies)
	lists := handler.NewListHandler(listService, d.Logger)
	tasks := handler.NewTaskHandler(taskService, d.Logger)
	stats := handler.NewStatsHandler(dashboardService, d.Logger)
	health := handler.NewHealthHandler(d.Pool, d.Logger)
	session := handler.NewSessionHandler(d.Issuer, pages, d.Config.SecureCookies)

	pageLimiter := appmw.NewRateLimiter(d.Redis, d.Config.RateLimit, d.Config.RateWindow, d.Logger)
	pageLimiter.Reject = pages.RateLimited
	apiLimiter := appmw.NewRateLimiter(d.Redis, d.Config.RateLimit, d.Config.RateWindow, d.Logger)
	apiLimiter.Reject = func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusTooManyRequests, "rate limit exceeded")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(appmw.MethodOverride)

	r.Get("/health", health.Liveness)
	r.Get("/readyz", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/session", session.Start)

	r.Group(func(r chi.Router) {
		r.Use(d.Issuer.Middleware(pages.Unauthorized))
		r.Use(pageLimiter.Limit)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		})
		r.Get("/dashboard", pages.Dashboard)

		r.Get("/lists", pages.Lists)
		r.Post("/lists", pages.StoreList)
		r.Put("/lists/{id}", pages.UpdateList)
		r.Delete("/lists/{id}", pages.DestroyList)

		r.Get("/tasks", pages.Tasks)
		r.Post("/tasks", pages.StoreTask)
		r.Put("/tasks/{id}", pages.UpdateTask)
		r.Delete("/tasks/{id}", pages.DestroyTask)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(d.Issuer.Middleware(handler.Unauthorized))
		r.Use(apiLimiter.Limit)

		r.Get("/lists", lists.List)
		r.Post("/lists", lists.Create)
		r.Put("/lists/{id}", lists.Update)
		r.Delete("/lists/{id}", lists.Delete)

		r.Get("/tasks", tasks.List)
		r.Post("/tasks", tasks.Create)
		r.Patch("/tasks/{id}", tasks.Update)
		r.Delete("/tasks/{id}", tasks.Delete)

		r.Get("/stats", stats.Get)
	})

	return r, nil
}
