package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxscharwath/tacocrew-sub004/api/controllers"
	"github.com/maxscharwath/tacocrew-sub004/api/middleware"
	"github.com/maxscharwath/tacocrew-sub004/internal/grouporders"
	"github.com/maxscharwath/tacocrew-sub004/internal/stock"
	"github.com/maxscharwath/tacocrew-sub004/internal/submission"
	"github.com/maxscharwath/tacocrew-sub004/pkg/config"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
	pkgredis "github.com/maxscharwath/tacocrew-sub004/pkg/redis"
)

// Dependencies bundles everything the router wires into handlers.
type Dependencies struct {
	Config            *config.Config
	Logger            *logger.Logger
	DBPinger          controllers.Pinger
	RedisPinger       controllers.Pinger
	IdempotencyStore  pkgredis.IdempotencyStore
	StockService      stock.Service
	GroupOrderService grouporders.Service
	SubmissionService submission.Service
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, map[string]controllers.Pinger{
			"db":    deps.DBPinger,
			"redis": deps.RedisPinger,
		}))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stock", controllers.GetStock(deps.StockService, deps.Logger))

		r.Route("/group-orders", func(r chi.Router) {
			// Attached per-route so the full chi pattern is visible to the
			// idempotency rule matchers (a group-level Use only sees the
			// mount wildcard).
			idempotent := middleware.Idempotency(deps.IdempotencyStore, deps.Logger)

			r.With(idempotent).Post("/", controllers.CreateGroupOrder(deps.GroupOrderService, deps.Logger))
			r.Route("/{groupOrderID}", func(r chi.Router) {
				r.Get("/", controllers.GetGroupOrder(deps.GroupOrderService, deps.Logger))
				r.Patch("/", controllers.UpdateGroupOrder(deps.GroupOrderService, deps.Logger))
				r.Put("/orders", controllers.UpsertParticipantOrder(deps.GroupOrderService, deps.Logger))
				r.With(idempotent).Post("/submit", controllers.SubmitGroupOrder(deps.SubmissionService, deps.Logger))
			})
		})
	})

	return r
}
