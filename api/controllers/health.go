package controllers

import (
	"context"
	"net/http"

	"github.com/maxscharwath/tacocrew-sub004/api/responses"
	"github.com/maxscharwath/tacocrew-sub004/pkg/config"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
)

// Pinger is the readiness probe surface shared by the db and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TacoCrew-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness of the backing stores. Each dependency is
// probed individually so operators can see which one is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TacoCrew-Env", cfg.App.Env)

		statuses := map[string]string{}
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "skipped"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				statuses[name] = "down"
				healthy = false
				continue
			}
			statuses[name] = "up"
		}

		if !healthy {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "dependency not ready").WithDetails(statuses))
			return
		}
		responses.WriteSuccess(w, statuses)
	}
}
