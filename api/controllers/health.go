package controllers

import (
	"net/http"

	"github.com/fatimaskitchen/storefront/api/responses"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

const envHeader = "X-Storefront-Env"

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the snapshot backend answers.
func HealthReady(env string, storage Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, env)
		if storage != nil {
			if err := storage.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot storage unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
