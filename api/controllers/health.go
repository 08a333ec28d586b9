package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/boltfit/catalog-backend/api/responses"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
	"github.com/boltfit/catalog-backend/pkg/logger"
)

const (
	apiVersion   = "1.0.0"
	imageStorage = "Firebase Storage"
	readyTimeout = 3 * time.Second
)

// Pinger is a dependency probed by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Root(appName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"message":       "Welcome to " + appName,
			"version":       apiVersion,
			"status":        "active",
			"image_storage": imageStorage,
		})
	}
}

func Health(appName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{
			"status":        "healthy",
			"service":       appName,
			"image_storage": imageStorage,
		})
	}
}

// HealthReady pings every named dependency; nil entries are skipped.
func HealthReady(deps map[string]Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{}
		var failed []string
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = append(failed, name)
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{"dependency": name, "error": err.Error()}), "health.dependency.down")
				}
				continue
			}
			checks[name] = "up"
		}

		if len(failed) > 0 {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
