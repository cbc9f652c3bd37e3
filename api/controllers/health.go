package controllers

import (
	"net/http"
	"os"

	"github.com/andersonseixas/fornecedor-backend/api/responses"
	catalogsvc "github.com/andersonseixas/fornecedor-backend/internal/catalog"
	"github.com/andersonseixas/fornecedor-backend/pkg/config"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fornecedor-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the catalog is loaded and the
// ledger directory accepts writes.
func HealthReady(cfg *config.Config, catalog catalogsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Fornecedor-Env", cfg.App.Env)

		if catalog == nil {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded"))
			return
		}

		if info, err := os.Stat(cfg.Ledger.Dir); err != nil || !info.IsDir() {
			responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, "ledger directory unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
