package controllers

import (
	"net/http"

	"github.com/andersonseixas/fornecedor-backend/api/responses"
	analyticssvc "github.com/andersonseixas/fornecedor-backend/internal/analytics"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/logger"
)

// DashboardFetch aggregates every ledger record into sales totals.
func DashboardFetch(svc analyticssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		dashboard, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboard)
	}
}
