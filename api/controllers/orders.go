package controllers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andersonseixas/fornecedor-backend/api/responses"
	"github.com/andersonseixas/fornecedor-backend/internal/ledger"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/logger"
)

// OrderFileDownload streams a previously written order file as a CSV
// attachment.
func OrderFileDownload(repo ledger.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger unavailable"))
			return
		}

		name := chi.URLParam(r, "name")
		file, err := repo.OpenOrderFile(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer file.Close()

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if _, err := io.Copy(w, file); err != nil && logg != nil {
			logg.Error(r.Context(), "order_file.stream_failed", err)
		}
	}
}
