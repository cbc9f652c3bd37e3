package controllers

import (
	"net/http"

	"github.com/andersonseixas/fornecedor-backend/api/middleware"
	"github.com/andersonseixas/fornecedor-backend/api/responses"
	"github.com/andersonseixas/fornecedor-backend/api/validators"
	ordersvc "github.com/andersonseixas/fornecedor-backend/internal/orders"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/logger"
	"github.com/andersonseixas/fornecedor-backend/pkg/types"
)

type checkoutRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

// Checkout finalizes the caller's cart into the sales ledger. Buyer
// completeness is enforced by the order service, not the decoder, so
// whitespace-only fields are rejected too.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		receipt, err := svc.Finalize(r.Context(), sessionID, types.Buyer{
			Name:    payload.Name,
			Company: payload.Company,
			Email:   payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
