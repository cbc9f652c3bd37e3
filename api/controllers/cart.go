package controllers

import (
	"net/http"

	"github.com/andersonseixas/fornecedor-backend/api/middleware"
	"github.com/andersonseixas/fornecedor-backend/api/responses"
	"github.com/andersonseixas/fornecedor-backend/api/validators"
	cartsvc "github.com/andersonseixas/fornecedor-backend/internal/cart"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/logger"
)

// CartFetch returns the caller's current cart snapshot.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		snapshot, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

type addCartItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required"`
}

// CartAddItem adds a catalog product to the caller's cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		snapshot, err := svc.AddItem(r.Context(), sessionID, cartsvc.AddItemInput{
			Product:  payload.Product,
			Quantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}

type removeCartItemsRequest struct {
	Products []string `json:"products" validate:"required,min=1,dive,required"`
}

// CartRemoveItems drops the named products from the caller's cart.
func CartRemoveItems(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload removeCartItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		snapshot, err := svc.RemoveItems(r.Context(), sessionID, payload.Products)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, snapshot)
	}
}
