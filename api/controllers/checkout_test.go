package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ordersvc "github.com/andersonseixas/fornecedor-backend/internal/orders"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/types"
)

type stubOrderService struct {
	receipt *ordersvc.Receipt
	err     error

	lastSession string
	lastBuyer   types.Buyer
}

func (s *stubOrderService) Finalize(ctx context.Context, sessionID string, buyer types.Buyer) (*ordersvc.Receipt, error) {
	s.lastSession = sessionID
	s.lastBuyer = buyer
	return s.receipt, s.err
}

func TestCheckoutSuccess(t *testing.T) {
	svc := &stubOrderService{receipt: &ordersvc.Receipt{
		File:         "venda_ANA_MARIA_20260831143005.csv",
		Total:        "37.50",
		TotalDisplay: "37,50",
	}}
	handler := Checkout(svc, nil)

	body := `{"name":"Ana Maria","company":"Escritorio Central","email":"ana@example.com"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastSession != "sess-1" {
		t.Fatalf("expected session from context, got %q", svc.lastSession)
	}
	if svc.lastBuyer.Name != "Ana Maria" || svc.lastBuyer.Email != "ana@example.com" {
		t.Fatalf("unexpected buyer %+v", svc.lastBuyer)
	}

	var envelope struct {
		Data ordersvc.Receipt `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.File != "venda_ANA_MARIA_20260831143005.csv" {
		t.Fatalf("unexpected file name %q", envelope.Data.File)
	}
}

func TestCheckoutIncompleteBuyer(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeValidation, "buyer name, company and email are required")}
	handler := Checkout(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", `{"name":"","company":"","email":""}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")}
	handler := Checkout(svc, nil)

	body := `{"name":"Ana","company":"ACME","email":"ana@example.com"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", body))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutLedgerFailure(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeDependency, "could not persist sale")}
	handler := Checkout(svc, nil)

	body := `{"name":"Ana","company":"ACME","email":"ana@example.com"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/checkout", body))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
