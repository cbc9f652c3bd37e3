package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andersonseixas/fornecedor-backend/api/middleware"
	cartsvc "github.com/andersonseixas/fornecedor-backend/internal/cart"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
)

type stubCartService struct {
	snapshot *cartsvc.Snapshot
	err      error

	lastSession string
	lastInput   cartsvc.AddItemInput
	lastRemoved []string
}

func (s *stubCartService) Get(ctx context.Context, sessionID string) (*cartsvc.Snapshot, error) {
	s.lastSession = sessionID
	return s.snapshot, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, input cartsvc.AddItemInput) (*cartsvc.Snapshot, error) {
	s.lastSession = sessionID
	s.lastInput = input
	return s.snapshot, s.err
}

func (s *stubCartService) RemoveItems(ctx context.Context, sessionID string, products []string) (*cartsvc.Snapshot, error) {
	s.lastSession = sessionID
	s.lastRemoved = products
	return s.snapshot, s.err
}

func sessionRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "sess-1"))
}

func TestCartFetchSuccess(t *testing.T) {
	svc := &stubCartService{snapshot: &cartsvc.Snapshot{
		Lines:        []cartsvc.LineView{{Product: "Caneta", Quantity: 3, LineTotal: "37.50"}},
		Total:        "37.50",
		TotalDisplay: "37,50",
	}}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastSession != "sess-1" {
		t.Fatalf("expected session from context, got %q", svc.lastSession)
	}

	var envelope struct {
		Data cartsvc.Snapshot `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalDisplay != "37,50" {
		t.Fatalf("unexpected total display %q", envelope.Data.TotalDisplay)
	}
}

func TestCartAddItemPassesPayload(t *testing.T) {
	svc := &stubCartService{snapshot: &cartsvc.Snapshot{Total: "37.50"}}
	handler := CartAddItem(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"product":"Caneta","quantity":3}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastInput.Product != "Caneta" || svc.lastInput.Quantity != 3 {
		t.Fatalf("unexpected input %+v", svc.lastInput)
	}
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	svc := &stubCartService{}
	handler := CartAddItem(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"product":"Caneta","quantity":3,"extra":true}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemMissingProduct(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"quantity":3}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemStockConflict(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeConflict, "quantity exceeds available stock")}
	handler := CartAddItem(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", `{"product":"Caneta","quantity":99}`))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestCartRemoveItemsForwardsNames(t *testing.T) {
	svc := &stubCartService{snapshot: &cartsvc.Snapshot{Removed: []string{"Caneta"}}}
	handler := CartRemoveItems(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodDelete, "/api/v1/cart/items", `{"products":["Caneta"]}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.lastRemoved) != 1 || svc.lastRemoved[0] != "Caneta" {
		t.Fatalf("unexpected removal names %v", svc.lastRemoved)
	}
}

func TestCartRemoveItemsDisabled(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeForbidden, "item removal is disabled")}
	handler := CartRemoveItems(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodDelete, "/api/v1/cart/items", `{"products":["Caneta"]}`))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCartRemoveItemsEmptyList(t *testing.T) {
	handler := CartRemoveItems(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, sessionRequest(http.MethodDelete, "/api/v1/cart/items", `{"products":[]}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
