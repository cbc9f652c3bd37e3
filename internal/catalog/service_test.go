package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
)

func testProducts() []Product {
	return []Product{
		{
			Name:       "Caneta",
			Category:   "Papelaria",
			Stock:      10,
			HasStock:   true,
			FinalPrice: decimal.RequireFromString("12.50"),
		},
		{
			Name:       "Caderno",
			Category:   "Papelaria",
			FinalPrice: decimal.RequireFromString("1250"),
		},
	}
}

func TestServiceGet(t *testing.T) {
	t.Parallel()

	svc, err := NewService(testProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	product, err := svc.Get(context.Background(), "Caneta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Caneta" || !product.HasStock {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestServiceGetUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, err := NewService(testProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Get(context.Background(), "Borracha")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceListViews(t *testing.T) {
	t.Parallel()

	svc, err := NewService(testProducts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views := svc.List(context.Background())
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	if views[0].FinalPriceDisplay != "12,50" {
		t.Fatalf("unexpected display price %q", views[0].FinalPriceDisplay)
	}
	if views[0].Stock == nil || *views[0].Stock != 10 {
		t.Fatalf("expected stock 10, got %v", views[0].Stock)
	}
	if views[1].Stock != nil {
		t.Fatalf("stockless product must omit stock, got %v", views[1].Stock)
	}
	if views[1].FinalPriceDisplay != "1.250" {
		t.Fatalf("unexpected display price %q", views[1].FinalPriceDisplay)
	}
}

func TestNewServiceRequiresProducts(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}
