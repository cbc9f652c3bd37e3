package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/money"
)

// Product is one catalog row. Loaded once at startup and never mutated.
type Product struct {
	Name        string
	Category    string
	Description string
	// HasStock is false when the source schema has no stock column; in
	// that case Stock is meaningless and quantity is never clamped.
	Stock      int
	HasStock   bool
	BasePrice  decimal.Decimal
	TaxPercent decimal.Decimal
	FinalPrice decimal.Decimal
}

// ProductView is the display shape for catalog listings.
type ProductView struct {
	Name              string `json:"name"`
	Category          string `json:"category"`
	Description       string `json:"description,omitempty"`
	Stock             *int   `json:"stock,omitempty"`
	BasePriceDisplay  string `json:"base_price_display"`
	TaxPercentDisplay string `json:"tax_percent_display"`
	FinalPriceDisplay string `json:"final_price_display"`
	FinalPrice        string `json:"final_price"`
}

// Service exposes read-only catalog lookups.
type Service interface {
	List(ctx context.Context) []ProductView
	Get(ctx context.Context, name string) (*Product, error)
}

type service struct {
	products []Product
	byName   map[string]*Product
}

// NewService indexes the loaded catalog. The slice must be non-empty;
// the loader already guarantees that.
func NewService(products []Product) (Service, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog products required")
	}
	byName := make(map[string]*Product, len(products))
	for i := range products {
		if _, ok := byName[products[i].Name]; !ok {
			byName[products[i].Name] = &products[i]
		}
	}
	return &service{products: products, byName: byName}, nil
}

func (s *service) List(ctx context.Context) []ProductView {
	views := make([]ProductView, 0, len(s.products))
	for i := range s.products {
		views = append(views, newProductView(&s.products[i]))
	}
	return views
}

func (s *service) Get(ctx context.Context, name string) (*Product, error) {
	product, ok := s.byName[name]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func newProductView(p *Product) ProductView {
	view := ProductView{
		Name:              p.Name,
		Category:          p.Category,
		Description:       p.Description,
		BasePriceDisplay:  money.Format(p.BasePrice),
		TaxPercentDisplay: money.Format(p.TaxPercent),
		FinalPriceDisplay: money.Format(p.FinalPrice),
		FinalPrice:        p.FinalPrice.StringFixed(2),
	}
	if p.HasStock {
		stock := p.Stock
		view.Stock = &stock
	}
	return view
}
