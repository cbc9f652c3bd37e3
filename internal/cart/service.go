package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/andersonseixas/fornecedor-backend/internal/catalog"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/money"
)

type productLoader interface {
	Get(ctx context.Context, name string) (*catalog.Product, error)
}

// Options carries the validation rules that differ between the source
// system's script variants.
type Options struct {
	// EnforceStock rejects quantities above the product's stock. Only
	// applies to products whose catalog variant tracks stock at all.
	EnforceStock bool
	// AllowRemoval enables flagged-line removal.
	AllowRemoval bool
}

// Service exposes the session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Snapshot, error)
	RemoveItems(ctx context.Context, sessionID string, products []string) (*Snapshot, error)
}

type service struct {
	store   *Store
	catalog productLoader
	opts    Options
}

// NewService builds a cart service over the session store and catalog.
func NewService(store *Store, catalogSvc productLoader, opts Options) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &service{store: store, catalog: catalogSvc, opts: opts}, nil
}

// AddItemInput is the payload for adding one product to the cart.
type AddItemInput struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required"`
}

// LineView is the display shape of one cart line.
type LineView struct {
	Product          string `json:"product"`
	Category         string `json:"category"`
	Quantity         int    `json:"quantity"`
	UnitPrice        string `json:"unit_price"`
	UnitPriceDisplay string `json:"unit_price_display"`
	LineTotal        string `json:"line_total"`
	LineTotalDisplay string `json:"line_total_display"`
}

// Snapshot is the cart as returned to callers: lines plus the grand
// total, recomputed from live line data.
type Snapshot struct {
	Lines        []LineView `json:"lines"`
	Total        string     `json:"total"`
	TotalDisplay string     `json:"total_display"`
	Removed      []string   `json:"removed,omitempty"`
}

func (s *service) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return newSnapshot(s.store.Get(sessionID), nil), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Snapshot, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	name := strings.TrimSpace(input.Product)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}

	product, err := s.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.opts.EnforceStock && product.HasStock && input.Quantity > product.Stock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "quantity exceeds available stock").
			WithDetails(map[string]any{"stock": product.Stock})
	}

	c := s.store.Get(sessionID)
	c.Add(Line{
		Product:   product.Name,
		Category:  product.Category,
		Quantity:  input.Quantity,
		UnitPrice: product.FinalPrice,
	})

	return newSnapshot(c, nil), nil
}

func (s *service) RemoveItems(ctx context.Context, sessionID string, products []string) (*Snapshot, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if !s.opts.AllowRemoval {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cart line removal is disabled")
	}
	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one product must be flagged")
	}

	c := s.store.Get(sessionID)
	removed := c.Remove(products...)
	return newSnapshot(c, removed), nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}

func newSnapshot(c *Cart, removed []string) *Snapshot {
	lines := c.Lines()
	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		total := line.LineTotal()
		views = append(views, LineView{
			Product:          line.Product,
			Category:         line.Category,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice.StringFixed(2),
			UnitPriceDisplay: money.Format(line.UnitPrice),
			LineTotal:        total.StringFixed(2),
			LineTotalDisplay: money.Format(total),
		})
	}
	total := c.Total()
	return &Snapshot{
		Lines:        views,
		Total:        total.StringFixed(2),
		TotalDisplay: money.Format(total),
		Removed:      removed,
	}
}
