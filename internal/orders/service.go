package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andersonseixas/fornecedor-backend/internal/cart"
	"github.com/andersonseixas/fornecedor-backend/internal/ledger"
	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/metrics"
	"github.com/andersonseixas/fornecedor-backend/pkg/money"
	"github.com/andersonseixas/fornecedor-backend/pkg/types"
)

// SurchargeRate is the fixed fee applied to every sale's line total.
var SurchargeRate = decimal.RequireFromString("0.20")

var percentFactor = decimal.NewFromInt(100)

type ledgerWriter interface {
	AppendBatch(ctx context.Context, records []ledger.SaleRecord) (string, error)
}

// Service finalizes carts into persisted sale records.
type Service interface {
	Finalize(ctx context.Context, sessionID string, buyer types.Buyer) (*Receipt, error)
}

type service struct {
	carts   *cart.Store
	repo    ledgerWriter
	metrics *metrics.CheckoutMetrics
	policy  string
	now     func() time.Time
}

// NewService wires the finalizer. Metrics may be nil.
func NewService(carts *cart.Store, repo ledgerWriter, m *metrics.CheckoutMetrics, policy string) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{
		carts:   carts,
		repo:    repo,
		metrics: m,
		policy:  policy,
		now:     time.Now,
	}, nil
}

// RecordView is the display shape of one finalized sale line.
type RecordView struct {
	Date             string `json:"date"`
	Product          string `json:"product"`
	Category         string `json:"category"`
	Quantity         int    `json:"quantity"`
	UnitPrice        string `json:"unit_price"`
	LineTotal        string `json:"line_total"`
	SurchargePct     string `json:"surcharge_pct"`
	SurchargeAmt     string `json:"surcharge_amt"`
	LineTotalDisplay string `json:"line_total_display"`
}

// Receipt is returned after a successful finalize: the ledger file the
// order landed in plus the persisted lines.
type Receipt struct {
	File         string       `json:"file"`
	Buyer        types.Buyer  `json:"buyer"`
	Records      []RecordView `json:"records"`
	Total        string       `json:"total"`
	TotalDisplay string       `json:"total_display"`
}

// Finalize validates the buyer, converts the session's cart into sale
// records with the fixed surcharge and appends them as one batch. The
// cart is cleared only after the ledger write succeeds, so a failed
// write can be retried.
func (s *service) Finalize(ctx context.Context, sessionID string, buyer types.Buyer) (*Receipt, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if !buyer.Complete() {
		s.metrics.IncFailure("missing_buyer_info")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "buyer name, company and email are required")
	}

	c := s.carts.Get(sessionID)
	if c.Empty() {
		s.metrics.IncFailure("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	lines := c.Lines()
	date := s.now().Format("2006-01-02")
	records := make([]ledger.SaleRecord, 0, len(lines))
	items := 0
	total := decimal.Zero
	for _, line := range lines {
		lineTotal := line.LineTotal()
		records = append(records, ledger.SaleRecord{
			Date:         date,
			BuyerName:    buyer.Name,
			Company:      buyer.Company,
			Email:        buyer.Email,
			Product:      line.Product,
			Category:     line.Category,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			LineTotal:    lineTotal,
			SurchargePct: SurchargeRate.Mul(percentFactor),
			SurchargeAmt: money.Round2(lineTotal.Mul(SurchargeRate)),
		})
		items += line.Quantity
		total = total.Add(lineTotal)
	}

	start := time.Now()
	file, err := s.repo.AppendBatch(ctx, records)
	if err != nil {
		s.metrics.IncFailure("ledger_write")
		return nil, err
	}
	s.metrics.ObserveWriteDuration(s.policy, time.Since(start))
	s.metrics.ObserveOrder(s.policy, items)

	c.Clear()

	return &Receipt{
		File:         file,
		Buyer:        buyer,
		Records:      newRecordViews(records),
		Total:        total.StringFixed(2),
		TotalDisplay: money.Format(total),
	}, nil
}

func newRecordViews(records []ledger.SaleRecord) []RecordView {
	views := make([]RecordView, 0, len(records))
	for _, record := range records {
		views = append(views, RecordView{
			Date:             record.Date,
			Product:          record.Product,
			Category:         record.Category,
			Quantity:         record.Quantity,
			UnitPrice:        record.UnitPrice.StringFixed(2),
			LineTotal:        record.LineTotal.StringFixed(2),
			SurchargePct:     record.SurchargePct.StringFixed(2),
			SurchargeAmt:     record.SurchargeAmt.StringFixed(2),
			LineTotalDisplay: money.Format(record.LineTotal),
		})
	}
	return views
}
