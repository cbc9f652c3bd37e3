package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andersonseixas/fornecedor-backend/internal/ledger"
	"github.com/andersonseixas/fornecedor-backend/pkg/money"
)

type ledgerReader interface {
	Load(ctx context.Context) ([]ledger.SaleRecord, error)
}

// Summary holds the dashboard roll-up over the whole ledger.
type Summary struct {
	TotalSales     decimal.Decimal
	TotalSurcharge decimal.Decimal
	TotalItems     int
	NetProfit      decimal.Decimal
}

// SummaryView is the display shape of Summary.
type SummaryView struct {
	TotalSales            string `json:"total_sales"`
	TotalSalesDisplay     string `json:"total_sales_display"`
	TotalSurcharge        string `json:"total_surcharge"`
	TotalSurchargeDisplay string `json:"total_surcharge_display"`
	TotalItems            int    `json:"total_items"`
	NetProfit             string `json:"net_profit"`
	NetProfitDisplay      string `json:"net_profit_display"`
}

// SaleView is one ledger row as shown in the dashboard detail table.
type SaleView struct {
	Date             string `json:"date"`
	BuyerName        string `json:"buyer_name"`
	Company          string `json:"company"`
	Email            string `json:"email"`
	Product          string `json:"product"`
	Category         string `json:"category"`
	Quantity         int    `json:"quantity"`
	UnitPriceDisplay string `json:"unit_price_display"`
	LineTotalDisplay string `json:"line_total_display"`
	SurchargeDisplay string `json:"surcharge_display"`
}

// Dashboard is the full dashboard payload: metrics plus detail rows.
type Dashboard struct {
	Summary SummaryView `json:"summary"`
	Sales   []SaleView  `json:"sales"`
}

// Service computes the sales dashboard from the persisted ledger.
type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	repo ledgerReader
}

func NewService(repo ledgerReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	records, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	summary := Aggregate(records)
	views := make([]SaleView, 0, len(records))
	for _, record := range records {
		views = append(views, SaleView{
			Date:             record.Date,
			BuyerName:        record.BuyerName,
			Company:          record.Company,
			Email:            record.Email,
			Product:          record.Product,
			Category:         record.Category,
			Quantity:         record.Quantity,
			UnitPriceDisplay: money.Format(record.UnitPrice),
			LineTotalDisplay: money.Format(record.LineTotal),
			SurchargeDisplay: money.Format(record.SurchargeAmt),
		})
	}

	return &Dashboard{Summary: newSummaryView(summary), Sales: views}, nil
}

// Aggregate rolls the ledger up into the dashboard totals. The ledger
// loader already coerced bad numeric cells to zero, so a damaged row
// dilutes the totals but never fails the aggregation.
func Aggregate(records []ledger.SaleRecord) Summary {
	summary := Summary{
		TotalSales:     decimal.Zero,
		TotalSurcharge: decimal.Zero,
		NetProfit:      decimal.Zero,
	}
	for _, record := range records {
		summary.TotalSales = summary.TotalSales.Add(record.LineTotal)
		summary.TotalSurcharge = summary.TotalSurcharge.Add(record.SurchargeAmt)
		summary.TotalItems += record.Quantity
	}
	summary.NetProfit = summary.TotalSales.Sub(summary.TotalSurcharge)
	return summary
}

func newSummaryView(s Summary) SummaryView {
	return SummaryView{
		TotalSales:            s.TotalSales.StringFixed(2),
		TotalSalesDisplay:     money.Format(s.TotalSales),
		TotalSurcharge:        s.TotalSurcharge.StringFixed(2),
		TotalSurchargeDisplay: money.Format(s.TotalSurcharge),
		TotalItems:            s.TotalItems,
		NetProfit:             s.NetProfit.StringFixed(2),
		NetProfitDisplay:      money.Format(s.NetProfit),
	}
}
