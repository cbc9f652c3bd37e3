package ledger

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Ledger column headers, fixed by the file contract with the
// spreadsheet consumers of the sales data.
var Header = []string{
	"Data da Compra",
	"Nome do Comprador",
	"Empresa",
	"Email",
	"Produto",
	"Categoria",
	"Quantidade",
	"Valor Unitário (R$)",
	"Valor Total (R$)",
	"Encargo (%)",
	"Encargo (R$)",
}

// SaleRecord is one persisted ledger row. Records are append-only:
// written once at finalize time and never mutated.
type SaleRecord struct {
	Date         string          `json:"date"`
	BuyerName    string          `json:"buyer_name"`
	Company      string          `json:"company"`
	Email        string          `json:"email"`
	Product      string          `json:"product"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	SurchargePct decimal.Decimal `json:"surcharge_pct"`
	SurchargeAmt decimal.Decimal `json:"surcharge_amt"`
}

func (r SaleRecord) row() []string {
	return []string{
		r.Date,
		r.BuyerName,
		r.Company,
		r.Email,
		r.Product,
		r.Category,
		strconv.Itoa(r.Quantity),
		r.UnitPrice.StringFixed(2),
		r.LineTotal.StringFixed(2),
		r.SurchargePct.StringFixed(2),
		r.SurchargeAmt.StringFixed(2),
	}
}
