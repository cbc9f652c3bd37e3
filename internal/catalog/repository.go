package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/andersonseixas/fornecedor-backend/pkg/errors"
	"github.com/andersonseixas/fornecedor-backend/pkg/money"
)

// Catalog column headers. Two source schemas exist: one carries a
// precomputed final price, the other only the base price plus tax
// percentages. Both are accepted.
const (
	colName       = "Nome do Produto"
	colCategory   = "Categoria"
	colDesc       = "Descrição"
	colStock      = "Estoque Disponível"
	colBasePrice  = "Preço Base (R$)"
	colUnitPrice  = "Preço Unitário (R$)"
	colImportTax  = "Imposto de Importação (%)"
	colICMS       = "ICMS (%)"
	colIPI        = "IPI (%)"
	colTotalTax   = "Total de Impostos (%)"
	colFinalPrice = "Preço Final c/ Impostos (R$)"
)

var percentDivisor = decimal.NewFromInt(100)

// LoadCatalog reads the product table from path. A missing, unreadable
// or empty file is a dependency failure: the purchase flow cannot run
// without a catalog. Duplicate product names keep the first occurrence.
func LoadCatalog(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable")
	}
	defer f.Close()

	return parseCatalog(f)
}

func parseCatalog(r io.Reader) ([]Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog is empty")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog header")
	}

	cols := indexColumns(header)
	if err := requireColumns(cols); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog schema invalid")
	}

	seen := map[string]struct{}{}
	var products []Product
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read catalog row")
		}

		name := strings.TrimSpace(cell(row, cols, colName))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		products = append(products, buildProduct(name, row, cols))
	}

	if len(products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog is empty")
	}
	return products, nil
}

func buildProduct(name string, row []string, cols map[string]int) Product {
	p := Product{
		Name:        name,
		Category:    strings.TrimSpace(cell(row, cols, colCategory)),
		Description: strings.TrimSpace(cell(row, cols, colDesc)),
	}

	if _, ok := cols[colStock]; ok {
		p.HasStock = true
		if qty, err := strconv.Atoi(strings.TrimSpace(cell(row, cols, colStock))); err == nil && qty >= 0 {
			p.Stock = qty
		}
	}

	p.BasePrice = priceCell(row, cols, colBasePrice)
	if p.BasePrice.IsZero() {
		p.BasePrice = priceCell(row, cols, colUnitPrice)
	}
	p.TaxPercent = taxPercent(row, cols)

	p.FinalPrice = priceCell(row, cols, colFinalPrice)
	if p.FinalPrice.IsZero() {
		// base × (1 + taxes) when the source did not precompute it
		factor := decimal.NewFromInt(1).Add(p.TaxPercent.Div(percentDivisor))
		p.FinalPrice = money.Round2(p.BasePrice.Mul(factor))
	}
	return p
}

func taxPercent(row []string, cols map[string]int) decimal.Decimal {
	if _, ok := cols[colTotalTax]; ok {
		return numericCell(row, cols, colTotalTax)
	}
	total := decimal.Zero
	for _, col := range []string{colImportTax, colICMS, colIPI} {
		total = total.Add(numericCell(row, cols, col))
	}
	return total
}

// priceCell parses a monetary cell, tolerating Brazilian display
// strings, and applies the stored-times-ten repair heuristic.
func priceCell(row []string, cols map[string]int, col string) decimal.Decimal {
	value, err := money.Parse(cell(row, cols, col))
	if err != nil {
		return decimal.Zero
	}
	return money.Correct(value)
}

func numericCell(row []string, cols map[string]int, col string) decimal.Decimal {
	value, err := money.Parse(cell(row, cols, col))
	if err != nil {
		return decimal.Zero
	}
	return value
}

func cell(row []string, cols map[string]int, col string) string {
	idx, ok := cols[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

func requireColumns(cols map[string]int) error {
	var errs []error
	for _, col := range []string{colName, colCategory} {
		if _, ok := cols[col]; !ok {
			errs = append(errs, fmt.Errorf("missing column %q", col))
		}
	}
	if _, hasFinal := cols[colFinalPrice]; !hasFinal {
		if _, hasBase := cols[colBasePrice]; !hasBase {
			if _, hasUnit := cols[colUnitPrice]; !hasUnit {
				errs = append(errs, fmt.Errorf("missing price column: %q or %q", colFinalPrice, colBasePrice))
			}
		}
	}
	return multierr.Combine(errs...)
}
