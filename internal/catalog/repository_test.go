package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "produtos.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalogPrecomputedFinalPrice(t *testing.T) {
	path := writeCatalog(t, `Nome do Produto,Categoria,Descrição,Estoque Disponível,Preço Base (R$),Imposto de Importação (%),ICMS (%),IPI (%),Preço Final c/ Impostos (R$)
Caneta,Papelaria,Caneta azul,10,10.00,10,10,5,12.50
Caderno,Papelaria,Caderno 96 folhas,5,20.00,10,10,5,25.00
`)

	products, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, products, 2)

	caneta := products[0]
	assert.Equal(t, "Caneta", caneta.Name)
	assert.Equal(t, "Papelaria", caneta.Category)
	assert.True(t, caneta.HasStock)
	assert.Equal(t, 10, caneta.Stock)
	assert.True(t, caneta.FinalPrice.Equal(decimal.RequireFromString("12.50")), "final price %s", caneta.FinalPrice)
	assert.True(t, caneta.TaxPercent.Equal(decimal.RequireFromString("25")))
}

func TestLoadCatalogComputesFinalPriceFromTaxes(t *testing.T) {
	path := writeCatalog(t, `Nome do Produto,Categoria,Preço Base (R$),Total de Impostos (%)
Lapis,Papelaria,"2,00",25
`)

	products, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, products, 1)

	// 2.00 × 1.25
	assert.True(t, products[0].FinalPrice.Equal(decimal.RequireFromString("2.50")), "final price %s", products[0].FinalPrice)
	assert.False(t, products[0].HasStock)
}

func TestLoadCatalogRepairsInflatedPrices(t *testing.T) {
	path := writeCatalog(t, `Nome do Produto,Categoria,Preço Final c/ Impostos (R$)
Mochila,Acessórios,2503.94
`)

	products, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].FinalPrice.Equal(decimal.RequireFromString("250.394")), "final price %s", products[0].FinalPrice)
}

func TestLoadCatalogDuplicateNamesFirstWins(t *testing.T) {
	path := writeCatalog(t, `Nome do Produto,Categoria,Preço Final c/ Impostos (R$)
Caneta,Papelaria,12.50
Caneta,Escritório,99.00
`)

	products, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Papelaria", products[0].Category)
	assert.True(t, products[0].FinalPrice.Equal(decimal.RequireFromString("12.50")))
}

func TestLoadCatalogParsesBrazilianDisplayPrices(t *testing.T) {
	path := writeCatalog(t, `Nome do Produto,Categoria,Preço Final c/ Impostos (R$)
Notebook,Eletrônicos,"R$ 999,99"
`)

	products, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.True(t, products[0].FinalPrice.Equal(decimal.RequireFromString("999.99")))
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestLoadCatalogEmptyFile(t *testing.T) {
	_, err := LoadCatalog(writeCatalog(t, ""))
	require.Error(t, err)

	_, err = LoadCatalog(writeCatalog(t, "Nome do Produto,Categoria,Preço Base (R$)\n"))
	require.Error(t, err)
}

func TestLoadCatalogMissingRequiredColumns(t *testing.T) {
	_, err := LoadCatalog(writeCatalog(t, "Produto,Preço\nCaneta,10\n"))
	require.Error(t, err)
}
