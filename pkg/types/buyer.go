package types

import "strings"

// Buyer identifies who a finalized order is billed to. All three fields
// are required before an order can be written to the ledger.
type Buyer struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

// Complete reports whether every buyer field carries a value.
func (b Buyer) Complete() bool {
	return strings.TrimSpace(b.Name) != "" &&
		strings.TrimSpace(b.Company) != "" &&
		strings.TrimSpace(b.Email) != ""
}
