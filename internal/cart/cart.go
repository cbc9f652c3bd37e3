package cart

import "github.com/shopspring/decimal"

// Line is one cart entry. Unit price is a snapshot of the product's
// final price at add time and never tracks later catalog changes.
type Line struct {
	Product   string
	Category  string
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal is quantity × unit price.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered set of lines for one session. It is owned by a
// single session and must not be shared across sessions; the store is
// the only place that hands carts out.
type Cart struct {
	lines []Line
}

// Add appends a line.
func (c *Cart) Add(line Line) {
	c.lines = append(c.lines, line)
}

// Remove deletes every line whose product name is in names and returns
// the names that were actually removed, preserving line order.
func (c *Cart) Remove(names ...string) []string {
	if len(names) == 0 || len(c.lines) == 0 {
		return nil
	}
	flagged := make(map[string]struct{}, len(names))
	for _, name := range names {
		flagged[name] = struct{}{}
	}

	var removed []string
	kept := c.lines[:0]
	for _, line := range c.lines {
		if _, ok := flagged[line.Product]; ok {
			removed = append(removed, line.Product)
			continue
		}
		kept = append(kept, line)
	}
	c.lines = kept
	return removed
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total recomputes the grand total from the live lines on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// Clear empties the cart. Called once, after a successful finalize.
func (c *Cart) Clear() {
	c.lines = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
