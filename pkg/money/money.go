// Package money renders and parses Brazilian-locale currency strings
// and carries the catalog's price-repair heuristic. All arithmetic is
// done on decimal values; strings exist only at the display and
// flat-file boundaries.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	oneThousand = decimal.NewFromInt(1000)
	ten         = decimal.NewFromInt(10)
)

// Format renders a value with `.` thousands separators, `,` as the
// decimal separator and two decimal digits. A trailing ",00" is
// stripped, so integer amounts render without a decimal part.
func Format(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	grouped := groupThousands(parts[0])

	out := grouped + "," + parts[1]
	out = strings.TrimSuffix(out, ",00")
	if negative {
		out = "-" + out
	}
	return out
}

// Parse is the inverse of Format. It tolerates an optional "R$" prefix
// and plain already-numeric strings ("37.50"). A dot followed by
// exactly three digits and no comma is read as a thousands separator,
// which keeps Format round-trippable for integer amounts ("1.000").
func Parse(display string) (decimal.Decimal, error) {
	s := strings.TrimSpace(display)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty currency value")
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		return decimal.NewFromString(s)
	}

	if dot := strings.LastIndex(s, "."); dot >= 0 {
		if len(s)-dot-1 == 3 {
			// "1.000" / "2.500.000": thousands groups, no decimals.
			return decimal.NewFromString(strings.ReplaceAll(s, ".", ""))
		}
	}

	return decimal.NewFromString(s)
}

// Correct repairs a known data-entry defect where some source prices
// were stored multiplied by ten. Values above 1000 are divided by ten
// and the result is kept only when it lands back under 1000. This is a
// lossy heuristic tied to the catalog's value range, not a general
// currency rule.
func Correct(value decimal.Decimal) decimal.Decimal {
	if !value.GreaterThan(oneThousand) {
		return value
	}
	repaired := value.Div(ten)
	if repaired.LessThan(oneThousand) {
		return repaired
	}
	return value
}

// Round2 rounds half away from zero to two decimal places, the rounding
// used for every persisted monetary amount.
func Round2(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
