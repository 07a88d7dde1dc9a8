package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency formats a decimal as a fixed two-place currency string with
// thousands grouping, e.g. $1,234.50. Negative values take a leading minus
// before the symbol: -$1,234.50. The same convention is used by every
// renderer.
func Currency(d decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}

	fixed := d.Abs().StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	intPart, fracPart := fixed[:dot], fixed[dot:]

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)

	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(fracPart)

	return b.String()
}
