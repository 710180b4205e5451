package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// VATRate applied on top of the subtotal.
var VATRate = decimal.New(15, -2)

type Line struct {
	Grade     string
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	Total     decimal.Decimal
}

type Totals struct {
	Lines         []Line
	TotalQuantity decimal.Decimal
	Subtotal      decimal.Decimal
	VAT           decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Calculate prices a completed grade/price/quantity set. Pure: safe to call
// for the draft preview and again for the rendered document. Amounts stay
// exact; rounding happens only in Money at display time.
func Calculate(grades []string, unitPrice, quantity map[string]decimal.Decimal) Totals {
	t := Totals{
		TotalQuantity: decimal.Zero,
		Subtotal:      decimal.Zero,
	}
	for _, g := range grades {
		price := unitPrice[g]
		qty := quantity[g]
		line := Line{
			Grade:     g,
			UnitPrice: price,
			Quantity:  qty,
			Total:     price.Mul(qty),
		}
		t.Lines = append(t.Lines, line)
		t.TotalQuantity = t.TotalQuantity.Add(qty)
		t.Subtotal = t.Subtotal.Add(line.Total)
	}
	t.VAT = t.Subtotal.Mul(VATRate)
	t.GrandTotal = t.Subtotal.Add(t.VAT)
	return t
}

func (q Quote) Totals() Totals {
	return Calculate(q.Grades, q.UnitPrice, q.Quantity)
}

// Money renders an amount with two fraction digits and thousands grouping,
// e.g. 54000 -> "54,000.00". Used for quantities too (same display rule).
func Money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	if neg {
		return "-" + b.String() + frac
	}
	return b.String() + frac
}
