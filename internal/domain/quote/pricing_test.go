package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateTwoGrades(t *testing.T) {
	grades := []string{"C-25", "C-30"}
	prices := map[string]decimal.Decimal{"C-25": dec("3500"), "C-30": dec("3800")}
	quantities := map[string]decimal.Decimal{"C-25": dec("10"), "C-30": dec("5")}

	totals := Calculate(grades, prices, quantities)

	require.Len(t, totals.Lines, 2)
	assert.Equal(t, "35,000.00", Money(totals.Lines[0].Total))
	assert.Equal(t, "19,000.00", Money(totals.Lines[1].Total))
	assert.Equal(t, "54,000.00", Money(totals.Subtotal))
	assert.Equal(t, "8,100.00", Money(totals.VAT))
	assert.Equal(t, "62,100.00", Money(totals.GrandTotal))
	assert.Equal(t, "15.00", Money(totals.TotalQuantity))
}

func TestCalculateLineOrderFollowsGrades(t *testing.T) {
	grades := []string{"C-40", "C-15"}
	prices := map[string]decimal.Decimal{"C-15": dec("1"), "C-40": dec("2")}
	quantities := map[string]decimal.Decimal{"C-15": dec("1"), "C-40": dec("1")}

	totals := Calculate(grades, prices, quantities)

	require.Len(t, totals.Lines, 2)
	assert.Equal(t, "C-40", totals.Lines[0].Grade)
	assert.Equal(t, "C-15", totals.Lines[1].Grade)
}

func TestCalculateNoFloatDrift(t *testing.T) {
	// 0.1 summed many times drifts under float64; decimal must not.
	grades := make([]string, 0, len(Grades))
	prices := map[string]decimal.Decimal{}
	quantities := map[string]decimal.Decimal{}
	for _, g := range Grades {
		grades = append(grades, g)
		prices[g] = dec("0.1")
		quantities[g] = dec("1")
	}

	totals := Calculate(grades, prices, quantities)

	require.True(t, totals.Subtotal.Equal(dec("0.9")), "subtotal = %s", totals.Subtotal)
	require.True(t, totals.VAT.Equal(dec("0.135")), "vat = %s", totals.VAT)
	assert.Equal(t, "0.14", Money(totals.VAT))
}

func TestCalculateEmpty(t *testing.T) {
	totals := Calculate(nil, nil, nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
	assert.Empty(t, totals.Lines)
}

func TestMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"54000", "54,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-1234.5", "-1,234.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Money(dec(tc.in)), "Money(%s)", tc.in)
	}
}

func TestValidGrade(t *testing.T) {
	assert.True(t, ValidGrade("C-25"))
	assert.False(t, ValidGrade("C-99"))
	assert.False(t, ValidGrade("c-25"), "catalog codes are uppercase")
}
