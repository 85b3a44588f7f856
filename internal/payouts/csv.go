package payouts

import (
	"strconv"
	"strings"
)

// The bank's import tool expects a fixed layout: text fields always wrapped
// in double quotes with embedded quotes doubled, amounts with exactly two
// decimals and no thousands separator, currency bare. encoding/csv quotes
// only when it must, so the lines are assembled by hand.

var csvHeader = []string{"SupplierName", "BankName", "AccountNumber", "Branch", "Amount", "Currency", "Reference"}

// renderCSV builds the export file for the given rows. references must be
// parallel to rows.
func renderCSV(rows []BankPayment, references []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for i, row := range rows {
		b.WriteByte('\n')
		fields := []string{
			quote(row.SupplierName),
			quote(deref(row.BankName)),
			quote(deref(row.AccountNumber)),
			quote(deref(row.Branch)),
			strconv.FormatFloat(row.Amount, 'f', 2, 64),
			row.Currency,
			quote(references[i]),
		}
		b.WriteString(strings.Join(fields, ","))
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
