package domain

import "fmt"

// Totals carries the four independent running sums shown under the booking
// table and on the CSV totals row. The two balance buckets are never
// converted or combined.
type Totals struct {
	BalanceMXN           float64 `json:"balance_mxn"`
	BalanceUSD           float64 `json:"balance_usd"`
	ReportAmount         float64 `json:"report_amount"`
	ReportProviderAmount float64 `json:"report_provider_amount"`
}

// SumTotals aggregates over the given row set. A booking contributes its
// balance to exactly one currency bucket, decided by balance_currency.
func SumTotals(rows []Booking) Totals {
	var t Totals
	for _, b := range rows {
		if b.BalanceCurrency == CurrencyMXN {
			t.BalanceMXN += b.Balance
		} else {
			t.BalanceUSD += b.Balance
		}
		t.ReportAmount += b.ReportAmount
		t.ReportProviderAmount += b.ReportProviderAmount
	}
	return t
}

// PageSize is the fixed page length of the booking list.
const PageSize = 30

// TotalPages derives the page count for a filtered total.
func TotalPages(totalCount int) int {
	if totalCount <= 0 {
		return 0
	}
	return (totalCount + PageSize - 1) / PageSize
}

func bookingReference(id int64) string {
	return fmt.Sprintf("SRV%d", id)
}
