package domain

import "testing"

func TestSumTotalsBucketsByCurrency(t *testing.T) {
	rows := []Booking{
		{Balance: 100.00, BalanceCurrency: CurrencyMXN, ReportAmount: 50.00},
		{Balance: 200.00, BalanceCurrency: CurrencyUSD, ReportAmount: 0},
	}

	got := SumTotals(rows)
	if got.BalanceMXN != 100.00 {
		t.Fatalf("MXN total = %v, want 100.00", got.BalanceMXN)
	}
	if got.BalanceUSD != 200.00 {
		t.Fatalf("USD total = %v, want 200.00", got.BalanceUSD)
	}
	if got.ReportAmount != 50.00 {
		t.Fatalf("report total = %v, want 50.00", got.ReportAmount)
	}
	if got.ReportProviderAmount != 0 {
		t.Fatalf("report provider total = %v, want 0", got.ReportProviderAmount)
	}

	// a booking never contributes to both buckets
	if got.BalanceMXN+got.BalanceUSD != 300.00 {
		t.Fatalf("balances double-counted: %v", got)
	}
}

func TestSumTotalsEmptySeedsZero(t *testing.T) {
	got := SumTotals(nil)
	if got != (Totals{}) {
		t.Fatalf("empty set should give zero totals, got %+v", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{0, 0},
		{1, 1},
		{30, 1},
		{31, 2},
		{65, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.total); got != tc.want {
			t.Fatalf("TotalPages(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestBookingReference(t *testing.T) {
	b := Booking{ID: 17}
	if b.Reference() != "SRV17" {
		t.Fatalf("reference = %q, want SRV17", b.Reference())
	}
}
