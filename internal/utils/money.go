package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders an amount with two decimals and thousand separators,
// e.g. 1234.5 -> "1,234.50". Matches the display format of the list view
// and the CSV export.
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(s, '.')
	return sign + groupThousands(s[:dot]) + s[dot:]
}

// ParseMoney coerces raw form input into an amount, defaulting to 0 on
// blank or non-numeric values.
func ParseMoney(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var out strings.Builder
	for i := 0; i < n; i++ {
		if i != 0 && (n-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteByte(digits[i])
	}
	return out.String()
}
