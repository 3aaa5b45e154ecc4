package dashboard

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// formatMoney renders a rupee amount with two decimal places.
func formatMoney(v decimal.Decimal) string {
	return "₹" + v.StringFixed(2)
}

// formatTradeTime renders a trade timestamp in local wall-clock time.
func formatTradeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("15:04:05")
}

// formatClock renders the current time for the header.
func formatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// truncate shortens s to max display runes, never splitting a
// multibyte sequence.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return string(runes[:1])
	}
	return fmt.Sprintf("%s…", string(runes[:max-1]))
}
