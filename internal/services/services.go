package services

import (
	"strconv"
	"time"
)

// Clock returns the current time. Services call it once per operation.
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

// formatAmount renders v with the currency symbol and no trailing zeros.
func formatAmount(symbol string, v float64) string {
	return symbol + strconv.FormatFloat(v, 'f', -1, 64)
}
