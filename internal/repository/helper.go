package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// timeFormats covers the formats SQLite hands back: bare dates, RFC3339
// values we wrote ourselves, and datetime('now') defaults.
var timeFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTime parses a date string in any of the supported formats.
func ParseTime(str string) (time.Time, error) {
	for _, format := range timeFormats {
		if returnTime, err := time.Parse(format, str); err == nil {
			return returnTime.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// ParseDecimal parses a decimal column stored as TEXT. Empty strings scan as
// zero so nullable columns with a '0' default behave consistently.
func ParseDecimal(str string) (decimal.Decimal, error) {
	if str == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse decimal: %w", err)
	}
	return d, nil
}
