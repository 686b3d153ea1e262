package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common validation errors
var (
	ErrInvalidUUID      = fmt.Errorf("invalid UUID format")
	ErrInvalidDateRange = fmt.Errorf("invalid date range")
	ErrEmptySlice       = fmt.Errorf("slice cannot be empty")
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.\-]{1,16}$`)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateUUIDs validates a slice of UUIDs
func ValidateUUIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptySlice
	}
	for _, id := range ids {
		if err := ValidateUUID(id); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSymbol checks a ticker symbol against the allowed character set.
func ValidateSymbol(symbol string) error {
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("invalid symbol: %q", symbol)
	}
	return nil
}

// ValidateDate checks a date string against the YYYY-MM-DD format.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return err
	}
	return nil
}

// ValidateDateRange checks that start does not come after end.
func ValidateDateRange(start, end string) error {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return err
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return err
	}
	if startDate.After(endDate) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, start, end)
	}
	return nil
}

// parseDecimalField parses a decimal string, recording a field error on failure.
func parseDecimalField(errors map[string]string, field, raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		errors[field] = fmt.Sprintf("%s must be a decimal number", field)
		return decimal.Decimal{}, false
	}
	return d, true
}
