package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatPriceEUR renders a price in cents as a decimal-comma euro string.
// Example: 1250 -> "12,50"
func FormatPriceEUR(cents int) string {
	return fmt.Sprintf("%d,%02d", cents/100, cents%100)
}

// ParsePriceEUR parses a euro amount written with either a comma or a dot
// as decimal separator and returns the value rounded to cents.
func ParsePriceEUR(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid price: %q", raw)
	}
	return int(math.Round(v * 100)), nil
}
