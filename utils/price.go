package utils

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParsePriceMinorUnits converts a localized display price like "€995" or
// "€2.000" into an integer number of cents. Dots are grouping separators,
// a comma is the decimal separator. Anything unparseable yields 0, which
// callers must reject as an invalid amount.
func ParsePriceMinorUnits(price string) int64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			return r
		}
		return -1
	}, price)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(value * 100))
}

// MinorUnitsFromDecimal converts a provider amount string with a dot decimal
// separator ("2000.00") into cents. Returns 0 when unparseable.
func MinorUnitsFromDecimal(value string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}

// FormatEURValue renders cents as the two-decimal value string PayPal
// expects, e.g. 200000 -> "2000.00".
func FormatEURValue(minorUnits int64) string {
	return strconv.FormatFloat(float64(minorUnits)/100, 'f', 2, 64)
}
