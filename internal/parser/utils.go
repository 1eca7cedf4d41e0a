package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName strips every kind of whitespace from a header
func NormalizeColumnName(name string) string {
	name = strings.ReplaceAll(name, "\u00a0", " ")
	name = strings.TrimPrefix(name, "\ufeff")
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(name), "")
}

// IsBlank reports values that count as missing.
func IsBlank(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "nan", "none", "null", "nat", "<na>":
		return true
	}
	return false
}

// dateLayouts tried in order. Day-first comes before month-first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006",
	"2/1/06",
	"1/2/2006 15:04:05",
	"1/2/2006",
}

// Excel serials accepted as dates: 1950-01-01 to 9999-12-31.
// Smaller bare numbers ("7", "2024") are not dates.
const (
	minExcelSerial = 18264
	maxExcelSerial = 2958465
)

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// ParseDate parses a creation date cell. extra layouts are tried after the built-in text layouts;
// Excel serial numbers are accepted last.
func ParseDate(value string, extra []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if IsBlank(value) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	for _, layout := range extra {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial >= minExcelSerial && serial <= maxExcelSerial {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeNumber rewrites "R$ 1.234,56" and "1,234.56" into "1234.56".
// The separator that appears last is the decimal one; a lone separator repeated is a thousands mark.
func normalizeNumber(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "R$")
	value = strings.NewReplacer(" ", "", "\u00a0", "").Replace(value)
	if value == "" {
		return ""
	}

	lastDot := strings.LastIndex(value, ".")
	lastComma := strings.LastIndex(value, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			value = strings.ReplaceAll(value, ".", "")
			value = strings.Replace(value, ",", ".", 1)
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(value, ",") > 1 {
			value = strings.ReplaceAll(value, ",", "")
		} else {
			value = strings.Replace(value, ",", ".", 1)
		}
	case lastDot >= 0:
		if strings.Count(value, ".") > 1 {
			value = strings.ReplaceAll(value, ".", "")
		}
	}
	return value
}

func parseNumber(value string) (decimal.Decimal, bool) {
	n := normalizeNumber(value)
	if n == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(n)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// CoerceQuantity parses a non-negative integer quantity, truncating fractions.
// Values beyond int64 are coerced like negatives. coerced is true when a non-blank value had to be replaced by 0.
func CoerceQuantity(value string) (qty int64, coerced bool) {
	if IsBlank(value) {
		return 0, false
	}
	d, ok := parseNumber(value)
	if !ok || d.IsNegative() || d.GreaterThan(maxQuantity) {
		return 0, true
	}
	return d.IntPart(), false
}

// CoerceAmount parses a non-negative monetary amount.
func CoerceAmount(value string) (amount decimal.Decimal, coerced bool) {
	if IsBlank(value) {
		return decimal.Zero, false
	}
	d, ok := parseNumber(value)
	if !ok || d.IsNegative() {
		return decimal.Zero, true
	}
	return d, false
}
