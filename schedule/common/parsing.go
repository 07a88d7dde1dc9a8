package common

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var nonNumericRegex = regexp.MustCompile(`[^0-9.\-]`)

// ParseMoney parses a monetary cell into a decimal.Decimal, stripping
// currency symbols and thousands separators. Malformed or empty input
// resolves to zero rather than an error: extraction is total over bad data.
func ParseMoney(text string) decimal.Decimal {
	cleanText := nonNumericRegex.ReplaceAllString(strings.TrimSpace(text), "")
	if cleanText == "" || cleanText == "-" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleanText)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// timestampLayouts are the close-timestamp and date shapes seen across
// Close.com export variants, most specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
	"01/02/06",
}

// ParseTimestamp tries each known export layout in order.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthWindow returns the half-open calendar-month interval [start, end)
// containing d. time.Date normalizes month 13, so a December target rolls
// into January of the following year.
func MonthWindow(d time.Time) (start, end time.Time) {
	start = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
	end = time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, d.Location())
	return start, end
}
