package common

import (
	"testing"
	"time"
)

func TestParseMoney_SimpleNumber(t *testing.T) {
	result := ParseMoney("123.45")
	if result.String() != "123.45" {
		t.Errorf("Expected '123.45', got '%s'", result.String())
	}
}

func TestParseMoney_WithCommas(t *testing.T) {
	result := ParseMoney("1,234.56")
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestParseMoney_WithCurrencySymbol(t *testing.T) {
	result := ParseMoney("$1,234.56")
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestParseMoney_Negative(t *testing.T) {
	// Malformed source data can carry negative prices; the sign must
	// survive parsing.
	result := ParseMoney("-123.45")
	if result.String() != "-123.45" {
		t.Errorf("Expected '-123.45', got '%s'", result.String())
	}
}

func TestParseMoney_NegativeWithSymbol(t *testing.T) {
	result := ParseMoney("-$1,500.00")
	if result.String() != "-1500" {
		t.Errorf("Expected '-1500', got '%s'", result.String())
	}
}

func TestParseMoney_EmptyString(t *testing.T) {
	result := ParseMoney("")
	if !result.IsZero() {
		t.Errorf("Expected zero, got '%s'", result.String())
	}
}

func TestParseMoney_NoNumbers(t *testing.T) {
	result := ParseMoney("N/A")
	if !result.IsZero() {
		t.Errorf("Expected zero, got '%s'", result.String())
	}
}

func TestParseMoney_Garbage(t *testing.T) {
	// Stripping leaves an unparseable token; resolves to zero, not an error
	result := ParseMoney("12-34-56")
	if !result.IsZero() {
		t.Errorf("Expected zero, got '%s'", result.String())
	}
}

func TestParseTimestamp_ISO(t *testing.T) {
	result, ok := ParseTimestamp("2025-06-15 14:30:00")
	if !ok {
		t.Fatal("Expected timestamp to parse")
	}
	if result.Year() != 2025 || result.Month() != 6 || result.Day() != 15 {
		t.Errorf("Expected 2025-06-15, got %v", result)
	}
}

func TestParseTimestamp_DateOnly(t *testing.T) {
	result, ok := ParseTimestamp("2025-06-30")
	if !ok {
		t.Fatal("Expected timestamp to parse")
	}
	if result.Day() != 30 {
		t.Errorf("Expected day 30, got %d", result.Day())
	}
}

func TestParseTimestamp_USShort(t *testing.T) {
	result, ok := ParseTimestamp("6/15/2025")
	if !ok {
		t.Fatal("Expected timestamp to parse")
	}
	if result.Month() != 6 || result.Day() != 15 || result.Year() != 2025 {
		t.Errorf("Expected 2025-06-15, got %v", result)
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, ok := ParseTimestamp("not a date")
	if ok {
		t.Error("Expected parse to fail for invalid input")
	}
}

func TestParseTimestamp_Empty(t *testing.T) {
	_, ok := ParseTimestamp("")
	if ok {
		t.Error("Expected parse to fail for empty input")
	}
}

func TestMonthWindow_MidMonth(t *testing.T) {
	start, end := MonthWindow(time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local))

	if !start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("Expected start 2025-06-01, got %v", start)
	}
	if !end.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("Expected end 2025-07-01, got %v", end)
	}
}

func TestMonthWindow_DecemberRollsToJanuary(t *testing.T) {
	start, end := MonthWindow(time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local))

	if start.Month() != 12 || start.Year() != 2025 {
		t.Errorf("Expected start in December 2025, got %v", start)
	}
	if end.Month() != 1 || end.Year() != 2026 {
		t.Errorf("Expected end January 2026, got %v", end)
	}
}
