package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/remarkableland/bonusgen/schedule/closeio"
	"github.com/remarkableland/bonusgen/schedule/common"
)

func soldRecord(closeDate string) common.RawRecord {
	return common.RawRecord{
		"primary_opportunity_date_won":     closeDate,
		"primary_opportunity_status_label": "Sold",
		"custom.Asset_Date_Sold":           "2025-06-18",
		"custom.All_State":                 "TX",
		"custom.All_APN":                   "1234-5678",
		"display_name":                     "TX Hidalgo Mujica 5.01 acres",
		"custom.Asset_Gross_Sales_Price":   "100000",
		"custom.Asset_Closing_Costs":       "2000",
		"custom.Asset_Cost_Basis":          "50000",
	}
}

func juneConfig() Config {
	return Config{
		Metadata: common.Metadata{
			PeriodEnd:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local),
			FixedAddend: decimal.NewFromInt(500),
		},
	}
}

func TestCalculate_Derivation(t *testing.T) {
	f := closeio.Fields{
		GrossSalesPrice: decimal.NewFromInt(100000),
		ClosingCosts:    decimal.NewFromInt(2000),
		CostBasis:       decimal.NewFromInt(50000),
	}

	row := Calculate(f, decimal.NewFromInt(500))

	assert.Equal(t, "98000", row.CashToSeller.String())
	assert.Equal(t, "50500", row.AssetCost.String())
	assert.Equal(t, "47500", row.GrossProfit.String())
	assert.Equal(t, "2000", row.Reductions.String())
}

func TestCalculate_NegativeProfitPropagates(t *testing.T) {
	f := closeio.Fields{
		GrossSalesPrice: decimal.NewFromInt(10000),
		ClosingCosts:    decimal.NewFromInt(500),
		CostBasis:       decimal.NewFromInt(20000),
	}

	row := Calculate(f, decimal.NewFromInt(500))

	// A loss is a legitimate outcome, not an error
	assert.True(t, row.GrossProfit.IsNegative())
	assert.Equal(t, "-11000", row.GrossProfit.String())
}

func TestCalculate_NoRounding(t *testing.T) {
	f := closeio.Fields{
		GrossSalesPrice: decimal.RequireFromString("100000.333"),
		ClosingCosts:    decimal.RequireFromString("0.111"),
		CostBasis:       decimal.RequireFromString("50000.01"),
	}

	row := Calculate(f, decimal.NewFromInt(500))

	assert.Equal(t, "100000.222", row.CashToSeller.String())
	assert.Equal(t, "49500.212", row.GrossProfit.String())
}

func TestAggregate_EmptyRows(t *testing.T) {
	adjustment := decimal.NewFromInt(750)

	totals := Aggregate(nil, adjustment)

	assert.True(t, totals.Subtotal.IsZero())
	assert.Equal(t, "750", totals.Total.String())
}

func TestAggregate_ZeroAdjustment(t *testing.T) {
	rows := []common.BonusRow{
		{GrossProfit: decimal.NewFromInt(47500)},
		{GrossProfit: decimal.NewFromInt(-1000)},
	}

	totals := Aggregate(rows, decimal.Zero)

	assert.Equal(t, "46500", totals.Subtotal.String())
	assert.Equal(t, "46500", totals.Total.String())
}

func TestBuild_Scenario(t *testing.T) {
	cfg := juneConfig()
	cfg.PriorAdjustment = decimal.NewFromInt(1000)

	result, err := Build([]common.RawRecord{soldRecord("2025-06-15 10:00:00")}, cfg)

	assert.NoError(t, err)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, "47500", result.Totals.Subtotal.String())
	assert.Equal(t, "48500", result.Totals.Total.String())
}

func TestBuild_LastSecondOfMonthIncluded(t *testing.T) {
	result, err := Build([]common.RawRecord{soldRecord("2025-06-30 23:59:59")}, juneConfig())

	assert.NoError(t, err)
	assert.Len(t, result.Rows, 1)
}

func TestBuild_FirstOfNextMonthExcluded(t *testing.T) {
	_, err := Build([]common.RawRecord{soldRecord("2025-07-01 00:00:00")}, juneConfig())

	assert.ErrorIs(t, err, ErrEmptyPeriod)
}

func TestBuild_DecemberWindow(t *testing.T) {
	cfg := juneConfig()
	cfg.PeriodEnd = time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)

	included, err := Build([]common.RawRecord{soldRecord("2025-12-31 23:59:59")}, cfg)
	assert.NoError(t, err)
	assert.Len(t, included.Rows, 1)

	_, err = Build([]common.RawRecord{soldRecord("2026-01-01 00:00:00")}, cfg)
	assert.ErrorIs(t, err, ErrEmptyPeriod)
}

func TestBuild_StatusMatchIsExact(t *testing.T) {
	record := soldRecord("2025-06-15 10:00:00")
	record["primary_opportunity_status_label"] = "sold"

	_, err := Build([]common.RawRecord{record}, juneConfig())

	assert.ErrorIs(t, err, ErrEmptyPeriod)
}

func TestBuild_UnparseableCloseDateExcluded(t *testing.T) {
	record := soldRecord("not a timestamp")

	_, err := Build([]common.RawRecord{record}, juneConfig())

	assert.ErrorIs(t, err, ErrEmptyPeriod)
}

func TestBuild_EmptyPeriodIsSentinel(t *testing.T) {
	_, err := Build(nil, juneConfig())

	if !errors.Is(err, ErrEmptyPeriod) {
		t.Fatalf("Expected ErrEmptyPeriod, got %v", err)
	}
}

func TestBuild_DefaultsCurrencySymbol(t *testing.T) {
	result, err := Build([]common.RawRecord{soldRecord("2025-06-15 10:00:00")}, juneConfig())

	assert.NoError(t, err)
	assert.Equal(t, "$", result.Meta.CurrencySymbol)
}
