// Package schedule computes a monthly bonus schedule from Close.com export
// records: period filtering, financial derivation, and totals.
package schedule

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"github.com/remarkableland/bonusgen/schedule/closeio"
	"github.com/remarkableland/bonusgen/schedule/common"
)

// StatusSold is the opportunity status that qualifies a record for the
// schedule. Matching is exact and case-sensitive.
const StatusSold = "Sold"

// ErrEmptyPeriod signals that the target month has no qualifying sold
// records. It is a defined outcome, not a failure: callers present a
// "no records for period" message instead of rendering an empty artifact.
var ErrEmptyPeriod = errors.New("no sold records in period")

// Config is the resolved run configuration. Everything the pipeline needs
// is passed in here; there is no ambient state.
type Config struct {
	common.Metadata

	PriorAdjustment decimal.Decimal
	Aliases         closeio.Aliases
}

// Schedule is the computed result of one run: the immutable row set and its
// totals, plus the metadata renderers stamp onto artifacts.
type Schedule struct {
	Rows   []common.BonusRow
	Totals common.Totals
	Meta   common.Metadata
}

// Calculate derives one BonusRow from extracted fields. Pure: no rounding,
// negative gross profit passes through unmodified.
func Calculate(f closeio.Fields, addend decimal.Decimal) common.BonusRow {
	reductions := f.ClosingCosts
	cashToSeller := f.GrossSalesPrice.Sub(reductions)
	assetCost := f.CostBasis.Add(addend)

	return common.BonusRow{
		FundingDate:     f.FundingDate,
		State:           f.State,
		County:          f.County,
		Grantor:         f.Grantor,
		ParcelID:        f.ParcelID,
		GrossSalesPrice: f.GrossSalesPrice,
		Reductions:      reductions,
		CashToSeller:    cashToSeller,
		AssetCost:       assetCost,
		GrossProfit:     cashToSeller.Sub(assetCost),
	}
}

// Aggregate sums gross profit across rows and folds in the prior
// adjustment. The empty sum is zero.
func Aggregate(rows []common.BonusRow, priorAdjustment decimal.Decimal) common.Totals {
	subtotal := decimal.Zero
	for _, row := range rows {
		subtotal = subtotal.Add(row.GrossProfit)
	}
	return common.Totals{
		Subtotal:        subtotal,
		PriorAdjustment: priorAdjustment,
		Total:           subtotal.Add(priorAdjustment),
	}
}

// Build runs the full pipeline over raw export records: extract, filter to
// the configured month, derive, aggregate. Returns ErrEmptyPeriod when no
// record survives the filter.
func Build(records []common.RawRecord, cfg Config) (*Schedule, error) {
	aliases := cfg.Aliases
	if aliases == nil {
		aliases = closeio.DefaultAliases()
	}

	start, end := common.MonthWindow(cfg.PeriodEnd)

	var rows []common.BonusRow
	for _, record := range records {
		f := closeio.Extract(record, aliases)
		if !f.CloseDateOK {
			continue
		}
		if f.CloseDate.Before(start) || !f.CloseDate.Before(end) {
			continue
		}
		if f.Status != StatusSold {
			continue
		}
		rows = append(rows, Calculate(f, cfg.FixedAddend))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyPeriod
	}

	log.Printf("computed %d schedule rows for month ending %s", len(rows), cfg.PeriodEnd.Format("2006-01-02"))

	meta := cfg.Metadata
	if meta.CurrencySymbol == "" {
		meta.CurrencySymbol = "$"
	}

	return &Schedule{
		Rows:   rows,
		Totals: Aggregate(rows, cfg.PriorAdjustment),
		Meta:   meta,
	}, nil
}
