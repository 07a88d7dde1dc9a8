package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row of a Close.com export, keyed by column header.
// A missing key and an empty cell are equivalent: field absent.
type RawRecord map[string]string

// BonusRow is one normalized schedule line. The five monetary fields are
// always populated together; a row is never built partially.
type BonusRow struct {
	FundingDate     string          `json:"funding_date"`
	State           string          `json:"state"`
	County          string          `json:"county"`
	Grantor         string          `json:"grantor"`
	ParcelID        string          `json:"parcel_id"`
	GrossSalesPrice decimal.Decimal `json:"gross_sales_price"`
	Reductions      decimal.Decimal `json:"reductions"`
	CashToSeller    decimal.Decimal `json:"cash_to_seller"`
	AssetCost       decimal.Decimal `json:"asset_cost"`
	GrossProfit     decimal.Decimal `json:"gross_profit"`
}

// Totals carries the schedule footer figures.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	PriorAdjustment decimal.Decimal `json:"prior_adjustment"`
	Total           decimal.Decimal `json:"total"`
}

// Metadata is the run configuration the renderers need. It is supplied by
// the caller and read-only to the pipeline.
type Metadata struct {
	PeriodEnd      time.Time
	TeamNames      []string
	FixedAddend    decimal.Decimal
	CurrencySymbol string
}

// DefaultFixedAddend is the flat per-transaction listing cost added to the
// cost basis when no override is configured.
var DefaultFixedAddend = decimal.NewFromInt(500)
