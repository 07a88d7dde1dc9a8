// Package render turns a computed schedule into its delivery encodings:
// delimited text, spreadsheet, and paginated document. Renderers only read
// the schedule they are given; all arithmetic is finished before any value
// is formatted for display.
package render

import (
	"fmt"
	"time"

	"github.com/remarkableland/bonusgen/schedule"
	"github.com/remarkableland/bonusgen/schedule/common"
)

// Title is the branding line stamped on spreadsheet and document output.
const Title = "Remarkable Land® Bonus Schedule"

// FilenameLabel is the fixed segment of artifact filenames.
const FilenameLabel = "Remarkable_Land_Bonus_Schedule"

// CanonicalHeader is the delimited-text header, in schedule column order.
// This is the round-trip format: ParseCSV requires exactly these columns.
var CanonicalHeader = []string{
	"funding_date",
	"state",
	"county",
	"grantor",
	"parcel_id",
	"gross_sales_price",
	"reductions",
	"cash_to_seller",
	"asset_cost",
	"gross_profit",
}

// DisplayLabels are the human column headings used by the spreadsheet and
// document renderers, in the same order as CanonicalHeader.
var DisplayLabels = []string{
	"Funding Date",
	"State",
	"County",
	"Grantor",
	"APN",
	"Gross Sales Price",
	"Reductions",
	"Cash to Seller",
	"Asset Cost",
	"Gross Profit",
}

// Fixed notes text carried below the table in the document rendering.
const (
	NoteFundingDate = "Funding Date: Date funds were available for withdrawal from our account. " +
		"\"Pending\" funds are not available for withdrawal. Accounting will confirm funding."
	NoteReconciliation = "Reconciliation: All data is subject to a post-payment audit and reconciliation. " +
		"Future Bonuses will be adjusted accordingly, as required."
)

// Totals row labels, top to bottom.
var totalsLabels = [3]string{"SUBTOTAL", "PRIOR ADJUSTMENT", "TOTAL"}

// Filename builds the artifact name for a period end:
// YYYYMMDD_Remarkable_Land_Bonus_Schedule.<ext>.
func Filename(periodEnd time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", periodEnd.Format("20060102"), FilenameLabel, ext)
}

// validate rejects structurally unusable input before any bytes are
// written. These are contract violations by the caller, not data problems.
func validate(s *schedule.Schedule) error {
	if s == nil {
		return fmt.Errorf("render: nil schedule")
	}
	if len(s.Rows) == 0 {
		return fmt.Errorf("render: schedule has no rows; empty periods are not rendered")
	}
	if s.Meta.PeriodEnd.IsZero() {
		return fmt.Errorf("render: metadata missing period end date")
	}
	return nil
}

// rowCells stringifies one row in column order, money fields through the
// currency formatter. Presentation only: the numeric row is untouched.
func rowCells(row common.BonusRow, symbol string) []string {
	return []string{
		row.FundingDate,
		row.State,
		row.County,
		row.Grantor,
		row.ParcelID,
		Currency(row.GrossSalesPrice, symbol),
		Currency(row.Reductions, symbol),
		Currency(row.CashToSeller, symbol),
		Currency(row.AssetCost, symbol),
		Currency(row.GrossProfit, symbol),
	}
}

// totalsCells returns the three (label, formatted value) footer pairs.
func totalsCells(t common.Totals, symbol string) [3][2]string {
	return [3][2]string{
		{totalsLabels[0], Currency(t.Subtotal, symbol)},
		{totalsLabels[1], Currency(t.PriorAdjustment, symbol)},
		{totalsLabels[2], Currency(t.Total, symbol)},
	}
}
