// Package closeio ingests Close.com "Selling Land leads" CSV exports and
// extracts the typed fields the bonus pipeline works on. Column-naming drift
// between export variants is absorbed here and never reaches the
// computation layer.
package closeio

// Canonical field names used by the extractor. Every lookup into a raw
// record goes through the alias table keyed by these.
const (
	FieldCloseDate       = "close_date"
	FieldStatus          = "status"
	FieldAssetSoldDate   = "asset_sold_date"
	FieldState           = "state"
	FieldParcelID        = "parcel_id"
	FieldDisplayName     = "display_name"
	FieldGrossSalesPrice = "gross_sales_price"
	FieldClosingCosts    = "closing_costs"
	FieldCostBasis       = "cost_basis"
)

// Aliases maps a canonical field to the source column headers that may carry
// it, in priority order. Historical export variants renamed "Closing Costs"
// to "Reductions" and "Gross Sales Price" to "Contract Sales Price"; they
// are the same quantity.
type Aliases map[string][]string

// DefaultAliases covers the column names seen across Close.com export
// variants to date.
func DefaultAliases() Aliases {
	return Aliases{
		FieldCloseDate:     {"primary_opportunity_date_won"},
		FieldStatus:        {"primary_opportunity_status_label"},
		FieldAssetSoldDate: {"custom.Asset_Date_Sold"},
		FieldState:         {"custom.All_State"},
		FieldParcelID:      {"custom.All_APN"},
		FieldDisplayName:   {"display_name"},
		FieldGrossSalesPrice: {
			"custom.Asset_Gross_Sales_Price",
			"custom.Asset_Contract_Sales_Price",
		},
		FieldClosingCosts: {
			"custom.Asset_Closing_Costs",
			"custom.Asset_Reductions",
		},
		FieldCostBasis: {"custom.Asset_Cost_Basis"},
	}
}

// Lookup returns the first non-empty cell among the aliased columns for a
// canonical field. Absent columns and empty cells both read as "".
func (a Aliases) Lookup(record map[string]string, field string) string {
	for _, column := range a[field] {
		if v, ok := record[column]; ok && v != "" {
			return v
		}
	}
	return ""
}
