package closeio

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/remarkableland/bonusgen/schedule/common"
)

// Unknown is the fallback for county and grantor when the display name does
// not carry enough tokens.
const Unknown = "Unknown"

// fundingDateLayout is the presentation form of the funding date.
const fundingDateLayout = "01/02/06"

// County extracts the county from a display name such as
// "TX Hidalgo Mujica ...": token 1, after the state code. Multi-word
// counties are not supported by the export's naming scheme; only the
// second whitespace token is taken.
func County(displayName string) string {
	parts := strings.Fields(displayName)
	if len(parts) < 2 {
		return Unknown
	}
	return parts[1]
}

// Grantor extracts the grantor from a display name such as
// "OK McIntosh Engebretson ...": token 2.
func Grantor(displayName string) string {
	parts := strings.Fields(displayName)
	if len(parts) < 3 {
		return Unknown
	}
	return parts[2]
}

// Fields is the typed view of one raw record, ready for derivation.
// Monetary fields default to zero and text fields to "" when the source
// cell is absent or malformed; only CloseDate can disqualify a row.
type Fields struct {
	CloseDate       time.Time
	CloseDateOK     bool
	Status          string
	FundingDate     string
	State           string
	County          string
	Grantor         string
	ParcelID        string
	GrossSalesPrice decimal.Decimal
	ClosingCosts    decimal.Decimal
	CostBasis       decimal.Decimal
}

// Extract pulls the typed fields out of one raw export record using the
// alias table.
func Extract(record common.RawRecord, aliases Aliases) Fields {
	f := Fields{
		Status:          aliases.Lookup(record, FieldStatus),
		State:           aliases.Lookup(record, FieldState),
		ParcelID:        aliases.Lookup(record, FieldParcelID),
		GrossSalesPrice: common.ParseMoney(aliases.Lookup(record, FieldGrossSalesPrice)),
		ClosingCosts:    common.ParseMoney(aliases.Lookup(record, FieldClosingCosts)),
		CostBasis:       common.ParseMoney(aliases.Lookup(record, FieldCostBasis)),
	}

	displayName := aliases.Lookup(record, FieldDisplayName)
	f.County = County(displayName)
	f.Grantor = Grantor(displayName)

	f.CloseDate, f.CloseDateOK = common.ParseTimestamp(aliases.Lookup(record, FieldCloseDate))

	// Funding date comes only from the asset-sold date; there is no
	// fallback to the close timestamp.
	if sold, ok := common.ParseTimestamp(aliases.Lookup(record, FieldAssetSoldDate)); ok {
		f.FundingDate = sold.Format(fundingDateLayout)
	}

	return f
}
