package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/remarkableland/bonusgen/schedule"
	"github.com/remarkableland/bonusgen/schedule/common"
)

// CSV writes the delimited-text encoding: the canonical header followed by
// one row per schedule line, money fields currency-formatted. Totals are
// deliberately not appended; this encoding is the round-trip format and a
// totals row would re-import as a phantom transaction.
func CSV(w io.Writer, s *schedule.Schedule) error {
	if err := validate(s); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(CanonicalHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range s.Rows {
		if err := writer.Write(rowCells(row, s.Meta.CurrencySymbol)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ParseCSV reads a delimited artifact back into numeric rows. Every
// canonical column must be present; missing columns are reported by name.
// Currency strings are re-parsed to decimals at two-place precision.
func ParseCSV(r io.Reader) ([]common.BonusRow, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var missing []string
	for _, name := range CanonicalHeader {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("delimited input missing column(s): %v", missing)
	}

	var rows []common.BonusRow
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(rows)+2, err)
		}
		cell := func(name string) string {
			i := index[name]
			if i >= len(cells) {
				return ""
			}
			return cells[i]
		}
		rows = append(rows, common.BonusRow{
			FundingDate:     cell("funding_date"),
			State:           cell("state"),
			County:          cell("county"),
			Grantor:         cell("grantor"),
			ParcelID:        cell("parcel_id"),
			GrossSalesPrice: common.ParseMoney(cell("gross_sales_price")),
			Reductions:      common.ParseMoney(cell("reductions")),
			CashToSeller:    common.ParseMoney(cell("cash_to_seller")),
			AssetCost:       common.ParseMoney(cell("asset_cost")),
			GrossProfit:     common.ParseMoney(cell("gross_profit")),
		})
	}

	return rows, nil
}
