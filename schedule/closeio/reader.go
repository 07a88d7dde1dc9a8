package closeio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/remarkableland/bonusgen/schedule/common"
)

// ReadRecords parses a Close.com CSV export into header-keyed raw records.
// Rows shorter than the header are padded with empty cells; extra cells are
// dropped. Only a missing or empty header row is an error.
func ReadRecords(r io.Reader) ([]common.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("export is empty: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading export header: %w", err)
	}

	var records []common.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading export row %d: %w", len(records)+2, err)
		}

		record := make(common.RawRecord, len(header))
		for i, column := range header {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}
