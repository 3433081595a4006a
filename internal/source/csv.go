package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// readCSV extracts one column from a CSV file, one message per record.
// column is a header name from the first record, a 0-based index, or
// empty to take the first field.
func readCSV(r io.Reader, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv source: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	idx := 0
	rows := records
	if column != "" {
		if n, err := strconv.Atoi(column); err == nil {
			idx = n
		} else {
			// Treat the first record as a header row and look the column up.
			found := -1
			for i, h := range records[0] {
				if h == column {
					found = i
					break
				}
			}
			if found < 0 {
				return nil, fmt.Errorf("csv source has no column %q", column)
			}
			idx = found
			rows = records[1:]
		}
	}

	var messages []string
	for i, rec := range rows {
		if idx >= len(rec) {
			return nil, fmt.Errorf("csv record %d has no field %d", i+1, idx)
		}
		messages = append(messages, rec[idx])
	}
	return messages, nil
}
