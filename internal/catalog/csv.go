package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

func readCSV(path string) ([]rawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are handled per-field

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := validateHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []rawRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, rowFromRecord(cols, record))
	}
	return rows, nil
}
