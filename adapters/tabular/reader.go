package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"datadeck/domain/table"
	"datadeck/internal/errors"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Decode turns an uploaded spreadsheet or delimited-text file into a
// Dataset. The extension selects the decoder; anything else is rejected
// with an input error naming the extension.
func Decode(filename string, data []byte) (*table.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return decodeCSV(data)
	case ".xlsx", ".xls":
		return decodeWorkbook(ext, data)
	default:
		return nil, errors.Input("unsupported file type: %s. Please use CSV or Excel.", ext)
	}
}

// decodeCSV reads delimited text, retrying through Windows-1252 when the
// payload is not valid UTF-8 (legacy spreadsheet exports).
func decodeCSV(data []byte) (*table.Dataset, error) {
	if !utf8.Valid(data) {
		log.Printf("[tabular] CSV payload is not valid UTF-8, retrying as Windows-1252")
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder()))
		if err != nil {
			return nil, errors.Input("could not decode CSV file: %v", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	reader.TrimLeadingSpace = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Input("could not parse CSV file: %v", err)
	}
	log.Printf("[tabular] CSV read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, errors.Input("CSV file has no header row")
	}
	return buildDataset(rows)
}

// decodeWorkbook reads the first sheet of an Excel workbook.
func decodeWorkbook(ext string, data []byte) (*table.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if ext == ".xls" {
			return nil, errors.Dependency("legacy .xls workbooks are not supported by the bundled workbook engine; convert to .xlsx", err)
		}
		return nil, errors.Input("could not open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Input("workbook has no sheets")
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheets[0])
	}
	log.Printf("[tabular] sheet %q read in %.2fms (%d rows)", sheets[0], float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, errors.Input("workbook sheet %q is empty", sheets[0])
	}
	return buildDataset(rows)
}

// buildDataset converts raw string rows into a typed Dataset. The first row
// is the header; a header-only file produces a zero-row dataset, which the
// analysis stage rejects downstream.
func buildDataset(rows [][]string) (*table.Dataset, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	ds, err := table.FromRows(headers, rows[1:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dataset")
	}
	log.Printf("[tabular] dataset built (%d columns, %d rows)", len(ds.Columns()), ds.RowCount())
	return ds, nil
}
