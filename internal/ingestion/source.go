package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/xuri/excelize/v2"
)

// Source supplies the raw rows of the dataset. It is read exactly once.
type Source interface {
	Name() string
	Records(ctx context.Context) ([]sales.RawRecord, error)
}

// CSVSource reads a header-first CSV file.
type CSVSource struct {
	Path string
}

func (s CSVSource) Name() string { return "csv:" + s.Path }

// Records parses the whole file. Header cells become record keys; blank
// lines are skipped and short rows simply lack the trailing columns.
func (s CSVSource) Records(ctx context.Context) ([]sales.RawRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", s.Path, err)
	}
	defer f.Close()

	return ReadCSV(ctx, f)
}

// ReadCSV parses CSV from r. A file without a header row is an error.
func ReadCSV(ctx context.Context, r io.Reader) ([]sales.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records []sales.RawRecord
	for line := 2; ; line++ {
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		records = append(records, toRecord(header, row))
	}
	return records, nil
}

// XLSXSource reads one worksheet of an Excel workbook. An empty Sheet means
// the first sheet in the workbook.
type XLSXSource struct {
	Path  string
	Sheet string
}

func (s XLSXSource) Name() string { return "xlsx:" + s.Path }

// Records reads every row of the sheet; the first row is the header.
func (s XLSXSource) Records(ctx context.Context) ([]sales.RawRecord, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", s.Path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx %s has no sheets", s.Path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx sheet %q has no header row", sheet)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := rows[0]
	records := make([]sales.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		records = append(records, toRecord(header, row))
	}
	return records, nil
}

func toRecord(header, row []string) sales.RawRecord {
	rec := make(sales.RawRecord, len(header))
	for i, name := range header {
		if i >= len(row) {
			break
		}
		rec[strings.TrimSpace(name)] = row[i]
	}
	return rec
}
