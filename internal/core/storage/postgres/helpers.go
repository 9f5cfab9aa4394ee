package postgres

import (
	"database/sql"
	"fmt"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// fieldOrder is the column order of querySelectRecords and queryInsertRecord.
func fieldOrder(cols sales.Columns) []string {
	return []string{
		cols.Year,
		cols.Month,
		cols.Category,
		cols.Warehouse,
		cols.RetailSales,
		cols.WarehouseSales,
		cols.RetailTransfers,
	}
}

// scanRecordRow scans one row into a RawRecord. NULL columns are left out of
// the record, the same as a missing cell in a file source.
func scanRecordRow(row scanner, cols sales.Columns) (sales.RawRecord, error) {
	var values [7]sql.NullString
	err := row.Scan(
		&values[0],
		&values[1],
		&values[2],
		&values[3],
		&values[4],
		&values[5],
		&values[6],
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales record row: %w", err)
	}

	rec := make(sales.RawRecord, len(values))
	for i, name := range fieldOrder(cols) {
		if values[i].Valid {
			rec[name] = values[i].String
		}
	}
	return rec, nil
}

// insertArgs maps a RawRecord onto queryInsertRecord's parameters.
func insertArgs(rec sales.RawRecord, cols sales.Columns) []interface{} {
	names := fieldOrder(cols)
	args := make([]interface{}, len(names))
	for i, name := range names {
		v, ok := rec[name]
		args[i] = sql.NullString{String: v, Valid: ok}
	}
	return args
}
