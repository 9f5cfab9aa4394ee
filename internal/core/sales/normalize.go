package sales

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize validates and coerces one raw record into a Fact.
// The second return value is false when the month is missing, non-numeric or
// outside 1..12; such rows never reach an aggregation pass.
// Unparseable measures coerce to zero and never reject the row. The year is
// trimmed so it compares equal to the trimmed year filter.
func Normalize(raw RawRecord, cols Columns) (Fact, bool) {
	month, err := strconv.Atoi(strings.TrimSpace(raw[cols.Month]))
	if err != nil || month < 1 || month > 12 {
		return Fact{}, false
	}

	return Fact{
		Year:            strings.TrimSpace(raw[cols.Year]),
		Month:           month,
		Category:        raw[cols.Category],
		Warehouse:       raw[cols.Warehouse],
		RetailAmount:    ParseAmount(raw, cols.RetailSales),
		WarehouseAmount: ParseAmount(raw, cols.WarehouseSales),
		TransferAmount:  ParseAmount(raw, cols.RetailTransfers),
	}, true
}

// NormalizeAll normalizes records in order and reports how many were dropped.
func NormalizeAll(records []RawRecord, cols Columns) ([]Fact, int) {
	facts := make([]Fact, 0, len(records))
	dropped := 0
	for _, raw := range records {
		fact, ok := Normalize(raw, cols)
		if !ok {
			dropped++
			continue
		}
		facts = append(facts, fact)
	}
	return facts, dropped
}

// ParseAmount pulls a numeric value from the record by column name.
// Returns decimal.Zero if the column is missing, empty, not a number, or too
// large to plot as a float64.
func ParseAmount(raw RawRecord, field string) decimal.Decimal {
	if field == "" {
		return decimal.Zero
	}
	v, ok := raw[field]
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Zero
	}
	if f := d.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}
	return d
}
