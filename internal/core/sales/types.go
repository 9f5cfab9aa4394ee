package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnknownDimension is returned when a dimension name is neither category nor warehouse.
var ErrUnknownDimension = errors.New("unknown dimension")

// RawRecord is one ingested row: column name → cell text.
// It is read-only input owned by the ingestion side.
type RawRecord map[string]string

// Dimension is the axis a fact set is aggregated along.
type Dimension string

const (
	DimensionCategory  Dimension = "category"
	DimensionWarehouse Dimension = "warehouse"
)

// ParseDimension validates a dimension name coming from a request or config.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(strings.ToLower(strings.TrimSpace(s))) {
	case DimensionCategory:
		return DimensionCategory, nil
	case DimensionWarehouse:
		return DimensionWarehouse, nil
	}
	return "", fmt.Errorf("%w: %q (must be category or warehouse)", ErrUnknownDimension, s)
}

// Fact is one normalized sales observation. Immutable once created.
type Fact struct {
	Year      string // opaque label, compared as a string
	Month     int    // 1..12
	Category  string
	Warehouse string

	RetailAmount    decimal.Decimal
	WarehouseAmount decimal.Decimal
	TransferAmount  decimal.Decimal
}

// TotalAmount is retail plus warehouse sales. Transfers are inventory
// movement and never count towards the total.
func (f Fact) TotalAmount() decimal.Decimal {
	return f.RetailAmount.Add(f.WarehouseAmount)
}

// Label returns the fact's value for the given dimension.
func (f Fact) Label(dim Dimension) string {
	if dim == DimensionWarehouse {
		return f.Warehouse
	}
	return f.Category
}

// HasLabel reports whether the fact can take part in an aggregation pass over dim.
func (f Fact) HasLabel(dim Dimension) bool {
	return present(f.Label(dim))
}

// present treats empty and whitespace-only labels as missing.
// Labels themselves are stored verbatim.
func present(label string) bool {
	return strings.TrimSpace(label) != ""
}

// Columns maps fact fields to the column names of the source dataset.
type Columns struct {
	Year            string `koanf:"year"`
	Month           string `koanf:"month"`
	Category        string `koanf:"category"`
	Warehouse       string `koanf:"warehouse"`
	RetailSales     string `koanf:"retail_sales"`
	WarehouseSales  string `koanf:"warehouse_sales"`
	RetailTransfers string `koanf:"retail_transfers"`
}

// DefaultColumns returns the headers of the public Warehouse and Retail Sales dataset.
func DefaultColumns() Columns {
	return Columns{
		Year:            "YEAR",
		Month:           "MONTH",
		Category:        "ITEM TYPE",
		Warehouse:       "SUPPLIER",
		RetailSales:     "RETAIL SALES",
		WarehouseSales:  "WAREHOUSE SALES",
		RetailTransfers: "RETAIL TRANSFERS",
	}
}

// Validate checks that every column name is set.
func (c Columns) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"year", c.Year},
		{"month", c.Month},
		{"category", c.Category},
		{"warehouse", c.Warehouse},
		{"retail_sales", c.RetailSales},
		{"warehouse_sales", c.WarehouseSales},
		{"retail_transfers", c.RetailTransfers},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("columns.%s is required", f.name)
		}
	}
	return nil
}

// Dataset is the immutable result of one successful load.
// Everything downstream is a pure function of a Dataset and a selection.
type Dataset struct {
	ID       string
	Source   string
	LoadedAt time.Time

	RawCount int // rows handed over by the source
	Dropped  int // rows rejected by the normalizer
	Facts    []Fact

	ByCategory  *BucketSet
	ByWarehouse *BucketSet
	Index       Index
}

// Buckets returns the aggregate for one dimension.
func (d *Dataset) Buckets(dim Dimension) *BucketSet {
	if dim == DimensionWarehouse {
		return d.ByWarehouse
	}
	return d.ByCategory
}
