package selection

import (
	"strings"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
)

// ChartType is how the monthly series are drawn.
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
)

// ParseChartType validates a chart type name.
func ParseChartType(s string) (ChartType, bool) {
	switch ChartType(strings.ToLower(strings.TrimSpace(s))) {
	case ChartLine:
		return ChartLine, true
	case ChartBar:
		return ChartBar, true
	}
	return "", false
}

// State is the user-controlled working set of one dashboard session.
// It is a value: Reduce never mutates its input.
type State struct {
	Dimension       sales.Dimension
	Categories      []string
	Warehouses      []string
	Year            string
	ChartType       ChartType
	WarehouseSearch string
	Seeded          bool
}

// Initial is the state of a new session before the dataset is known.
func Initial() State {
	return State{
		Dimension:  sales.DimensionCategory,
		Categories: []string{},
		Warehouses: []string{},
		Year:       "all",
		ChartType:  ChartLine,
	}
}

// Selected returns the selection of the active dimension.
func (s State) Selected() []string {
	if s.Dimension == sales.DimensionWarehouse {
		return s.Warehouses
	}
	return s.Categories
}

// VisibleWarehouses narrows the ranked warehouse list to names containing
// search, ignoring case. It only affects which candidates are listed.
func VisibleWarehouses(ix sales.Index, search string) []string {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return ix.Warehouses
	}

	out := make([]string, 0)
	for _, w := range ix.Warehouses {
		if strings.Contains(strings.ToLower(w), needle) {
			out = append(out, w)
		}
	}
	return out
}
