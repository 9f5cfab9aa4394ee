package sales

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Index lists the distinct dimension values observed in a fact set.
type Index struct {
	Categories []string // lexicographic
	Years      []string // lexicographic; years are labels, not numbers
	Warehouses []string // by total sales, descending

	WarehouseTotals map[string]decimal.Decimal
}

// BuildIndex derives selectable options from facts.
// Warehouse ties keep the order of first appearance.
func BuildIndex(facts []Fact) Index {
	categories := make(map[string]struct{})
	years := make(map[string]struct{})
	totals := make(map[string]decimal.Decimal)
	var warehouses []string

	for _, f := range facts {
		if present(f.Category) {
			categories[f.Category] = struct{}{}
		}
		if present(f.Year) {
			years[f.Year] = struct{}{}
		}
		if present(f.Warehouse) {
			cur, seen := totals[f.Warehouse]
			if !seen {
				warehouses = append(warehouses, f.Warehouse)
			}
			totals[f.Warehouse] = cur.Add(f.TotalAmount())
		}
	}

	sort.SliceStable(warehouses, func(i, j int) bool {
		return totals[warehouses[i]].GreaterThan(totals[warehouses[j]])
	})

	return Index{
		Categories:      sortedKeys(categories),
		Years:           sortedKeys(years),
		Warehouses:      warehouses,
		WarehouseTotals: totals,
	}
}

// Values returns the option list for a dimension.
func (ix Index) Values(dim Dimension) []string {
	if dim == DimensionWarehouse {
		return ix.Warehouses
	}
	return ix.Categories
}

// WarehouseRank returns the position of a warehouse in the sales ranking.
func (ix Index) WarehouseRank(name string) (int, bool) {
	for i, w := range ix.Warehouses {
		if w == name {
			return i, true
		}
	}
	return 0, false
}

// HasYear reports whether year was observed.
func (ix Index) HasYear(year string) bool {
	i := sort.SearchStrings(ix.Years, year)
	return i < len(ix.Years) && ix.Years[i] == year
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
