package projection

import (
	"fmt"
	"testing"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(year, month, category, warehouse, retail, whSales string) sales.RawRecord {
	cols := sales.DefaultColumns()
	return sales.RawRecord{
		cols.Year:           year,
		cols.Month:          month,
		cols.Category:       category,
		cols.Warehouse:      warehouse,
		cols.RetailSales:    retail,
		cols.WarehouseSales: whSales,
	}
}

func buildDataset(id string, records ...sales.RawRecord) *sales.Dataset {
	facts, dropped := sales.NormalizeAll(records, sales.DefaultColumns())
	return &sales.Dataset{
		ID:          id,
		RawCount:    len(records),
		Dropped:     dropped,
		Facts:       facts,
		ByCategory:  sales.Aggregate(facts, sales.DimensionCategory),
		ByWarehouse: sales.Aggregate(facts, sales.DimensionWarehouse),
		Index:       sales.BuildIndex(facts),
	}
}

func fixture() *sales.Dataset {
	return buildDataset("ds-1",
		rec("2018", "3", "WINE", "A", "10.50", "5.00"),
		rec("2018", "3", "WINE", "B", "2.00", "0"),
		rec("2018", "12", "BEER", "A", "4", "1"),
		rec("2019", "1", "WINE", "C", "1", ""),
		rec("2019", "3", "LIQUOR", "C", "100", "0"),
		rec("2019", "13", "WINE", "A", "999", "999"),
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireMonths(t *testing.T, want map[int]string, got [12]decimal.Decimal) {
	t.Helper()
	for m := 1; m <= 12; m++ {
		expected := decimal.Zero
		if v, ok := want[m]; ok {
			expected = dec(v)
		}
		require.Truef(t, expected.Equal(got[m-1]), "month %d: want %s, got %s", m, expected, got[m-1])
	}
}

func TestBuildSeries(t *testing.T) {
	ds := fixture()

	tests := []struct {
		name     string
		dim      sales.Dimension
		selected []string
		year     string
		want     map[string]map[int]string
		order    []string
	}{
		{
			name:     "all years merges months across years",
			dim:      sales.DimensionCategory,
			selected: []string{"WINE"},
			year:     YearAll,
			want:     map[string]map[int]string{"WINE": {1: "1", 3: "17.50"}},
			order:    []string{"WINE"},
		},
		{
			name:     "year filter",
			dim:      sales.DimensionCategory,
			selected: []string{"WINE", "BEER"},
			year:     "2018",
			want: map[string]map[int]string{
				"WINE": {3: "17.50"},
				"BEER": {12: "5"},
			},
			order: []string{"WINE", "BEER"},
		},
		{
			name:     "selected value without facts is all zero",
			dim:      sales.DimensionCategory,
			selected: []string{"KEGS"},
			year:     YearAll,
			want:     map[string]map[int]string{"KEGS": {}},
			order:    []string{"KEGS"},
		},
		{
			name:     "unknown year yields zeros",
			dim:      sales.DimensionWarehouse,
			selected: []string{"A"},
			year:     "1999",
			want:     map[string]map[int]string{"A": {}},
			order:    []string{"A"},
		},
		{
			name:     "warehouse dimension",
			dim:      sales.DimensionWarehouse,
			selected: []string{"C", "A"},
			year:     YearAll,
			want: map[string]map[int]string{
				"C": {1: "1", 3: "100"},
				"A": {3: "15.50", 12: "5"},
			},
			order: []string{"C", "A"},
		},
		{
			name:     "duplicates collapse",
			dim:      sales.DimensionCategory,
			selected: []string{"BEER", "BEER"},
			year:     YearAll,
			want:     map[string]map[int]string{"BEER": {12: "5"}},
			order:    []string{"BEER"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			series := BuildSeries(ds.Buckets(tc.dim), tc.selected, tc.year)
			require.Len(t, series, len(tc.order))
			for i, s := range series {
				require.Equal(t, tc.order[i], s.Key)
				require.Len(t, s.Months, 12)
				requireMonths(t, tc.want[s.Key], s.Months)
			}
		})
	}
}

func TestBuildSeries_EmptySelection(t *testing.T) {
	ds := fixture()

	series := BuildSeries(ds.ByCategory, nil, YearAll)
	require.Empty(t, series)

	summary := BuildSummary(ds.ByCategory, YearAll, 0)
	keys := make([]string, 0, len(summary))
	for _, e := range summary {
		keys = append(keys, e.Key)
	}
	require.ElementsMatch(t, []string{"WINE", "BEER", "LIQUOR"}, keys)
}

func TestBuildSeries_Idempotent(t *testing.T) {
	ds := fixture()
	selected := []string{"WINE", "LIQUOR"}

	first := BuildSeries(ds.ByCategory, selected, "2019")
	second := BuildSeries(ds.ByCategory, selected, "2019")
	require.Equal(t, first, second)

	require.Equal(t, BuildSummary(ds.ByWarehouse, "2019", 10), BuildSummary(ds.ByWarehouse, "2019", 10))
	require.Equal(t, []string{"WINE", "LIQUOR"}, selected)
}

func TestBuildSummary(t *testing.T) {
	ds := fixture()

	requireRanking(t, []RankEntry{
		{Key: "LIQUOR", Total: dec("100")},
		{Key: "WINE", Total: dec("18.50")},
		{Key: "BEER", Total: dec("5")},
	}, BuildSummary(ds.ByCategory, YearAll, 0))

	requireRanking(t, []RankEntry{
		{Key: "WINE", Total: dec("17.50")},
		{Key: "BEER", Total: dec("5")},
	}, BuildSummary(ds.ByCategory, "2018", 0))
}

func TestBuildSummary_StableTiesAndLimit(t *testing.T) {
	var records []sales.RawRecord
	for i := 0; i < 15; i++ {
		records = append(records, rec("2020", "1", "WINE", fmt.Sprintf("W%02d", i), "10", "0"))
	}
	records = append(records, rec("2020", "2", "WINE", "BIG", "50", "0"))
	ds := buildDataset("ds-ties", records...)

	summary := BuildSummary(ds.ByWarehouse, YearAll, 10)
	require.Len(t, summary, 10)
	assert.Equal(t, "BIG", summary[0].Key)
	for i := 1; i < len(summary); i++ {
		assert.Equal(t, fmt.Sprintf("W%02d", i-1), summary[i].Key)
		assert.False(t, summary[i].Total.GreaterThan(summary[i-1].Total))
	}

	require.Len(t, BuildSummary(ds.ByWarehouse, YearAll, 0), 16)
}

func TestBuildStatCards(t *testing.T) {
	ds := buildDataset("ds-stats",
		sales.RawRecord{
			"YEAR": "2018", "MONTH": "3", "ITEM TYPE": "WINE", "SUPPLIER": "A",
			"RETAIL SALES": "10.50", "WAREHOUSE SALES": "5.00", "RETAIL TRANSFERS": "1.00",
		},
		sales.RawRecord{
			"YEAR": "2018", "MONTH": "4", "ITEM TYPE": "WINE", "SUPPLIER": "A",
			"RETAIL SALES": "2.00", "WAREHOUSE SALES": "0", "RETAIL TRANSFERS": "0.25",
		},
	)

	cards := BuildStatCards(ds.ByCategory, []string{"WINE", "BEER"}, YearAll)
	require.Len(t, cards, 2)

	wine := cards[0]
	require.Equal(t, "WINE", wine.Key)
	require.True(t, dec("17.50").Equal(wine.Total))
	require.True(t, dec("12.50").Equal(wine.Retail))
	require.True(t, dec("5.00").Equal(wine.Warehouse))
	require.True(t, dec("1.25").Equal(wine.Transfers))

	beer := cards[1]
	require.Equal(t, "BEER", beer.Key)
	require.True(t, beer.Total.IsZero())
	require.True(t, beer.Transfers.IsZero())
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label string
		max   int
		want  string
	}{
		{label: "REPUBLIC NATIONAL DISTRIBUTING CO", max: 0, want: "REPUBLIC NATIONAL DISTRIBUTING CO"},
		{label: "REPUBLIC NATIONAL DISTRIBUTING CO", max: 12, want: "REPUBLIC NA…"},
		{label: "WINE", max: 4, want: "WINE"},
		{label: "WINE", max: 1, want: "…"},
		{label: "CHÂTEAU", max: 5, want: "CHÂT…"},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%d", tc.label, tc.max), func(t *testing.T) {
			require.Equal(t, tc.want, TruncateLabel(tc.label, tc.max))
		})
	}
}

func TestChartTitle(t *testing.T) {
	assert.Equal(t, "Monthly Sales (All Years Combined)", ChartTitle(YearAll))
	assert.Equal(t, "Monthly Sales - 2019", ChartTitle("2019"))
}

func requireRanking(t *testing.T, want, got []RankEntry) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Key, got[i].Key)
		require.Truef(t, want[i].Total.Equal(got[i].Total), "%s: want %s, got %s", want[i].Key, want[i].Total, got[i].Total)
	}
}
