package projection

import (
	"sort"
	"unicode/utf8"

	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/shopspring/decimal"
)

// YearAll disables the year filter.
const YearAll = "all"

// MonthLabels is the fixed x-axis shared by every series.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Series is one selected dimension value reshaped into 12 monthly totals.
// Months[0] is January.
type Series struct {
	Key    string
	Months [12]decimal.Decimal
}

// RankEntry is one row of a SummaryRanking.
type RankEntry struct {
	Key   string
	Total decimal.Decimal
}

// StatCard breaks a selected value's total down by measure.
type StatCard struct {
	Key       string
	Total     decimal.Decimal
	Retail    decimal.Decimal
	Warehouse decimal.Decimal
	Transfers decimal.Decimal
}

func yearMatches(filter, year string) bool {
	return filter == YearAll || filter == year
}

// dedupe keeps the first occurrence of every value.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// BuildSeries returns one zero-filled 12-month series per selected value,
// in selection order. Values that are not selected produce no series;
// selected values with no buckets produce an all-zero series.
func BuildSeries(buckets *sales.BucketSet, selected []string, year string) []Series {
	keys := dedupe(selected)
	series := make([]Series, len(keys))
	pos := make(map[string]int, len(keys))
	for i, k := range keys {
		series[i] = Series{Key: k}
		for m := range series[i].Months {
			series[i].Months[m] = decimal.Zero
		}
		pos[k] = i
	}

	buckets.Each(func(b sales.Bucket) {
		i, ok := pos[b.Key.Value]
		if !ok || !yearMatches(year, b.Key.Year) {
			return
		}
		slot := &series[i].Months[b.Key.Month-1]
		*slot = slot.Add(b.Total)
	})

	return series
}

// BuildSummary ranks every value in buckets by total sales under the year
// filter, ignoring selection. Ties keep first-seen order. A positive limit
// truncates the ranking.
func BuildSummary(buckets *sales.BucketSet, year string, limit int) []RankEntry {
	totals := make(map[string]decimal.Decimal)
	var order []string

	buckets.Each(func(b sales.Bucket) {
		if !yearMatches(year, b.Key.Year) {
			return
		}
		cur, seen := totals[b.Key.Value]
		if !seen {
			order = append(order, b.Key.Value)
		}
		totals[b.Key.Value] = cur.Add(b.Total)
	})

	ranking := make([]RankEntry, 0, len(order))
	for _, k := range order {
		ranking = append(ranking, RankEntry{Key: k, Total: totals[k]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Total.GreaterThan(ranking[j].Total)
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// BuildStatCards sums each measure per selected value under the year filter.
func BuildStatCards(buckets *sales.BucketSet, selected []string, year string) []StatCard {
	keys := dedupe(selected)
	cards := make([]StatCard, len(keys))
	pos := make(map[string]int, len(keys))
	for i, k := range keys {
		cards[i] = StatCard{
			Key:       k,
			Total:     decimal.Zero,
			Retail:    decimal.Zero,
			Warehouse: decimal.Zero,
			Transfers: decimal.Zero,
		}
		pos[k] = i
	}

	buckets.Each(func(b sales.Bucket) {
		i, ok := pos[b.Key.Value]
		if !ok || !yearMatches(year, b.Key.Year) {
			return
		}
		c := &cards[i]
		c.Total = c.Total.Add(b.Total)
		c.Retail = c.Retail.Add(b.Retail)
		c.Warehouse = c.Warehouse.Add(b.Warehouse)
		c.Transfers = c.Transfers.Add(b.Transfers)
	})

	return cards
}

// TruncateLabel shortens a label for display. It never changes the key a
// value is looked up by; responses carry both.
func TruncateLabel(label string, max int) string {
	if max <= 0 || utf8.RuneCountInString(label) <= max {
		return label
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(label)
	return string(runes[:max-1]) + "…"
}

// ChartTitle is the heading for the monthly chart.
func ChartTitle(year string) string {
	if year == YearAll {
		return "Monthly Sales (All Years Combined)"
	}
	return "Monthly Sales - " + year
}
