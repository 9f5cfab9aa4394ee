package projection

import (
	v1 "github.com/salesdash-lab/salesdash/internal/api/v1"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/salesdash-lab/salesdash/internal/palette"
)

func toColor(c palette.Color) v1.Color {
	return v1.Color{Main: c.Main, Light: c.Light}
}

// Dimensions lists the options a client can select from.
func (s *Service) Dimensions(ds *sales.Dataset) v1.DimensionsResponse {
	ix := ds.Index

	categories := make([]v1.Option, 0, len(ix.Categories))
	for _, name := range ix.Categories {
		categories = append(categories, s.option(ix, sales.DimensionCategory, name))
	}

	return v1.DimensionsResponse{
		DatasetID:  ds.ID,
		Categories: categories,
		Years:      append([]string{}, ix.Years...),
		Warehouses: s.WarehouseOptions(ix, ix.Warehouses),
	}
}

// WarehouseOptions renders names, which must come from ix, with their rank
// and total.
func (s *Service) WarehouseOptions(ix sales.Index, names []string) []v1.Option {
	out := make([]v1.Option, 0, len(names))
	for _, name := range names {
		out = append(out, s.option(ix, sales.DimensionWarehouse, name))
	}
	return out
}

func (s *Service) option(ix sales.Index, dim sales.Dimension, name string) v1.Option {
	opt := v1.Option{
		Key:   name,
		Label: s.Label(name),
		Color: toColor(s.Color(ix, dim, name)),
	}
	if dim == sales.DimensionWarehouse {
		if rank, ok := ix.WarehouseRank(name); ok {
			opt.Rank = rank + 1
		}
		if total, ok := ix.WarehouseTotals[name]; ok {
			amount := v1.NewAmount(total)
			opt.Total = &amount
		}
	}
	return opt
}

// Chart renders the monthly series of v.
func (s *Service) Chart(ix sales.Index, v *View) v1.ChartResponse {
	series := make([]v1.Series, 0, len(v.Series))
	for _, sr := range v.Series {
		values := make([]float64, len(sr.Months))
		for i, m := range sr.Months {
			values[i] = m.InexactFloat64()
		}
		series = append(series, v1.Series{
			Key:    sr.Key,
			Label:  s.Label(sr.Key),
			Color:  toColor(s.Color(ix, v.Query.Dimension, sr.Key)),
			Values: values,
		})
	}

	return v1.ChartResponse{
		DatasetID: v.DatasetID,
		Dimension: string(v.Query.Dimension),
		Year:      v.Query.Year,
		Title:     v.Title,
		Labels:    MonthLabels,
		Series:    series,
	}
}

// Summary renders the ranking of v.
func (s *Service) Summary(ix sales.Index, v *View) v1.SummaryResponse {
	entries := make([]v1.RankEntry, 0, len(v.Summary))
	for _, e := range v.Summary {
		entries = append(entries, v1.RankEntry{
			Key:   e.Key,
			Label: s.Label(e.Key),
			Color: toColor(s.Color(ix, v.Query.Dimension, e.Key)),
			Total: v1.NewAmount(e.Total),
		})
	}

	return v1.SummaryResponse{
		DatasetID: v.DatasetID,
		Dimension: string(v.Query.Dimension),
		Year:      v.Query.Year,
		Entries:   entries,
	}
}

// Stats renders the stat cards of v.
func (s *Service) Stats(ix sales.Index, v *View) v1.StatsResponse {
	cards := make([]v1.StatCard, 0, len(v.Stats))
	for _, c := range v.Stats {
		cards = append(cards, v1.StatCard{
			Key:       c.Key,
			Label:     s.Label(c.Key),
			Color:     toColor(s.Color(ix, v.Query.Dimension, c.Key)),
			Total:     v1.NewAmount(c.Total),
			Retail:    v1.NewAmount(c.Retail),
			Warehouse: v1.NewAmount(c.Warehouse),
			Transfers: v1.NewAmount(c.Transfers),
		})
	}

	return v1.StatsResponse{
		DatasetID: v.DatasetID,
		Dimension: string(v.Query.Dimension),
		Year:      v.Query.Year,
		Cards:     cards,
	}
}

// Render bundles every part of v.
func (s *Service) Render(ix sales.Index, v *View) v1.ViewResponse {
	return v1.ViewResponse{
		Chart:   s.Chart(ix, v),
		Summary: s.Summary(ix, v),
		Stats:   s.Stats(ix, v),
	}
}
