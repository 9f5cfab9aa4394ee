package v1

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value as handed to the presentation layer.
// Value is safe to plot; Display is the two-decimal rendering.
type Amount struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// NewAmount converts an exact decimal into its wire form. Value saturates at
// ±math.MaxFloat64, since JSON has no infinity.
func NewAmount(d decimal.Decimal) Amount {
	v := d.InexactFloat64()
	if math.IsInf(v, 0) {
		v = math.Copysign(math.MaxFloat64, v)
	}
	return Amount{
		Value:   v,
		Display: d.StringFixed(2),
	}
}

// Color mirrors palette.Color on the wire.
type Color struct {
	Main  string `json:"main"`
	Light string `json:"light"`
}

// Option is one selectable dimension value.
// Key is the identity used in requests; Label may be shortened for display.
type Option struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Color Color   `json:"color"`
	Rank  int     `json:"rank,omitempty"`
	Total *Amount `json:"total,omitempty"`
}

// DimensionsResponse lists the options derived from the loaded dataset.
type DimensionsResponse struct {
	DatasetID  string   `json:"dataset_id"`
	Categories []Option `json:"categories"`
	Years      []string `json:"years"`
	Warehouses []Option `json:"warehouses"`
}

// Series is a 12-month line or bar series.
type Series struct {
	Key    string    `json:"key"`
	Label  string    `json:"label"`
	Color  Color     `json:"color"`
	Values []float64 `json:"values"`
}

// ChartResponse is the monthly chart payload.
type ChartResponse struct {
	DatasetID string     `json:"dataset_id"`
	Dimension string     `json:"dimension"`
	Year      string     `json:"year"`
	Title     string     `json:"title"`
	Labels    [12]string `json:"labels"`
	Series    []Series   `json:"series"`
}

// RankEntry is one slice of the distribution summary.
type RankEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color Color  `json:"color"`
	Total Amount `json:"total"`
}

// SummaryResponse is the ranked distribution for a dimension and year.
type SummaryResponse struct {
	DatasetID string      `json:"dataset_id"`
	Dimension string      `json:"dimension"`
	Year      string      `json:"year"`
	Entries   []RankEntry `json:"entries"`
}

// StatCard is the per-value breakdown shown under the chart.
type StatCard struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Color     Color  `json:"color"`
	Total     Amount `json:"total"`
	Retail    Amount `json:"retail"`
	Warehouse Amount `json:"warehouse"`
	Transfers Amount `json:"transfers"`
}

// StatsResponse carries stat cards for the selected values.
type StatsResponse struct {
	DatasetID string     `json:"dataset_id"`
	Dimension string     `json:"dimension"`
	Year      string     `json:"year"`
	Cards     []StatCard `json:"cards"`
}

// ViewResponse bundles everything one dashboard render needs.
type ViewResponse struct {
	Chart   ChartResponse   `json:"chart"`
	Summary SummaryResponse `json:"summary"`
	Stats   StatsResponse   `json:"stats"`
}

// SelectionState is the user-controlled working set of a session.
type SelectionState struct {
	Dimension       string   `json:"dimension"`
	Categories      []string `json:"categories"`
	Warehouses      []string `json:"warehouses"`
	Year            string   `json:"year"`
	ChartType       string   `json:"chart_type"`
	WarehouseSearch string   `json:"warehouse_search"`
	Seeded          bool     `json:"seeded"`
}

// SessionResponse is returned by every session endpoint.
type SessionResponse struct {
	SessionID        string         `json:"session_id"`
	State            SelectionState `json:"state"`
	WarehouseOptions []Option       `json:"warehouse_options,omitempty"`
	View             *ViewResponse  `json:"view,omitempty"`
}

// Action is a selection change posted by the client.
type Action struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value"`
}

// DatasetStatus reports the outcome of the one-time load.
type DatasetStatus struct {
	Status     string     `json:"status"` // loading | ready | failed
	DatasetID  string     `json:"dataset_id,omitempty"`
	Source     string     `json:"source,omitempty"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
	RawRecords int        `json:"raw_records"`
	Facts      int        `json:"facts"`
	Dropped    int        `json:"dropped"`
	Reason     string     `json:"reason,omitempty"`
}
