package projection

import (
	"github.com/salesdash-lab/salesdash/internal/core/sales"
)

// ViewQueryRequest represents the query parameters shared by the view endpoints.
type ViewQueryRequest struct {
	Dimension string   `form:"dimension"` // default: "category"
	Year      string   `form:"year"`      // default: "all"
	Values    []string `form:"value"`
}

// Query selects one dashboard view.
type Query struct {
	Dimension sales.Dimension
	Year      string
	Selected  []string
}

// View is the derived output for one Query over one dataset.
// Views are cached and shared between callers; treat them as read-only.
type View struct {
	DatasetID string
	Query     Query
	Title     string
	Series    []Series
	Summary   []RankEntry
	Stats     []StatCard
}

// Options tune the projection service.
type Options struct {
	SummaryLimit int // warehouse ranking length; categories are never truncated
	LabelMaxLen  int // display label length, 0 disables truncation
	CacheSize    int // memoized views
}
