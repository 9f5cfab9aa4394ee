package projection

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"github.com/salesdash-lab/salesdash/internal/palette"
)

const defaultCacheSize = 256

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid view query")

// DatasetProvider returns the loaded dataset, or an error while it is
// unavailable. ingestion.Holder implements it.
type DatasetProvider interface {
	Current() (*sales.Dataset, error)
}

// Service derives chart, summary and stat views from the loaded dataset.
// The dataset never changes once published, so views are memoized.
type Service struct {
	datasets DatasetProvider
	palette  *palette.Palette
	opts     Options
	cache    *lru.Cache[uint64, *View]
}

// NewService creates a new projection service.
func NewService(datasets DatasetProvider, pal *palette.Palette, opts Options) *Service {
	if datasets == nil {
		panic("projection: dataset provider must not be nil")
	}
	if pal == nil {
		pal = palette.Builtin()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.SummaryLimit < 0 {
		opts.SummaryLimit = 0
	}

	cache, err := lru.New[uint64, *View](opts.CacheSize)
	if err != nil {
		panic(fmt.Sprintf("projection: create view cache: %v", err))
	}

	return &Service{
		datasets: datasets,
		palette:  pal,
		opts:     opts,
		cache:    cache,
	}
}

// Dataset returns the loaded dataset or the reason it is unavailable.
func (s *Service) Dataset() (*sales.Dataset, error) {
	return s.datasets.Current()
}

// View computes, or returns the memoized, view for q.
func (s *Service) View(ctx context.Context, q Query) (*View, error) {
	ds, err := s.datasets.Current()
	if err != nil {
		return nil, err
	}
	q, err = normalizeQuery(q)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cacheKey(ds.ID, q)
	if v, ok := s.cache.Get(key); ok && v.DatasetID == ds.ID && sameQuery(v.Query, q) {
		return v, nil
	}

	v := s.compute(ds, q)
	s.cache.Add(key, v)
	slog.Debug("[Projection] View computed",
		"dataset_id", ds.ID,
		"dimension", q.Dimension,
		"year", q.Year,
		"selected", len(q.Selected),
	)
	return v, nil
}

func (s *Service) compute(ds *sales.Dataset, q Query) *View {
	buckets := ds.Buckets(q.Dimension)

	limit := 0
	if q.Dimension == sales.DimensionWarehouse {
		limit = s.opts.SummaryLimit
	}

	return &View{
		DatasetID: ds.ID,
		Query:     q,
		Title:     ChartTitle(q.Year),
		Series:    BuildSeries(buckets, q.Selected, q.Year),
		Summary:   BuildSummary(buckets, q.Year, limit),
		Stats:     BuildStatCards(buckets, q.Selected, q.Year),
	}
}

// Color returns the display color of value along dim.
func (s *Service) Color(ix sales.Index, dim sales.Dimension, value string) palette.Color {
	if dim == sales.DimensionWarehouse {
		rank, ok := ix.WarehouseRank(value)
		if !ok {
			return s.palette.Default
		}
		return s.palette.Warehouse(rank)
	}
	return s.palette.Category(value)
}

// Label returns the display label of a value.
func (s *Service) Label(value string) string {
	return TruncateLabel(value, s.opts.LabelMaxLen)
}

func normalizeQuery(q Query) (Query, error) {
	if q.Dimension == "" {
		q.Dimension = sales.DimensionCategory
	}
	dim, err := sales.ParseDimension(string(q.Dimension))
	if err != nil {
		return q, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	q.Dimension = dim

	q.Year = strings.TrimSpace(q.Year)
	if q.Year == "" || strings.EqualFold(q.Year, YearAll) {
		q.Year = YearAll
	}

	q.Selected = dedupe(q.Selected)
	return q, nil
}

func sameQuery(a, b Query) bool {
	return a.Dimension == b.Dimension && a.Year == b.Year && slices.Equal(a.Selected, b.Selected)
}

// cacheKey digests the query parts length-prefixed, so no choice of label
// text can make two different queries produce the same byte stream.
func cacheKey(datasetID string, q Query) uint64 {
	d := xxhash.New()
	var n [8]byte
	write := func(part string) {
		binary.LittleEndian.PutUint64(n[:], uint64(len(part)))
		_, _ = d.Write(n[:])
		_, _ = d.WriteString(part)
	}

	write(datasetID)
	write(string(q.Dimension))
	write(q.Year)
	for _, v := range q.Selected {
		write(v)
	}
	return d.Sum64()
}
