package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/salesdash-lab/salesdash/internal/core/sales"
	"golang.org/x/sync/errgroup"
)

// ErrAlreadyLoaded is returned when Run is called a second time.
var ErrAlreadyLoaded = errors.New("loader already ran")

// Hooks are the two terminal signals of a load. Exactly one fires per Run.
type Hooks struct {
	OnReady   func(ds *sales.Dataset)
	OnFailure func(reason string)
}

// Loader turns the source's rows into a Dataset: normalize, aggregate along
// both dimensions, then index. It runs at most once.
type Loader struct {
	source  Source
	columns sales.Columns
	hooks   Hooks
	ran     atomic.Bool
	nowFn   func() time.Time
}

// NewLoader creates a loader for source.
func NewLoader(source Source, columns sales.Columns, hooks Hooks) *Loader {
	if source == nil {
		panic("ingestion: source must not be nil")
	}
	return &Loader{
		source:  source,
		columns: columns,
		hooks:   hooks,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Run performs the load. On failure no dataset is returned or published.
func (l *Loader) Run(ctx context.Context) (*sales.Dataset, error) {
	if !l.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyLoaded
	}

	started := l.nowFn()
	slog.Info("[Loader] Reading dataset", "source", l.source.Name())

	ds, err := l.build(ctx)
	if err != nil {
		reason := err.Error()
		slog.Error("[Loader] Dataset load failed", "source", l.source.Name(), "error", err)
		if l.hooks.OnFailure != nil {
			l.hooks.OnFailure(reason)
		}
		return nil, err
	}

	slog.Info("[Loader] Dataset ready",
		"dataset_id", ds.ID,
		"raw_records", ds.RawCount,
		"facts", len(ds.Facts),
		"dropped", ds.Dropped,
		"category_buckets", ds.ByCategory.Len(),
		"warehouse_buckets", ds.ByWarehouse.Len(),
		"duration", l.nowFn().Sub(started),
	)
	if l.hooks.OnReady != nil {
		l.hooks.OnReady(ds)
	}
	return ds, nil
}

func (l *Loader) build(ctx context.Context) (*sales.Dataset, error) {
	records, err := l.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.source.Name(), err)
	}

	facts, dropped := sales.NormalizeAll(records, l.columns)
	if dropped > 0 {
		slog.Debug("[Loader] Dropped malformed rows", "count", dropped)
	}

	// The passes only read facts, so they can share the slice.
	var byCategory, byWarehouse *sales.BucketSet
	var index sales.Index
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		byCategory = sales.Aggregate(facts, sales.DimensionCategory)
		return gctx.Err()
	})
	g.Go(func() error {
		byWarehouse = sales.Aggregate(facts, sales.DimensionWarehouse)
		return gctx.Err()
	})
	g.Go(func() error {
		index = sales.BuildIndex(facts)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	return &sales.Dataset{
		ID:          uuid.NewString(),
		Source:      l.source.Name(),
		LoadedAt:    l.nowFn(),
		RawCount:    len(records),
		Dropped:     dropped,
		Facts:       facts,
		ByCategory:  byCategory,
		ByWarehouse: byWarehouse,
		Index:       index,
	}, nil
}
