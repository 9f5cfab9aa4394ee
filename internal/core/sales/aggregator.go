package sales

import "github.com/shopspring/decimal"

// BucketKey uniquely identifies an aggregate bucket.
// It is a comparable struct, so label values may contain any character
// without two keys ever colliding.
type BucketKey struct {
	Year  string
	Month int
	Value string // category or warehouse label, depending on the set's dimension
}

// Bucket holds running sums for one (year, month, value) key.
type Bucket struct {
	Key BucketKey

	Retail    decimal.Decimal
	Warehouse decimal.Decimal
	Transfers decimal.Decimal
	Total     decimal.Decimal // Retail + Warehouse

	FactCount int64
}

func (b *Bucket) add(f Fact) {
	b.Retail = b.Retail.Add(f.RetailAmount)
	b.Warehouse = b.Warehouse.Add(f.WarehouseAmount)
	b.Transfers = b.Transfers.Add(f.TransferAmount)
	b.Total = b.Total.Add(f.TotalAmount())
	b.FactCount++
}

// BucketSet is the output of one aggregation pass.
// Buckets iterate in the order their key was first seen, so anything ranked
// from a BucketSet breaks ties by input order.
type BucketSet struct {
	order   []BucketKey
	buckets map[BucketKey]*Bucket
}

// Aggregate folds facts into per-(year, month, value) totals along dim.
// Facts without a label for dim are skipped.
func Aggregate(facts []Fact, dim Dimension) *BucketSet {
	set := &BucketSet{
		buckets: make(map[BucketKey]*Bucket),
	}

	for _, f := range facts {
		if !f.HasLabel(dim) {
			continue
		}
		key := BucketKey{Year: f.Year, Month: f.Month, Value: f.Label(dim)}

		b, ok := set.buckets[key]
		if !ok {
			b = &Bucket{Key: key}
			set.buckets[key] = b
			set.order = append(set.order, key)
		}
		b.add(f)
	}

	return set
}

// Len returns the number of buckets.
func (s *BucketSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Get returns a copy of the bucket stored under key.
func (s *BucketSet) Get(key BucketKey) (Bucket, bool) {
	if s == nil {
		return Bucket{}, false
	}
	b, ok := s.buckets[key]
	if !ok {
		return Bucket{}, false
	}
	return *b, true
}

// Each calls fn for every bucket in first-seen order. fn receives copies.
func (s *BucketSet) Each(fn func(Bucket)) {
	if s == nil {
		return
	}
	for _, key := range s.order {
		fn(*s.buckets[key])
	}
}

// Keys returns the bucket keys in first-seen order.
func (s *BucketSet) Keys() []BucketKey {
	if s == nil {
		return nil
	}
	out := make([]BucketKey, len(s.order))
	copy(out, s.order)
	return out
}
