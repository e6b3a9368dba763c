// Package analytics computes aggregate views over the catalog: top brand and
// material frequencies plus descriptive price statistics.
package analytics

import (
	"math"
	"sort"

	"github.com/Krishna1412004/product-recommendation-app/internal/catalog"
)

const topN = 10

// PriceStats mirrors a pandas describe() over the price column.
type PriceStats struct {
	Count float64 `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"25%"`
	P50   float64 `json:"50%"`
	P75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// Report is the /analytics payload.
type Report struct {
	BrandCounts    map[string]int `json:"brand_counts"`
	MaterialCounts map[string]int `json:"material_counts"`
	PriceStats     PriceStats     `json:"price_stats"`
}

// Aggregate builds a report over the full store. Pure read; safe to call
// concurrently.
func Aggregate(store *catalog.Store) (*Report, error) {
	if !store.Loaded() {
		return nil, catalog.ErrUnavailable
	}

	products := store.All()
	brands := make([]string, 0, len(products))
	materials := make([]string, 0, len(products))
	prices := make([]float64, 0, len(products))
	for _, p := range products {
		brands = append(brands, p.Brand)
		materials = append(materials, p.Material)
		prices = append(prices, p.Price)
	}

	return &Report{
		BrandCounts:    topCounts(brands),
		MaterialCounts: topCounts(materials),
		PriceStats:     describe(prices),
	}, nil
}

// topCounts returns the 10 most frequent values with their counts. Ties keep
// first-encountered order.
func topCounts(values []string) map[string]int {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)
	for i, v := range values {
		if _, ok := counts[v]; !ok {
			firstSeen[v] = i
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}

	top := make(map[string]int, len(order))
	for _, v := range order {
		top[v] = counts[v]
	}
	return top
}

// describe computes count, mean, sample std, min, quartiles and max. A
// single value yields std 0 rather than pandas' NaN, which JSON cannot carry.
func describe(values []float64) PriceStats {
	n := len(values)
	if n == 0 {
		return PriceStats{}
	}

	s := append([]float64(nil), values...)
	sort.Float64s(s)

	sum := 0.0
	for _, v := range s {
		sum += v
	}
	mean := sum / float64(n)

	std := 0.0
	if n > 1 {
		ss := 0.0
		for _, v := range s {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return PriceStats{
		Count: float64(n),
		Mean:  mean,
		Std:   std,
		Min:   s[0],
		P25:   percentile(s, 0.25),
		P50:   percentile(s, 0.50),
		P75:   percentile(s, 0.75),
		Max:   s[n-1],
	}
}

// percentile uses linear interpolation between closest ranks over a sorted
// slice, matching numpy's default.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
