package recommend

import (
	"context"
	"sort"
	"strings"

	"github.com/Krishna1412004/product-recommendation-app/internal/catalog"
	"github.com/Krishna1412004/product-recommendation-app/internal/classify"
	"github.com/Krishna1412004/product-recommendation-app/internal/model"
)

// Keyword is the in-process fallback recommender: a linear scan scoring each
// product by how many distinct query terms appear in its text.
type Keyword struct {
	store    *catalog.Store
	describe Describer
}

func NewKeyword(store *catalog.Store, describe Describer) *Keyword {
	return &Keyword{store: store, describe: describe}
}

// Recommend scores every product against the whitespace-split lowercase
// query terms. A term is counted once no matter how often it occurs, the
// score is the matched fraction of terms, and ties keep load order. An empty
// or whitespace-only query yields no results.
func (k *Keyword) Recommend(ctx context.Context, query string, limit int) ([]model.Recommendation, error) {
	if !k.store.Loaded() {
		return nil, catalog.ErrUnavailable
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	terms := strings.Fields(strings.ToLower(query))
	recs := []model.Recommendation{}
	if len(terms) == 0 {
		return recs, nil
	}

	for _, p := range k.store.All() {
		text := strings.ToLower(p.Title + " " + p.Brand + " " + p.Material + " " + p.Color)
		matched := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		recs = append(recs, model.Recommendation{
			Product: p,
			Score:   float64(matched) / float64(len(terms)),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	for i := range recs {
		recs[i].PredictedCategory = classify.Predict(recs[i].Title, recs[i].Categories)
		recs[i].GeneratedDescription = k.describe.Describe(ctx, recs[i].Product)
	}
	return recs, nil
}
