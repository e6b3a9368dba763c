package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Krishna1412004/product-recommendation-app/internal/catalog"
	"github.com/Krishna1412004/product-recommendation-app/internal/classify"
	"github.com/Krishna1412004/product-recommendation-app/internal/model"
)

// Vector delegates ranking to an external embedding model plus a vector
// index, then hydrates each match from the in-memory store.
type Vector struct {
	store    *catalog.Store
	embedder Embedder
	index    VectorIndex
	describe Describer
	log      *logrus.Logger
}

func NewVector(store *catalog.Store, embedder Embedder, index VectorIndex, describe Describer, log *logrus.Logger) *Vector {
	return &Vector{store: store, embedder: embedder, index: index, describe: describe, log: log}
}

func (v *Vector) Recommend(ctx context.Context, query string, limit int) ([]model.Recommendation, error) {
	if !v.store.Loaded() {
		return nil, catalog.ErrUnavailable
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	vec, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := v.index.Query(ctx, vec, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	recs := []model.Recommendation{}
	for _, m := range matches {
		p, err := v.store.Get(m.UniqID)
		if err != nil {
			// Index rows can outlive a reloaded catalog; skip strays.
			if errors.Is(err, catalog.ErrNotFound) {
				v.log.WithField("uniq_id", m.UniqID).Warn("indexed product missing from catalog")
				continue
			}
			return nil, err
		}
		recs = append(recs, model.Recommendation{
			Product:              p,
			Score:                m.Similarity,
			PredictedCategory:    classify.Predict(p.Title, p.Categories),
			GeneratedDescription: v.describe.Describe(ctx, p),
		})
	}
	return recs, nil
}
