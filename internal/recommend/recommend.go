// Package recommend ranks catalog products for a free-text query. Two
// strategies implement the same interface: an in-process keyword scan and a
// vector-similarity search delegated to pgvector.
package recommend

import (
	"context"

	"github.com/Krishna1412004/product-recommendation-app/internal/model"
)

// DefaultLimit is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultLimit = 5

// Recommender turns a query into a ranked list of recommendations.
type Recommender interface {
	Recommend(ctx context.Context, query string, limit int) ([]model.Recommendation, error)
}

// Describer produces the marketing description attached to each result. It
// never fails; implementations degrade to a deterministic template.
type Describer interface {
	Describe(ctx context.Context, p model.Product) string
}

// Embedder converts text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Match is one hit from a vector index query.
type Match struct {
	UniqID     string
	Similarity float64
}

// VectorIndex answers nearest-neighbour queries over product embeddings.
type VectorIndex interface {
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}
