package model

// Product is one cleaned catalog row, keyed by UniqID.
type Product struct {
	UniqID            string  `json:"uniq_id"`
	Title             string  `json:"title"`
	Brand             string  `json:"brand"`
	Material          string  `json:"material"`
	Color             string  `json:"color"`
	Price             float64 `json:"price"`
	PackageDimensions string  `json:"package_dimensions"`
	Categories        string  `json:"categories"`
	Description       string  `json:"description"`
}

// Recommendation is a product returned by a recommender, enriched with the
// match score, the rule-based category guess and the marketing description.
type Recommendation struct {
	Product
	Score                float64 `json:"score"`
	PredictedCategory    string  `json:"predicted_category"`
	GeneratedDescription string  `json:"generated_description"`
}
