package engine

import (
	"github.com/velosport/recsvc/internal/config"
	"github.com/velosport/recsvc/pkg/models"
)

// FeatureExtractor maps a product record to a fixed-length feature
// vector. The layout is: one-hot over the category vocabulary, one
// normalized price term, one-hot over the brand vocabulary. The
// dimension is fixed by the vocabularies alone, never by the data.
type FeatureExtractor struct {
	categories []string
	brands     []string
	priceScale float64
}

func NewFeatureExtractor(cfg *config.EngineConfig) *FeatureExtractor {
	fe := &FeatureExtractor{
		categories: cfg.Categories,
		brands:     cfg.Brands,
		priceScale: cfg.PriceScale,
	}
	if fe.priceScale <= 0 {
		fe.priceScale = 1000.0
	}
	return fe
}

// Dimension returns the length of every vector produced by Vector.
func (fe *FeatureExtractor) Dimension() int {
	return len(fe.categories) + 1 + len(fe.brands)
}

// Vector computes the embedding for a product. It is a pure function
// of (category, price, brand): missing fields produce zero segments,
// unmatched vocabulary entries leave their segment all zeros.
func (fe *FeatureExtractor) Vector(p models.Product) []float64 {
	features := make([]float64, 0, fe.Dimension())

	category := ""
	if p.Category != nil {
		category = *p.Category
	}
	for _, cat := range fe.categories {
		if category == cat {
			features = append(features, 1.0)
		} else {
			features = append(features, 0.0)
		}
	}

	price := 0.0
	if p.Price != nil {
		price = *p.Price
	}
	normalized := price / fe.priceScale
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	features = append(features, normalized)

	brand := ""
	if p.Brand != nil {
		brand = *p.Brand
	}
	for _, b := range fe.brands {
		if brand == b {
			features = append(features, 1.0)
		} else {
			features = append(features, 0.0)
		}
	}

	return features
}
