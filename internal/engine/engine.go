package engine

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/config"
	"github.com/velosport/recsvc/pkg/models"
)

// Engine orchestrates the three recommendation strategies over the
// injected stores. Strategy reads work on store snapshots; mutations
// go through RecordInteraction and UpdateEmbeddings.
type Engine struct {
	features     *FeatureExtractor
	products     *ProductStore
	profiles     *ProfileStore
	interactions *InteractionLog
	metrics      *Metrics
	logger       *logrus.Logger

	neighborThreshold float64
	defaultLimit      int
	maxLimit          int
}

func New(
	features *FeatureExtractor,
	products *ProductStore,
	profiles *ProfileStore,
	interactions *InteractionLog,
	cfg *config.EngineConfig,
	logger *logrus.Logger,
	metrics *Metrics,
) *Engine {
	e := &Engine{
		features:          features,
		products:          products,
		profiles:          profiles,
		interactions:      interactions,
		metrics:           metrics,
		logger:            logger,
		neighborThreshold: cfg.NeighborThreshold,
		defaultLimit:      cfg.DefaultLimit,
		maxLimit:          cfg.MaxLimit,
	}
	if e.defaultLimit < 1 {
		e.defaultLimit = 5
	}
	if e.maxLimit < 1 {
		e.maxLimit = 50
	}
	return e
}

// clampLimit falls back to the default for limits outside [1, max].
func (e *Engine) clampLimit(limit int) int {
	if limit < 1 || limit > e.maxLimit {
		return e.defaultLimit
	}
	return limit
}

// ContentBased ranks every other stored product by cosine similarity
// to the target embedding. An unknown product id yields an empty
// result, not an error. Ties keep store insertion order.
func (e *Engine) ContentBased(productID string, limit int) ([]string, error) {
	limit = e.clampLimit(limit)

	target, ok := e.products.Get(productID)
	if !ok {
		return []string{}, nil
	}

	ids, vectors := e.products.Snapshot()

	type scored struct {
		id  string
		sim float64
	}
	scores := make([]scored, 0, len(ids))
	for i, id := range ids {
		if id == productID {
			continue
		}
		sim, err := Cosine(target, vectors[i])
		if err != nil {
			return nil, err
		}
		scores = append(scores, scored{id: id, sim: sim})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].sim > scores[j].sim
	})
	if len(scores) > limit {
		scores = scores[:limit]
	}

	out := make([]string, 0, len(scores))
	for _, s := range scores {
		out = append(out, s.id)
	}

	e.metrics.recommendationServed(models.StrategyContentBased)
	return out, nil
}

// ForUser recommends products interacted with by similar users and
// reports the strategy that produced the result. Users without a
// profile, and users whose neighborhood produces no candidates, get
// the popularity ranking tagged as such. Neighbors must exceed the
// similarity threshold strictly. Candidate ties break by count
// descending, then product id ascending.
func (e *Engine) ForUser(userID string, limit int) ([]string, string, error) {
	limit = e.clampLimit(limit)

	target, ok := e.profiles.Get(userID)
	if !ok {
		return e.Popular(limit), models.StrategyPopularity, nil
	}

	users, profiles := e.profiles.Snapshot()

	// Profiles created at different store sizes differ in length;
	// missing trailing coordinates are zero counts.
	maxLen := len(target)
	for _, p := range profiles {
		if len(p) > maxLen {
			maxLen = len(p)
		}
	}
	target = padTo(target, maxLen)

	seen := make(map[string]bool)
	for _, rec := range e.interactions.History(userID) {
		seen[rec.ProductID] = true
	}

	counts := make(map[string]int)
	for i, uid := range users {
		if uid == userID {
			continue
		}
		sim, err := Cosine(target, padTo(profiles[i], maxLen))
		if err != nil {
			return nil, "", err
		}
		if sim <= e.neighborThreshold {
			continue
		}
		for _, rec := range e.interactions.History(uid) {
			if !seen[rec.ProductID] {
				counts[rec.ProductID]++
			}
		}
	}

	if len(counts) == 0 {
		return e.Popular(limit), models.StrategyPopularity, nil
	}

	candidates := make([]string, 0, len(counts))
	for id := range counts {
		candidates = append(candidates, id)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if counts[candidates[i]] != counts[candidates[j]] {
			return counts[candidates[i]] > counts[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	e.metrics.recommendationServed(models.StrategyCollaborative)
	return candidates, models.StrategyCollaborative, nil
}

// Popular ranks products by total occurrence across all interaction
// histories. Ties keep first-seen order from the count pass, which is
// deterministic because histories iterate in first-interaction user
// order.
func (e *Engine) Popular(limit int) []string {
	limit = e.clampLimit(limit)

	users, histories := e.interactions.Snapshot()

	counts := make(map[string]int)
	order := make([]string, 0)
	for i := range users {
		for _, rec := range histories[i] {
			if _, ok := counts[rec.ProductID]; !ok {
				order = append(order, rec.ProductID)
			}
			counts[rec.ProductID]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	e.metrics.recommendationServed(models.StrategyPopularity)
	return order
}

// HasProduct reports whether an embedding is stored for the id.
func (e *Engine) HasProduct(productID string) bool {
	_, ok := e.products.Index(productID)
	return ok
}

// Stats reports current store sizes.
func (e *Engine) Stats() models.Stats {
	return models.Stats{
		TotalProducts:     e.products.Len(),
		TotalUsers:        e.profiles.Len(),
		TotalInteractions: e.interactions.TotalCount(),
	}
}

func padTo(v []float64, n int) []float64 {
	if len(v) >= n {
		return v
	}
	out := make([]float64, n)
	copy(out, v)
	return out
}
