package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports engine activity counters and store-size gauges.
type Metrics struct {
	recommendationsServed *prometheus.CounterVec
	interactionsRecorded  *prometheus.CounterVec
	embeddingsUpdated     prometheus.Counter
}

// NewMetrics registers engine metrics on reg. Store sizes are exposed
// as gauge functions so they always reflect the live containers.
func NewMetrics(reg prometheus.Registerer, products *ProductStore, profiles *ProfileStore, interactions *InteractionLog) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		recommendationsServed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recsvc_recommendations_served_total",
			Help: "Recommendation results served, by strategy",
		}, []string{"strategy"}),
		interactionsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recsvc_interactions_recorded_total",
			Help: "User interactions recorded, by interaction type",
		}, []string{"type"}),
		embeddingsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "recsvc_embeddings_updated_total",
			Help: "Product embeddings computed and stored",
		}),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "recsvc_products_stored",
		Help: "Products with stored embeddings",
	}, func() float64 { return float64(products.Len()) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "recsvc_user_profiles",
		Help: "Users with interaction profiles",
	}, func() float64 { return float64(profiles.Len()) })
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "recsvc_interactions_stored",
		Help: "Total interaction history entries",
	}, func() float64 { return float64(interactions.TotalCount()) })

	return m
}

func (m *Metrics) recommendationServed(strategy string) {
	if m == nil {
		return
	}
	m.recommendationsServed.WithLabelValues(strategy).Inc()
}

func (m *Metrics) interactionRecorded(kind string) {
	if m == nil {
		return
	}
	m.interactionsRecorded.WithLabelValues(kind).Inc()
}

func (m *Metrics) embeddingUpdated() {
	if m == nil {
		return
	}
	m.embeddingsUpdated.Inc()
}
