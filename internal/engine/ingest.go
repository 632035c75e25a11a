package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/pkg/models"
)

// RecordInteraction appends the interaction to the user's history and
// folds it into the profile vector. Unknown kinds normalize to view;
// an unknown product still lands in the history but changes no profile
// coordinate. The returned record carries the normalized kind.
func (e *Engine) RecordInteraction(userID, productID, kind string) models.Interaction {
	rec := models.Interaction{
		ProductID: productID,
		Kind:      models.NormalizeKind(kind),
	}
	e.interactions.Append(userID, rec)

	initialLen := e.products.Len()
	idx := -1
	if i, ok := e.products.Index(productID); ok {
		idx = i
	}
	e.profiles.Record(userID, idx, initialLen)

	e.metrics.interactionRecorded(rec.Kind)
	e.logger.WithFields(logrus.Fields{
		"user_id":          userID,
		"product_id":       productID,
		"interaction_type": rec.Kind,
	}).Info("Recorded interaction")

	return rec
}

// UpdateEmbeddings computes and stores an embedding for every record
// with a resolvable id, overwriting existing entries. Records without
// an id are skipped; the batch never aborts. Returns the number of
// records processed successfully.
func (e *Engine) UpdateEmbeddings(products []models.Product) int {
	updated := 0
	for i, p := range products {
		id := p.ResolvedID()
		if id == "" {
			e.logger.WithField("position", i).Warn("Skipping product without resolvable id")
			continue
		}
		e.products.Put(id, e.features.Vector(p))
		e.metrics.embeddingUpdated()
		updated++
	}

	e.logger.WithFields(logrus.Fields{
		"updated":   updated,
		"submitted": len(products),
	}).Info("Updated product embeddings")

	return updated
}
