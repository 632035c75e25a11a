package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/engine"
	"github.com/velosport/recsvc/internal/middleware"
	"github.com/velosport/recsvc/pkg/models"
)

type Handlers struct {
	Health         *HealthHandler
	Recommendation *RecommendationHandler
	Interaction    *InteractionHandler
	Embedding      *EmbeddingHandler
	Stats          *StatsHandler
}

func New(logger *logrus.Logger, eng *engine.Engine) *Handlers {
	validate := validator.New()

	return &Handlers{
		Health:         NewHealthHandler(logger),
		Recommendation: NewRecommendationHandler(logger, eng),
		Interaction:    NewInteractionHandler(logger, eng, validate),
		Embedding:      NewEmbeddingHandler(logger, eng),
		Stats:          NewStatsHandler(logger, eng),
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{
		Success:   false,
		Error:     message,
		RequestID: c.GetString(middleware.RequestIDKey),
	})
}
