package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/engine"
	"github.com/velosport/recsvc/pkg/models"
)

type RecommendationHandler struct {
	logger *logrus.Logger
	engine *engine.Engine
}

func NewRecommendationHandler(logger *logrus.Logger, eng *engine.Engine) *RecommendationHandler {
	return &RecommendationHandler{logger: logger, engine: eng}
}

// parseLimit tolerates absent or malformed limit values; the engine
// clamps out-of-range ones to its default.
func parseLimit(c *gin.Context) int {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0
	}
	return limit
}

// Content serves content-based recommendations for a product.
func (h *RecommendationHandler) Content(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("productId"))
	if productID == "" {
		respondError(c, http.StatusBadRequest, "Invalid product_id")
		return
	}

	limit := parseLimit(c)

	if !h.engine.HasProduct(productID) {
		h.logger.WithField("product_id", productID).Warn("Product not found")
		c.JSON(http.StatusOK, models.ContentRecommendationResponse{
			Success:         true,
			ProductID:       productID,
			Recommendations: []string{},
			Type:            models.StrategyContentBased,
			Count:           0,
			Message:         "Product not yet in system",
		})
		return
	}

	recommendations, err := h.engine.ContentBased(productID, limit)
	if err != nil {
		h.logger.WithError(err).WithField("product_id", productID).Error("Content recommendation error")
		respondError(c, http.StatusInternalServerError, "Failed to generate recommendations")
		return
	}

	c.JSON(http.StatusOK, models.ContentRecommendationResponse{
		Success:         true,
		ProductID:       productID,
		Recommendations: recommendations,
		Type:            models.StrategyContentBased,
		Count:           len(recommendations),
	})
}

// User serves personalized recommendations. When the engine falls back
// to the popularity ranking the response is tagged accordingly.
func (h *RecommendationHandler) User(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userId"))
	if userID == "" {
		respondError(c, http.StatusBadRequest, "Invalid user_id")
		return
	}

	limit := parseLimit(c)

	recommendations, strategy, err := h.engine.ForUser(userID, limit)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("User recommendation error")
		respondError(c, http.StatusInternalServerError, "Failed to generate recommendations")
		return
	}

	c.JSON(http.StatusOK, models.UserRecommendationResponse{
		Success:         true,
		UserID:          userID,
		Recommendations: recommendations,
		Type:            strategy,
		Count:           len(recommendations),
	})
}
