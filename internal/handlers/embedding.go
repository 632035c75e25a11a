package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/engine"
	"github.com/velosport/recsvc/pkg/models"
)

type EmbeddingHandler struct {
	logger *logrus.Logger
	engine *engine.Engine
}

func NewEmbeddingHandler(logger *logrus.Logger, eng *engine.Engine) *EmbeddingHandler {
	return &EmbeddingHandler{logger: logger, engine: eng}
}

// Update ingests a batch of product records. Records that cannot be
// processed are skipped individually; the batch itself never aborts.
func (h *EmbeddingHandler) Update(c *gin.Context) {
	var req models.EmbeddingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(c, http.StatusBadRequest, "Request body is required")
			return
		}
		respondError(c, http.StatusBadRequest, "products must be a list")
		return
	}

	if len(req.Products) == 0 {
		c.JSON(http.StatusOK, models.EmbeddingUpdateResponse{
			Success:         true,
			Message:         "No products to update",
			TotalEmbeddings: h.engine.Stats().TotalProducts,
		})
		return
	}

	updated := h.engine.UpdateEmbeddings(req.Products)

	c.JSON(http.StatusOK, models.EmbeddingUpdateResponse{
		Success:         true,
		Message:         fmt.Sprintf("Updated %d product embeddings", updated),
		TotalEmbeddings: h.engine.Stats().TotalProducts,
		ProcessedCount:  updated,
	})
}
