package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/engine"
	"github.com/velosport/recsvc/pkg/models"
)

type StatsHandler struct {
	logger *logrus.Logger
	engine *engine.Engine
}

func NewStatsHandler(logger *logrus.Logger, eng *engine.Engine) *StatsHandler {
	return &StatsHandler{logger: logger, engine: eng}
}

func (h *StatsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatsResponse{
		Success: true,
		Stats:   h.engine.Stats(),
	})
}
