package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/engine"
	"github.com/velosport/recsvc/pkg/models"
)

type InteractionHandler struct {
	logger   *logrus.Logger
	engine   *engine.Engine
	validate *validator.Validate
}

func NewInteractionHandler(logger *logrus.Logger, eng *engine.Engine, validate *validator.Validate) *InteractionHandler {
	return &InteractionHandler{logger: logger, engine: eng, validate: validate}
}

// Train records a user interaction. Ids are trimmed and required;
// unknown interaction types normalize to view rather than rejecting.
// Validation failures reject the request before any state changes.
func (h *InteractionHandler) Train(c *gin.Context) {
	var req models.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Request body is required")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.ProductID = strings.TrimSpace(req.ProductID)

	if err := h.validate.Struct(&req); err != nil {
		respondError(c, http.StatusBadRequest, trainValidationMessage(err))
		return
	}

	rec := h.engine.RecordInteraction(req.UserID, req.ProductID, req.Type)

	c.JSON(http.StatusOK, models.TrainResponse{
		Success:   true,
		Message:   "Interaction recorded",
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Type:      rec.Kind,
	})
}

func trainValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "UserID":
			return "Invalid or missing userId"
		case "ProductID":
			return "Invalid or missing productId"
		}
	}
	return "Invalid request"
}
