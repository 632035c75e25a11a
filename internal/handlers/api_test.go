package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velosport/recsvc/internal/config"
	"github.com/velosport/recsvc/internal/engine"
	"github.com/velosport/recsvc/internal/middleware"
	"github.com/velosport/recsvc/pkg/models"
)

func setupTestRouter() (*gin.Engine, *engine.Engine) {
	gin.SetMode(gin.TestMode)

	cfg := &config.EngineConfig{
		Categories:        []string{"Running", "Football", "Basketball", "Tennis", "Gym", "Cycling"},
		Brands:            []string{"Nike", "Adidas", "Puma", "Under Armour", "Reebok", "New Balance"},
		PriceScale:        1000,
		NeighborThreshold: 0.3,
		DefaultLimit:      5,
		MaxLimit:          50,
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	eng := engine.New(
		engine.NewFeatureExtractor(cfg),
		engine.NewProductStore(),
		engine.NewProfileStore(),
		engine.NewInteractionLog(),
		cfg, logger, nil,
	)

	h := New(logger, eng)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/health", h.Health.Check)
	api := router.Group("/api/v1/ai")
	api.GET("/recommendations/content/:productId", h.Recommendation.Content)
	api.GET("/recommendations/user/:userId", h.Recommendation.User)
	api.POST("/train", h.Interaction.Train)
	api.POST("/embeddings", h.Embedding.Update)
	api.GET("/stats", h.Stats.Get)

	return router, eng
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedCatalog(t *testing.T, router *gin.Engine) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/ai/embeddings", gin.H{
		"products": []gin.H{
			{"id": "p1", "category": "Running", "price": 100, "brand": "Nike"},
			{"id": "p2", "category": "Running", "price": 110, "brand": "Nike"},
			{"id": "p3", "category": "Gym", "price": 500, "brand": "Reebok"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "AI Recommendation Service", resp.Service)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestContentRecommendations(t *testing.T) {
	t.Run("unknown product degrades to an empty success", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := doJSON(t, router, http.MethodGet, "/api/v1/ai/recommendations/content/ghost", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.ContentRecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Recommendations)
		assert.Equal(t, 0, resp.Count)
		assert.Equal(t, "Product not yet in system", resp.Message)
	})

	t.Run("returns the most similar products", func(t *testing.T) {
		router, _ := setupTestRouter()
		seedCatalog(t, router)

		w := doJSON(t, router, http.MethodGet, "/api/v1/ai/recommendations/content/p1?limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.ContentRecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"p2"}, resp.Recommendations)
		assert.Equal(t, models.StrategyContentBased, resp.Type)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("malformed limit falls back to the default", func(t *testing.T) {
		router, _ := setupTestRouter()
		seedCatalog(t, router)

		w := doJSON(t, router, http.MethodGet, "/api/v1/ai/recommendations/content/p1?limit=banana", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.ContentRecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Len(t, resp.Recommendations, 2)
	})
}

func TestUserRecommendations(t *testing.T) {
	t.Run("collaborative path tags the response", func(t *testing.T) {
		router, _ := setupTestRouter()
		seedCatalog(t, router)

		// u2 shares p1 with u1 and additionally bought p2.
		for _, body := range []gin.H{
			{"userId": "u1", "productId": "p1"},
			{"userId": "u2", "productId": "p1"},
			{"userId": "u2", "productId": "p2", "type": "purchase"},
		} {
			w := doJSON(t, router, http.MethodPost, "/api/v1/ai/train", body)
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := doJSON(t, router, http.MethodGet, "/api/v1/ai/recommendations/user/u1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.UserRecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, models.StrategyCollaborative, resp.Type)
		assert.Equal(t, []string{"p2"}, resp.Recommendations)
	})

	t.Run("popularity fallback tags the response", func(t *testing.T) {
		router, _ := setupTestRouter()
		seedCatalog(t, router)

		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/train", gin.H{"userId": "u1", "productId": "p1"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/ai/recommendations/user/ghost", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.UserRecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, models.StrategyPopularity, resp.Type)
		assert.Equal(t, []string{"p1"}, resp.Recommendations)
	})
}

func TestTrainEndpoint(t *testing.T) {
	t.Run("rejects missing ids before any state change", func(t *testing.T) {
		router, eng := setupTestRouter()

		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/train", gin.H{"productId": "p1"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid or missing userId", resp.Error)
		assert.Zero(t, eng.Stats().TotalInteractions)

		w = doJSON(t, router, http.MethodPost, "/api/v1/ai/train", gin.H{"userId": "u1", "productId": "   "})
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid or missing productId", resp.Error)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		router, _ := setupTestRouter()
		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/train", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("normalizes unknown interaction types to view", func(t *testing.T) {
		router, eng := setupTestRouter()

		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/train",
			gin.H{"userId": "u1", "productId": "p1", "type": "teleport"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.TrainResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Interaction recorded", resp.Message)
		assert.Equal(t, models.KindView, resp.Type)
		assert.Equal(t, 1, eng.Stats().TotalInteractions)
	})
}

func TestEmbeddingsEndpoint(t *testing.T) {
	t.Run("partial batch failures do not abort the batch", func(t *testing.T) {
		router, eng := setupTestRouter()

		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/embeddings", gin.H{
			"products": []gin.H{
				{"id": "p1", "category": "Running", "price": 100, "brand": "Nike"},
				{"category": "Tennis", "price": 80},
				{"_id": "p2", "category": "Gym", "price": 50, "brand": "Reebok"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.EmbeddingUpdateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.ProcessedCount)
		assert.Equal(t, 2, resp.TotalEmbeddings)
		assert.Equal(t, 2, eng.Stats().TotalProducts)
	})

	t.Run("empty product list is a no-op", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/embeddings", gin.H{"products": []gin.H{}})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.EmbeddingUpdateResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "No products to update", resp.Message)
		assert.Equal(t, 0, resp.TotalEmbeddings)
	})

	t.Run("non-list products payload is rejected", func(t *testing.T) {
		router, _ := setupTestRouter()

		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/embeddings", gin.H{"products": "nope"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "products must be a list", resp.Error)
	})
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := setupTestRouter()
	seedCatalog(t, router)

	for _, body := range []gin.H{
		{"userId": "u1", "productId": "p1"},
		{"userId": "u1", "productId": "p1"},
		{"userId": "u2", "productId": "p1"},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/ai/train", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/ai/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Stats.TotalProducts)
	assert.Equal(t, 2, resp.Stats.TotalUsers)
	assert.Equal(t, 3, resp.Stats.TotalInteractions)
}
