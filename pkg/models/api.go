package models

import "time"

// Strategy tags reported alongside recommendation results.
const (
	StrategyContentBased  = "content-based"
	StrategyCollaborative = "collaborative-filtering"
	StrategyPopularity    = "popularity"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

type TrainRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Type      string `json:"type"`
}

type TrainResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Type      string `json:"type"`
}

type ContentRecommendationResponse struct {
	Success         bool     `json:"success"`
	ProductID       string   `json:"productId"`
	Recommendations []string `json:"recommendations"`
	Type            string   `json:"type"`
	Count           int      `json:"count"`
	Message         string   `json:"message,omitempty"`
}

type UserRecommendationResponse struct {
	Success         bool     `json:"success"`
	UserID          string   `json:"userId"`
	Recommendations []string `json:"recommendations"`
	Type            string   `json:"type"`
	Count           int      `json:"count"`
}

type EmbeddingUpdateRequest struct {
	Products []Product `json:"products"`
}

type EmbeddingUpdateResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	TotalEmbeddings int    `json:"totalEmbeddings"`
	ProcessedCount  int    `json:"processedCount"`
}

type Stats struct {
	TotalProducts     int `json:"totalProducts"`
	TotalUsers        int `json:"totalUsers"`
	TotalInteractions int `json:"totalInteractions"`
}

type StatsResponse struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
