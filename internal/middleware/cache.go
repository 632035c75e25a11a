package middleware

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/velosport/recsvc/internal/config"
)

// cachedResponse is the stored form of a cacheable response.
type cachedResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// cacheWriter wraps gin.ResponseWriter to capture the response body.
type cacheWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *cacheWriter) Write(data []byte) (int, error) {
	w.body = append(w.body, data...)
	return w.ResponseWriter.Write(data)
}

// ResponseCache caches successful GET responses in redis under a short
// TTL. Recommendation reads are pure functions of engine state, so a
// short-lived cache only delays how quickly new interactions show up
// in results. With no redis client configured it is a pass-through.
func ResponseCache(rdb *redis.Client, cfg *config.CacheConfig, logger *logrus.Logger) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c, cfg.KeyPrefix)

		if cached := rdb.Get(c.Request.Context(), key).Val(); cached != "" {
			var response cachedResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(response.StatusCode, response.ContentType, response.Body)
				c.Abort()
				return
			}
		}

		writer := &cacheWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 || len(writer.body) == 0 {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			StatusCode:  status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        writer.body,
		})
		if err != nil {
			return
		}
		if err := rdb.Set(c.Request.Context(), key, payload, cfg.TTL).Err(); err != nil {
			logger.WithError(err).Warn("Failed to cache response")
		}
	}
}

func cacheKey(c *gin.Context, prefix string) string {
	sum := md5.Sum([]byte(c.Request.URL.Path + "?" + c.Request.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}
