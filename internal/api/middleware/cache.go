package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)

	return w.ResponseWriter.Write(b)
}

// CatalogCache caches successful GET responses in Redis under a stable
// per-route key. A nil client disables caching entirely. Only used for the
// public space catalog; the reservation paths always hit the database.
func CatalogCache(rdb *redis.Client, prefix string, ttl time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()

			return
		}

		key := cacheKey(prefix, ctx)

		if raw, err := rdb.Get(ctx.Request.Context(), key).Bytes(); err == nil {
			var cached cachedResponse
			if err = json.Unmarshal(raw, &cached); err == nil {
				ctx.Header("X-Cache", "HIT")
				ctx.Data(cached.Status, cached.ContentType, cached.Body)
				ctx.Abort()

				return
			}
		}

		capture := &bodyCapture{ResponseWriter: ctx.Writer}
		ctx.Writer = capture
		ctx.Header("X-Cache", "MISS")

		ctx.Next()

		if capture.Status() != http.StatusOK {
			return
		}

		raw, err := json.Marshal(cachedResponse{
			Status:      capture.Status(),
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.buf.Bytes(),
		})
		if err != nil {
			return
		}

		if err = rdb.Set(ctx.Request.Context(), key, raw, ttl).Err(); err != nil {
			zap.L().Warn("failed to store cached response", zap.String("key", key), zap.Error(err))
		}
	}
}

// NewCacheInvalidator returns a function that drops every key under the
// prefix. Admin catalog writes call it so readers never see stale listings.
// With a nil client it is a no-op.
func NewCacheInvalidator(rdb *redis.Client, prefix string) func(ctx context.Context) {
	if rdb == nil {
		return func(context.Context) {}
	}

	return func(ctx context.Context) {
		iter := rdb.Scan(ctx, 0, prefix+":*", 0).Iterator()
		for iter.Next(ctx) {
			if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
				zap.L().Warn("failed to invalidate cache key", zap.String("key", iter.Val()), zap.Error(err))
			}
		}
		if err := iter.Err(); err != nil {
			zap.L().Warn("cache invalidation scan failed", zap.Error(err))
		}
	}
}

func cacheKey(prefix string, ctx *gin.Context) string {
	sum := sha1.Sum([]byte(ctx.Request.Method + ":" + ctx.FullPath() + "?" + ctx.Request.URL.RawQuery))

	return fmt.Sprintf("%s:%x", prefix, sum)
}
