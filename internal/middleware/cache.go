package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-planner/internal/config"
)

// captureWriter captures the response body and status while forwarding
// everything to the client, so a successful response can be stored after
// the handler ran.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
		cw.buf.Write(b)
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// cachedResponse is the envelope stored in Redis.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// cacheKey hashes the concrete request path, not the echo route pattern:
// hashing the pattern would collapse every /events/public/:id onto one
// entry and serve one event's page for another.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Request().URL.Path))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// Cache returns a read-through response cache for GET endpoints. Only
// 200 responses within the size cap are stored; everything else passes
// through untouched. A nil Redis client disables the middleware.
func Cache(rdb *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cacheKey(cfg.Prefix, c)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
			defer cancel()
			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var hit cachedResponse
				if json.Unmarshal(raw, &hit) == nil {
					c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
					return c.Blob(hit.Status, echo.MIMEApplicationJSON, hit.Body)
				}
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && (cw.limit <= 0 || cw.size <= cw.limit) {
				entry, err := json.Marshal(cachedResponse{Status: cw.status, Body: cw.buf.Bytes()})
				if err == nil {
					// Best effort: a failed SET only means the next request
					// hits the database again.
					sctx, scancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
					defer scancel()
					_ = rdb.Set(sctx, key, entry, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}
