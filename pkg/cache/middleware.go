package cache

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"skybook/pkg/logger"

	"github.com/gin-gonic/gin"
)

// cachedResponse is the serialized form of a cached GET response. The
// full header map is stored so a hit is indistinguishable from the
// handler's own response.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// bodyCaptureWriter tees the response body so a successful response can
// be stored after the handler has written it.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ReadCache decorates idempotent GET handlers with cache-aside reads.
//
// Key = prefix + ":" + request path (+ "?" + query when present).
// A hit replays the stored body without invoking the handler. A miss
// invokes the handler and, if it responded 200, stores the body with the
// given TTL in a detached goroutine. The cache backend being down or
// erroring is always treated as a miss: a cache outage must never turn
// into a request failure.
func ReadCache(svc Service, prefix string, ttl time.Duration) gin.HandlerFunc {
	appLogger := logger.GetDefault()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || svc == nil || !svc.Available() {
			c.Next()
			return
		}

		key := prefix + ":" + c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			key += "?" + q
		}

		var cached cachedResponse
		err := svc.Get(c.Request.Context(), key, &cached)
		if err == nil {
			for name, values := range cached.Header {
				c.Writer.Header()[name] = values
			}
			c.Writer.WriteHeader(cached.Status)
			_, _ = c.Writer.Write(cached.Body)
			c.Abort()
			return
		}
		if !errors.Is(err, ErrCacheMiss) {
			// Backend error: fail open and serve from origin.
			appLogger.LogCacheBypass(c.Request.Context(), key, err)
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}

		entry := cachedResponse{
			Status: writer.Status(),
			Header: writer.Header().Clone(),
			Body:   writer.body.Bytes(),
		}

		// Fire and forget: the response is already sent, a failed write
		// must not affect it.
		go func() {
			if setErr := svc.Set(context.Background(), key, entry, ttl); setErr != nil {
				appLogger.LogCacheWriteFailure(key, setErr)
			}
		}()
	}
}
