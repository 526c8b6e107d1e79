package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Vizlook/youtube-search/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// requestID honours an incoming X-Request-ID or assigns a new one, and echoes it back.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// accessLog stores a request-scoped entry in the request context and logs one line per request.
func accessLog(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := log.WithField("request_id", c.GetString("request_id"))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), entry))

		start := time.Now()
		c.Next()

		entry.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Info("request handled")
	}
}

func rateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.String(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			c.Abort()
			return
		}
		c.Next()
	}
}
