package middleware

import (
	"time"

	"wedbricks/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware writes one access-log line per completed request,
// tagged with the request id so REST calls and socket upgrades
// correlate in the same stream.
func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		log := l
		if log == nil {
			log = logger.GetGlobalLogger()
		}
		if log == nil {
			return
		}

		requestID, _ := c.Request.Context().Value(logger.RequestIdKey).(string)
		log.Infof("%s %s %d %s rid=%s",
			c.Request.Method, path, c.Writer.Status(), time.Since(start), requestID)
	}
}
