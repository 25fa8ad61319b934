package middleware

import (
	"errors"
	"net/http"

	"wedbricks/internal/transport/httpdto"
	wedbricks_errors "wedbricks/pkg/errors"
	"wedbricks/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the
// standard response envelope, mapping the sentinel taxonomy to HTTP
// status codes. Handlers that already wrote a response are left alone.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Errorf("request failed: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}

		status, code := statusForError(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
	}
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, wedbricks_errors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, wedbricks_errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, wedbricks_errors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, wedbricks_errors.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
