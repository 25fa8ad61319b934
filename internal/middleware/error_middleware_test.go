package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	wedbricks_errors "wedbricks/pkg/errors"
	"wedbricks/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(logger.New(logger.DevelopmentMode)))
	return r
}

func TestErrorHandler_MapsSentinelsToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid input", wedbricks_errors.ErrInvalidInput, http.StatusBadRequest, "INVALID_REQUEST"},
		{"not found", wedbricks_errors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", wedbricks_errors.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"rate limited", wedbricks_errors.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newErrorRouter()
			r.GET("/boom", func(c *gin.Context) {
				c.Error(tc.err)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
		})
	}
}

func TestErrorHandler_LeavesWrittenResponsesAlone(t *testing.T) {
	r := newErrorRouter()
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"done": true})
		c.Error(assert.AnError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestRequestIDMiddleware_EchoesOrAssignsID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "rid-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-123", w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
