package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskboard/internal/logger"
	"taskboard/internal/middleware"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/boards/:boardId/lists", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": middleware.RequestID(c.Request.Context())})
	})
	r.GET("/broken", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
	})
	return r
}

func TestRequestLogger_GeneratesAndEchoesID(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	router := setupRouter(middleware.RequestLogger(logger.New(&buf, log.InfoLevel)))

	// Act
	req, _ := http.NewRequest(http.MethodGet, "/boards/abc/lists", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	rid := resp.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, rid)
	assert.Contains(t, resp.Body.String(), rid)
	assert.Contains(t, buf.String(), "route=/boards/:boardId/lists")
	assert.Contains(t, buf.String(), "status=200")
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	router := setupRouter(middleware.RequestLogger(logger.Discard()))

	req, _ := http.NewRequest(http.MethodGet, "/boards/abc/lists", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, "req-42", resp.Header().Get(middleware.RequestIDHeader))
}

func TestRequestLogger_ClientErrorsLogAtWarn(t *testing.T) {
	var buf bytes.Buffer
	router := setupRouter(middleware.RequestLogger(logger.New(&buf, log.WarnLevel)))

	req, _ := http.NewRequest(http.MethodGet, "/broken", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "status=400")
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	// Arrange
	reg := prometheus.NewRegistry()
	router := setupRouter(middleware.NewMetrics(reg).Middleware())

	// Act
	for _, path := range []string{"/boards/a/lists", "/boards/b/lists", "/broken", "/missing"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	// Assert
	expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/boards/:boardId/lists",status="200"} 2
http_requests_total{method="GET",path="/broken",status="400"} 1
http_requests_total{method="GET",path="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
