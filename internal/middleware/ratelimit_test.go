package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/fleetpulse/fleet_expense_app/internal/middleware"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rate := limiter.Rate{Period: time.Minute, Limit: 2}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	router := gin.New()
	router.GET("/limited", middleware.RateLimit(ipLimiter), func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	doGet := func() *httptest.ResponseRecorder {
		req, err := http.NewRequest(http.MethodGet, "/limited", nil)
		require.NoError(t, err)
		req.RemoteAddr = "10.0.0.1:12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, doGet().Code)
	assert.Equal(t, http.StatusOK, doGet().Code)

	w := doGet()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
}

func TestRateLimitTracksClientsSeparately(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rate := limiter.Rate{Period: time.Minute, Limit: 1}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	router := gin.New()
	router.GET("/limited", middleware.RateLimit(ipLimiter), func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	doGet := func(addr string) *httptest.ResponseRecorder {
		req, err := http.NewRequest(http.MethodGet, "/limited", nil)
		require.NoError(t, err)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, doGet("10.0.0.1:12345").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet("10.0.0.1:12345").Code)

	// A different client still has budget.
	assert.Equal(t, http.StatusOK, doGet("10.0.0.2:12345").Code)
}
