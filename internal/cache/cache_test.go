package cache

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	_, found := c.Get("missing")
	assert.False(t, found)

	c.Set("key", []byte(`{"ok":true}`))
	data, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, []byte(`{"ok":true}`), data)
	assert.Equal(t, 1, c.Size())
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("key", []byte("value"))
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCacheClear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	c.Clear()
	assert.Zero(t, c.Size())
}

func TestMiddlewareServesSecondRequestFromCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits atomic.Int32
	r := gin.New()
	r.Use(NewCache(time.Minute).Middleware())
	r.GET("/data", func(c *gin.Context) {
		hits.Add(1)
		c.JSON(http.StatusOK, gin.H{"value": 42})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"value":42}`, w.Body.String())
	}

	assert.Equal(t, int32(1), hits.Load())
}

func TestMiddlewareKeysOnQueryString(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits atomic.Int32
	r := gin.New()
	r.Use(NewCache(time.Minute).Middleware())
	r.GET("/data", func(c *gin.Context) {
		hits.Add(1)
		c.JSON(http.StatusOK, gin.H{"limit": c.Query("limit")})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data?limit=5", nil))
	assert.JSONEq(t, `{"limit":"5"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data?limit=10", nil))
	assert.JSONEq(t, `{"limit":"10"}`, w.Body.String())

	assert.Equal(t, int32(2), hits.Load())
}

func TestMiddlewareSkipsErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var hits atomic.Int32
	r := gin.New()
	r.Use(NewCache(time.Minute).Middleware())
	r.GET("/data", func(c *gin.Context) {
		hits.Add(1)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
	}

	assert.Equal(t, int32(2), hits.Load())
}
