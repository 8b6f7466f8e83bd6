package security

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/hiperfaturometro/hiperfaturometro/internal/errors"
)

// Config holds security configuration for the read API.
type Config struct {
	MaxRequestsPerMin int           `json:"max_requests_per_min"`
	RequestTimeout    time.Duration `json:"request_timeout"`
}

// DefaultConfig returns secure defaults.
func DefaultConfig() Config {
	return Config{
		MaxRequestsPerMin: 60,
		RequestTimeout:    30 * time.Second,
	}
}

// Middleware provides the security middleware set for the API.
type Middleware struct {
	config Config

	mu         sync.Mutex
	ipLimiters map[string]*rate.Limiter
}

// NewMiddleware creates a middleware instance.
func NewMiddleware(config Config) *Middleware {
	return &Middleware{
		config:     config,
		ipLimiters: make(map[string]*rate.Limiter),
	}
}

// Headers adds standard security headers to every response.
func (m *Middleware) Headers(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

	if c.Request.TLS != nil {
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	}

	c.Next()
}

// RateLimitByIP implements per-IP rate limiting.
func (m *Middleware) RateLimitByIP(c *gin.Context) {
	if !m.limiterFor(c.ClientIP()).Allow() {
		appErr := errors.NewRateLimitError("Limite de requisições excedido")
		errors.LogError(c, appErr)
		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(appErr.HTTPStatus, gin.H{
			"success":   false,
			"message":   appErr.ErrBuilder.Msg,
			"data":      nil,
			"timestamp": time.Now(),
		})
		return
	}

	c.Next()
}

func (m *Middleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.ipLimiters[ip]
	if !ok {
		rps := rate.Limit(float64(m.config.MaxRequestsPerMin) / 60.0)
		burst := m.config.MaxRequestsPerMin / 2
		if burst < 5 {
			burst = 5
		}
		limiter = rate.NewLimiter(rps, burst)
		m.ipLimiters[ip] = limiter
	}
	return limiter
}

// RequestTimeout enforces a deadline on every request context.
func (m *Middleware) RequestTimeout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), m.config.RequestTimeout)
	defer cancel()

	c.Request = c.Request.WithContext(ctx)
	c.Header("X-Timeout", strconv.Itoa(int(m.config.RequestTimeout.Seconds())))

	c.Next()
}
