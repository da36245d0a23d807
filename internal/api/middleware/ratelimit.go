package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"skillviz-utils/internal/config"
	"skillviz-utils/internal/logging"
	"skillviz-utils/pkg/models"
)

// clientLimiter tracks the token bucket for one client address
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	requests int64
	mu       sync.RWMutex
}

// IngestLimiter rate-limits ingestion calls per client IP so one upstream
// cannot starve the others
type IngestLimiter struct {
	config        *config.Config
	clients       map[string]*clientLimiter
	mu            sync.Mutex
	logger        logging.Logger
	cleanupTicker *time.Ticker
	stopCleanup   chan bool
}

// NewIngestLimiter creates a rate limiter for ingestion endpoints
func NewIngestLimiter(cfg *config.Config) *IngestLimiter {
	rl := &IngestLimiter{
		config:        cfg,
		clients:       make(map[string]*clientLimiter),
		logger:        logging.GetGlobalLogger().WithField("component", "ingest_limiter"),
		cleanupTicker: time.NewTicker(5 * time.Minute),
		stopCleanup:   make(chan bool),
	}

	go rl.cleanupRoutine()

	return rl
}

// Middleware rejects requests exceeding the per-client rate with 429
func (rl *IngestLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limited",
					Message:   "Too many ingestion requests, slow down",
					RequestID: RequestID(c),
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}

// allow checks whether a request from the client is within the rate limit
func (rl *IngestLimiter) allow(client string) bool {
	rl.mu.Lock()
	limiter := rl.getClientLimiter(client)
	rl.mu.Unlock()

	allowed := limiter.limiter.Allow()

	limiter.mu.Lock()
	limiter.lastSeen = time.Now()
	if allowed {
		limiter.requests++
	}
	limiter.mu.Unlock()

	if !allowed {
		rl.logger.Debug("Request rejected by rate limiter", map[string]interface{}{"client": client})
	}

	return allowed
}

// getClientLimiter gets or creates the limiter for a client, caller holds rl.mu
func (rl *IngestLimiter) getClientLimiter(client string) *clientLimiter {
	if limiter, exists := rl.clients[client]; exists {
		return limiter
	}

	// Rate limit: requests per minute converted to requests per second
	rps := rate.Limit(float64(rl.config.Server.RateLimit) / 60.0)

	limiter := &clientLimiter{
		limiter:  rate.NewLimiter(rps, rl.config.Server.RateBurst),
		lastSeen: time.Now(),
	}
	rl.clients[client] = limiter

	rl.logger.Debug("Created new client rate limiter", map[string]interface{}{
		"client": client,
		"rate":   float64(rps),
		"burst":  rl.config.Server.RateBurst,
	})

	return limiter
}

// cleanupRoutine periodically drops limiters for clients gone quiet
func (rl *IngestLimiter) cleanupRoutine() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			rl.cleanupTicker.Stop()
			return
		}
	}
}

// cleanup removes limiters not used within the last 10 minutes
func (rl *IngestLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	removed := 0

	for client, limiter := range rl.clients {
		limiter.mu.RLock()
		lastSeen := limiter.lastSeen
		limiter.mu.RUnlock()

		if lastSeen.Before(cutoff) {
			delete(rl.clients, client)
			removed++
		}
	}

	if removed > 0 {
		rl.logger.Info("Cleaned up idle client rate limiters", map[string]interface{}{"removed_count": removed})
	}
}

// Stop stops the cleanup routine
func (rl *IngestLimiter) Stop() {
	rl.stopCleanup <- true
}
