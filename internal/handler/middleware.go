package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const claimsKey = "claims"

// Authenticate проверяет access-токен из заголовка Authorization: Bearer <token>.
// Флаг администратора из токена сверяется с учетной записью.
func (h *Handler) Authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		h.fail(c, apperr.Unauthorized("Authorization token is required."))
		return
	}
	claims, err := h.AuthService.ParseAccess(strings.TrimSpace(token))
	if err != nil {
		h.fail(c, err)
		return
	}
	if claims.IsAdmin {
		admin, err := h.AuthService.IsAdmin(c.Request.Context(), claims.UserID)
		if err != nil {
			h.fail(c, err)
			return
		}
		claims.IsAdmin = admin
	}
	c.Set(claimsKey, claims)
	c.Next()
}

// RequireAdmin пропускает только администраторов. Ставится после Authenticate.
func (h *Handler) RequireAdmin(c *gin.Context) {
	claims, err := claimsFrom(c)
	if err != nil || !claims.IsAdmin {
		h.fail(c, apperr.Forbidden("Admin access required."))
		return
	}
	c.Next()
}

func claimsFrom(c *gin.Context) (*service.Claims, error) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, errNoClaims
	}
	claims, ok := v.(*service.Claims)
	if !ok {
		return nil, errNoClaims
	}
	return claims, nil
}

// ownerOrAdmin проверяет, что запрос выполняет владелец записи или администратор.
func ownerOrAdmin(c *gin.Context, ownerID int64) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return apperr.Unauthorized("Authorization token is required.")
	}
	if claims.UserID != ownerID && !claims.IsAdmin {
		return apperr.Forbidden("You do not have access to this resource.")
	}
	return nil
}

// RateLimiter ограничивает число запросов с одного IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter разрешает perMinute запросов в минуту с IP (и столько же подряд).
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    perMinute,
		ttl:      10 * time.Minute,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Cleanup удаляет IP, с которых давно не было запросов.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.ttl)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// Limit - gin-middleware ограничения частоты.
func (rl *RateLimiter) Limit(c *gin.Context) {
	if !rl.getLimiter(c.ClientIP()).AllowN(rl.now(), 1) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "Too many requests. Please try again later."})
		return
	}
	c.Next()
}

// RequestLogger пишет в slog одну строку на запрос.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		log.Log(c.Request.Context(), level, "http запрос",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}
