package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/cuentadante-api/internal/application/dto"
)

// LoginLimiter limita los intentos de login por IP con un token bucket por cliente.
type LoginLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter permite perMinute intentos por minuto con ráfagas de burst.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}
	return &LoginLimiter{
		clients: map[string]*client{},
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		idle:    10 * time.Minute,
	}
}

// Allow consume un token del cliente key.
func (l *LoginLimiter) Allow(key string) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok {
		l.prune(now)
		cl = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// prune descarta clientes inactivos; se invoca con l.mu tomado.
func (l *LoginLimiter) prune(now time.Time) {
	for k, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.idle {
			delete(l.clients, k)
		}
	}
}

// Middleware responde 429 cuando la IP excede su cuota.
func (l *LoginLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "TOO_MANY_REQUESTS",
				Message: "Demasiados intentos de inicio de sesión, intente más tarde",
			})
		}
		return c.Next()
	}
}
