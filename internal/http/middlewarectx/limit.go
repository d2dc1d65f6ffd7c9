package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/aerosync-io/aerosync/internal/http/response"
)

// clientLimiters выдаёт каждому клиенту собственный лимитер.
// Ключ — email из контекста запроса, выставленный JWTMiddleware.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	limiter, ok := c.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(50, 100)
		c.limiters[key] = limiter
	}
	return limiter
}

var limiters = &clientLimiters{limiters: make(map[string]*rate.Limiter)}

// RateLimitMiddleware ограничивает частоту запросов к защищённой группе
// отдельно для каждого пользователя. Запросы без личности в контексте
// ограничиваются по адресу клиента.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := r.Context().Value(User).(string)
			if !ok || key == "" {
				key = r.RemoteAddr
			}
			if !limiters.get(key).Allow() {
				log.Error("too many requests", slog.String("client", key))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error(response.CodeInvalidRequest, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
