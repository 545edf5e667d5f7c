package middleware

import (
	"net/http"
	"strings"

	"car-rental/pkg/utils"

	"github.com/google/uuid"
)

// RequestContext assigns a correlation id to every request and captures the
// caller IP and user agent so downstream audit writes can reference them.
func RequestContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
			if ip == "" {
				ip = r.RemoteAddr
			}

			meta := utils.RequestMeta{
				RequestID: uuid.New().String(),
				ClientIP:  ip,
				UserAgent: r.UserAgent(),
			}

			ctx := utils.SetRequestMeta(r.Context(), meta)
			w.Header().Set("X-Request-Id", meta.RequestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
