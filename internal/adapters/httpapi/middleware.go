package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// recoverer converts a handler panic into the generic 500 envelope. The
// panic value stays in the server logs only.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("Handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(apiResponse{
					Success: false,
					Message: msgUnexpectedError,
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeaders sets the OWASP response headers on every reply.
func securityHeaders(next http.Handler) http.Handler {
	permissions := strings.Join([]string{
		"geolocation=(self)",
		"microphone=()",
		"camera=()",
		"payment=()",
		"usb=()",
	}, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", permissions)
		next.ServeHTTP(w, r)
	})
}
