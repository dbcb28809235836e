// Package server holds middleware shared by HTTP surfaces.
package server

import (
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"github.com/FocuswithJustin/Scriptura/internal/logging"
)

// AbsPath resolves path for logging, falling back to the input on error.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// CORSConfig lists the origins the API answers for.
type CORSConfig struct {
	AllowedOrigins []string // List of allowed origins, empty = allow all (*)
}

// resolveOrigin decides the Access-Control-Allow-Origin value for a request
// origin. ok is false when a restricted configuration rejects the origin.
func (cfg CORSConfig) resolveOrigin(origin string) (string, bool) {
	if len(cfg.AllowedOrigins) == 0 {
		return "*", true
	}
	if origin != "" && slices.Contains(cfg.AllowedOrigins, origin) {
		return origin, true
	}
	return "", false
}

// CORSMiddlewareWithConfig adds CORS headers to responses. With no
// configured origins every origin is allowed via "*"; with a restricted
// list, requests from other origins get no CORS headers (the browser
// blocks the cross-origin read) and their preflights are refused.
func CORSMiddlewareWithConfig(cfg CORSConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowOrigin, ok := cfg.resolveOrigin(r.Header.Get("Origin"))
		if !ok {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		// Credentialed CORS is invalid with a wildcard origin.
		if allowOrigin != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TimingMiddleware warns about slow requests. The access log covers normal
// requests, so only outliers get a line here.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		if duration > 100*time.Millisecond {
			logging.Warn("slow request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", duration.Milliseconds())
		}
	})
}
