package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"slices"

	"github.com/FocuswithJustin/Scriptura/internal/apikey"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
)

// keyStore backs dynamic key validation when Config.Auth.KeysDB is set.
var keyStore *apikey.Store

// AuthConfig holds authentication configuration. Keys may be listed
// statically, kept in a SQLite key store, or both; a request passes when
// any source accepts its key.
type AuthConfig struct {
	Enabled bool
	APIKeys []string // Static keys accepted via X-API-Key
	KeysDB  string   // Path to the SQLite key store (optional)
}

// AuthMiddleware enforces X-API-Key authentication on everything but the
// public endpoints. With auth disabled it only forwards.
func AuthMiddleware(authCfg AuthConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicEndpoint(r.URL.Path) || !authCfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			logging.SecurityEvent("unauthorized_request", "auth",
				"path", r.URL.Path,
				"reason", "missing API key")
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing X-API-Key header")
			return
		}

		if !authorizeKey(r, authCfg, apiKey) {
			logging.SecurityEvent("unauthorized_request", "auth",
				"path", r.URL.Path,
				"reason", "invalid API key")
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authorizeKey checks a key against the static list and the key store.
func authorizeKey(r *http.Request, authCfg AuthConfig, apiKey string) bool {
	if matchesStaticKey(apiKey, authCfg.APIKeys) {
		return true
	}
	if keyStore != nil {
		ok, err := keyStore.Validate(r.Context(), apiKey)
		if err != nil {
			logging.Error("api key lookup failed", "error", err)
			return false
		}
		return ok
	}
	return false
}

// matchesStaticKey compares against every static key without early exit so
// the match position is not observable through timing.
func matchesStaticKey(apiKey string, keys []string) bool {
	matched := false
	for _, k := range keys {
		if constantTimeCompare(apiKey, k) {
			matched = true
		}
	}
	return matched
}

// publicPaths are reachable without a key: health checks and root info.
var publicPaths = []string{"/", "/api/health", "/api/status"}

func isPublicEndpoint(path string) bool {
	return slices.Contains(publicPaths, path)
}

// ValidateAuthConfig rejects configurations that enable auth without a
// usable key source, and static keys too short to resist guessing.
func ValidateAuthConfig(cfg AuthConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if len(cfg.APIKeys) == 0 && cfg.KeysDB == "" {
		return fmt.Errorf("an API key or key database is required when authentication is enabled")
	}
	for _, k := range cfg.APIKeys {
		if len(k) < 16 {
			return fmt.Errorf("API keys must be at least 16 characters (got %d)", len(k))
		}
	}
	return nil
}

// GenerateAPIKeyExample shows operators how to mint a key.
func GenerateAPIKeyExample() string {
	return "Example: export SCRIPTURA_API_KEY=$(openssl rand -base64 32)"
}

func constantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
