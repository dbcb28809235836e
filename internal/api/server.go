// Package api provides the Scriptura REST API server.
package api

import (
	"fmt"
	"net/http"
	"os"

	"github.com/FocuswithJustin/Scriptura/core/cache"
	"github.com/FocuswithJustin/Scriptura/internal/apikey"
	"github.com/FocuswithJustin/Scriptura/internal/commentary"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
	"github.com/FocuswithJustin/Scriptura/internal/server"
	"github.com/FocuswithJustin/Scriptura/internal/store"
	"github.com/FocuswithJustin/Scriptura/internal/validation"
)

// Start loads the configured data directory and serves the API. It blocks
// until the listener fails.
func Start(cfg Config) error {
	ServerConfig = cfg

	if err := ValidateAuthConfig(cfg.Auth); err != nil {
		return fmt.Errorf("invalid auth config: %w", err)
	}

	for name, path := range map[string]string{
		"data directory":       cfg.DataDir,
		"commentary directory": cfg.CommentaryDir,
		"keys database":        cfg.Auth.KeysDB,
	} {
		if path == "" {
			continue
		}
		if err := validation.ValidatePath(path); err != nil {
			return fmt.Errorf("invalid %s path: %w", name, err)
		}
	}

	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert or key file not specified")
		}
		if _, err := os.Stat(cfg.TLS.CertFile); err != nil {
			return fmt.Errorf("TLS cert file not found: %w", err)
		}
		if _, err := os.Stat(cfg.TLS.KeyFile); err != nil {
			return fmt.Errorf("TLS key file not found: %w", err)
		}
	}

	st, err := store.Load(cfg.DataDir, store.Options{DefaultVersion: cfg.DefaultVersion})
	if err != nil {
		return fmt.Errorf("loading bible data: %w", err)
	}
	serverStore = st

	if cfg.CommentaryDir != "" {
		notes, err := commentary.Load(cfg.CommentaryDir)
		if err != nil {
			return fmt.Errorf("loading commentary: %w", err)
		}
		serverNotes = notes
	}

	if cfg.Auth.KeysDB != "" {
		ks, err := apikey.Open(cfg.Auth.KeysDB)
		if err != nil {
			return fmt.Errorf("opening key store: %w", err)
		}
		keyStore = ks
	}

	parseCache = cache.NewDefaultResultCache()
	searchCache = cache.NewLRUCache[string, []store.Verse](cache.Config{
		MaxSize: searchCacheSize,
		TTL:     searchCacheTTL,
	})

	GlobalHub = NewHub()
	go GlobalHub.Run()

	mux := setupRoutes()

	protocol := "http"
	wsProtocol := "ws"
	if cfg.TLS.Enabled {
		protocol = "https"
		wsProtocol = "wss"
		logging.Info("TLS enabled", "cert_file", cfg.TLS.CertFile)
	} else {
		logging.Warn("TLS disabled - using plain HTTP",
			"recommendation", "consider using TLS or reverse proxy for production")
	}
	storeStats := st.Stats()
	logging.ServerStartup("rest_api", protocol, cfg.Port,
		"websocket_protocol", wsProtocol,
		"data_dir", server.AbsPath(cfg.DataDir),
		"versions", storeStats.Versions,
		"verses", storeStats.Verses,
		"default_version", storeStats.DefaultVersion)

	// Each layer wraps the previous one, so the last applied runs first.
	cspConfig := server.APICSPConfig()
	var handler http.Handler = server.SecurityHeadersWithCSP(cspConfig, mux)

	if cfg.Auth.Enabled {
		handler = AuthMiddleware(cfg.Auth, handler)
		logging.SecurityEvent("authentication_configured", "api",
			"enabled", true,
			"static_keys", len(cfg.Auth.APIKeys),
			"key_store", cfg.Auth.KeysDB != "")
	} else {
		logging.SecurityEvent("authentication_configured", "api",
			"enabled", false,
			"note", "all requests allowed")
	}

	if cfg.RateLimitRequests > 0 {
		rateLimitConfig := RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimitRequests,
			BurstSize:         cfg.RateLimitBurst,
		}
		if rateLimitConfig.BurstSize == 0 {
			rateLimitConfig.BurstSize = 10
		}
		rateLimiter := NewRateLimiter(rateLimitConfig)
		handler = rateLimiter.Middleware(handler)
		logging.Info("rate limiting enabled",
			"requests_per_minute", rateLimitConfig.RequestsPerMinute,
			"burst_size", rateLimitConfig.BurstSize)
	}

	corsConfig := server.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}
	handler = server.CORSMiddlewareWithConfig(corsConfig, handler)
	if len(cfg.AllowedOrigins) > 0 {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "restricted",
			"allowed_origins_count", len(cfg.AllowedOrigins))
	} else {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "permissive",
			"note", "allowing all origins (*) - consider restricting for production")
	}

	// Slow-request warnings, then request ID and access logging outermost
	handler = server.TimingMiddleware(handler)
	handler = logging.CombinedMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	if cfg.TLS.Enabled {
		return http.ListenAndServeTLS(addr, cfg.TLS.CertFile, cfg.TLS.KeyFile, handler)
	}
	return http.ListenAndServe(addr, handler)
}

// setupRoutes registers every endpoint on a fresh mux.
func setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handleRoot)
	mux.HandleFunc("/api/parse/reference", handleParseReference)
	mux.HandleFunc("/api/parse/reference/", handleParseReferencePath)
	mux.HandleFunc("/api/parse/references", handleParseBatch)
	mux.HandleFunc("/api/verse", handleVerse)
	mux.HandleFunc("/api/passage", handlePassage)
	mux.HandleFunc("/api/chapter", handleChapter)
	mux.HandleFunc("/api/books", handleBooks)
	mux.HandleFunc("/api/chapters", handleChapters)
	mux.HandleFunc("/api/verses", handleVerses)
	mux.HandleFunc("/api/search", handleSearch)
	mux.HandleFunc("/api/random", handleRandom)
	mux.HandleFunc("/api/daytext", handleDayText)
	mux.HandleFunc("/api/versions", handleVersions)
	mux.HandleFunc("/api/commentary", handleCommentary)
	mux.HandleFunc("/api/health", handleHealth)
	mux.HandleFunc("/api/status", handleStatus)
	mux.HandleFunc("/api/ws", handleWebSocket)

	return mux
}
