package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/Scriptura/internal/apikey"
)

func TestAuthMiddlewareDisabled(t *testing.T) {
	// When auth is disabled, all requests should pass through
	authCfg := AuthConfig{Enabled: false}

	handlerCalled := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := AuthMiddleware(authCfg, testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("expected handler to be called when auth is disabled")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestAuthMiddlewareEnabledValidKey(t *testing.T) {
	authCfg := AuthConfig{
		Enabled: true,
		APIKeys: []string{"test-api-key-12345678"},
	}

	handlerCalled := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := AuthMiddleware(authCfg, testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", "test-api-key-12345678")
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("expected handler to be called with valid API key")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestAuthMiddlewareEnabledMissingKey(t *testing.T) {
	authCfg := AuthConfig{
		Enabled: true,
		APIKeys: []string{"test-api-key-12345678"},
	}

	handlerCalled := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := AuthMiddleware(authCfg, testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if handlerCalled {
		t.Error("expected handler not to be called without API key")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}

	var resp APIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding 401 body: %v", err)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != "UNAUTHORIZED" {
		t.Errorf("expected UNAUTHORIZED error envelope, got %+v", resp)
	}
}

func TestAuthMiddlewareEnabledInvalidKey(t *testing.T) {
	authCfg := AuthConfig{
		Enabled: true,
		APIKeys: []string{"correct-api-key-12345678"},
	}

	handlerCalled := false
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	middleware := AuthMiddleware(authCfg, testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", "wrong-api-key")
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if handlerCalled {
		t.Error("expected handler not to be called with invalid API key")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareSecondStaticKey(t *testing.T) {
	// Any key in the list authorizes, not just the first.
	authCfg := AuthConfig{
		Enabled: true,
		APIKeys: []string{"first-api-key-12345678", "second-api-key-87654321"},
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := AuthMiddleware(authCfg, testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", "second-api-key-87654321")
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 with second key, got %d", w.Code)
	}
}

func TestAuthMiddlewarePublicEndpoints(t *testing.T) {
	authCfg := AuthConfig{
		Enabled: true,
		APIKeys: []string{"test-api-key-12345678"},
	}

	for _, path := range []string{"/", "/api/health", "/api/status"} {
		handlerCalled := false
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusOK)
		})
		middleware := AuthMiddleware(authCfg, testHandler)

		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		middleware.ServeHTTP(w, req)

		if !handlerCalled {
			t.Errorf("expected handler to be called for public endpoint %s", path)
		}
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
	}
}

func TestAuthMiddlewareKeyStore(t *testing.T) {
	ks, err := apikey.Open(filepath.Join(t.TempDir(), "keys.db"))
	if err != nil {
		t.Fatalf("opening key store: %v", err)
	}
	issued, err := ks.Issue(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("issuing key: %v", err)
	}

	keyStore = ks
	t.Cleanup(func() {
		keyStore = nil
		ks.Close()
	})

	authCfg := AuthConfig{Enabled: true, KeysDB: "keys.db"}
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := AuthMiddleware(authCfg, testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", issued.Key)
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 with issued key, got %d", w.Code)
	}

	if err := ks.Revoke(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("revoking key: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", issued.Key)
	w = httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 after revocation, got %d", w.Code)
	}
}

func TestHandleStatusReportsKeyStore(t *testing.T) {
	setupAPI(t)

	ks, err := apikey.Open(filepath.Join(t.TempDir(), "keys.db"))
	if err != nil {
		t.Fatalf("opening key store: %v", err)
	}
	keyStore = ks
	t.Cleanup(func() {
		keyStore = nil
		ks.Close()
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	handleStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	data := dataMap(t, decodeResponse(t, w))
	driver, ok := data["key_store"].(map[string]interface{})
	if !ok {
		t.Fatalf("key_store missing from status: %v", data)
	}
	if driver["driver_name"] == "" || driver["driver_type"] == "" {
		t.Errorf("key_store driver info incomplete: %v", driver)
	}
}

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/", true},
		{"/api/health", true},
		{"/api/status", true},
		{"/api/verse", false},
		{"/api/parse/reference", false},
		{"/api/versions", false},
		{"/api/ws", false},
		{"/api/healthcheck", false},
	}

	for _, tc := range tests {
		if got := isPublicEndpoint(tc.path); got != tc.expected {
			t.Errorf("isPublicEndpoint(%q) = %v, want %v", tc.path, got, tc.expected)
		}
	}
}

func TestValidateAuthConfigValid(t *testing.T) {
	tests := []struct {
		name   string
		config AuthConfig
	}{
		{
			name:   "disabled auth",
			config: AuthConfig{Enabled: false},
		},
		{
			name: "enabled with valid key",
			config: AuthConfig{
				Enabled: true,
				APIKeys: []string{"valid-api-key-16chars"},
			},
		},
		{
			name: "enabled with key database only",
			config: AuthConfig{
				Enabled: true,
				KeysDB:  "/var/lib/scriptura/keys.db",
			},
		},
		{
			name: "enabled with multiple long keys",
			config: AuthConfig{
				Enabled: true,
				APIKeys: []string{
					"very-long-api-key-with-many-characters",
					"another-sufficiently-long-key",
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateAuthConfig(tc.config); err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateAuthConfigInvalid(t *testing.T) {
	tests := []struct {
		name   string
		config AuthConfig
	}{
		{
			name:   "enabled without key or database",
			config: AuthConfig{Enabled: true},
		},
		{
			name: "enabled with short key",
			config: AuthConfig{
				Enabled: true,
				APIKeys: []string{"short"},
			},
		},
		{
			name: "enabled with 15 char key",
			config: AuthConfig{
				Enabled: true,
				APIKeys: []string{"123456789012345"},
			},
		},
		{
			name: "one valid key and one short key",
			config: AuthConfig{
				Enabled: true,
				APIKeys: []string{"valid-api-key-16chars", "short"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateAuthConfig(tc.config); err == nil {
				t.Error("expected error for invalid config")
			}
		})
	}
}

func TestGenerateAPIKeyExample(t *testing.T) {
	example := GenerateAPIKeyExample()
	if example == "" {
		t.Error("expected non-empty example string")
	}
	if len(example) < 20 {
		t.Error("expected example to contain meaningful message")
	}
}

func TestMatchesStaticKey(t *testing.T) {
	keys := []string{"first-api-key-12345678", "second-api-key-87654321"}

	if matchesStaticKey("first-api-key-12345678", nil) {
		t.Error("empty key list should match nothing")
	}
	if !matchesStaticKey("first-api-key-12345678", keys) {
		t.Error("expected first key to match")
	}
	if !matchesStaticKey("second-api-key-87654321", keys) {
		t.Error("expected second key to match")
	}
	if matchesStaticKey("unknown-api-key-00000000", keys) {
		t.Error("unknown key should not match")
	}
}

func TestAuthMiddlewareCaseSensitiveKey(t *testing.T) {
	// API keys should be case-sensitive
	authCfg := AuthConfig{
		Enabled: true,
		APIKeys: []string{"CaseSensitiveKey123"},
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := AuthMiddleware(authCfg, testHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", "CaseSensitiveKey123")
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 with correct case, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", "casesensitivekey123")
	w = httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 with wrong case, got %d", w.Code)
	}
}

func TestAuthMiddlewareMultipleRequests(t *testing.T) {
	authCfg := AuthConfig{
		Enabled: true,
		APIKeys: []string{"test-api-key-12345678"},
	}

	callCount := 0
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
	})
	middleware := AuthMiddleware(authCfg, testHandler)

	// First request with valid key
	req := httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", "test-api-key-12345678")
	w := httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}

	// Second request without key
	req = httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	w = httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if callCount != 1 {
		t.Errorf("expected still 1 call (unauthorized request shouldn't reach handler), got %d", callCount)
	}

	// Third request with valid key
	req = httptest.NewRequest(http.MethodGet, "/api/verse", nil)
	req.Header.Set("X-API-Key", "test-api-key-12345678")
	w = httptest.NewRecorder()
	middleware.ServeHTTP(w, req)

	if callCount != 2 {
		t.Errorf("expected 2 calls, got %d", callCount)
	}
}
