package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPICSPConfig(t *testing.T) {
	cfg := APICSPConfig()

	if len(cfg.DefaultSrc) != 1 || cfg.DefaultSrc[0] != "'none'" {
		t.Errorf("API DefaultSrc should be ['none'], got %v", cfg.DefaultSrc)
	}

	if len(cfg.ScriptSrc) != 0 {
		t.Errorf("API ScriptSrc should be empty, got %v", cfg.ScriptSrc)
	}
}

func TestBuildCSPHeader(t *testing.T) {
	tests := []struct {
		name     string
		cfg      CSPConfig
		expected string
	}{
		{
			name: "simple config",
			cfg: CSPConfig{
				DefaultSrc: []string{"'self'"},
				ScriptSrc:  []string{"'self'"},
			},
			expected: "default-src 'self'; script-src 'self'",
		},
		{
			name: "with upgrade-insecure-requests",
			cfg: CSPConfig{
				DefaultSrc:              []string{"'self'"},
				UpgradeInsecureRequests: true,
			},
			expected: "default-src 'self'; upgrade-insecure-requests",
		},
		{
			name: "multiple sources",
			cfg: CSPConfig{
				ImgSrc: []string{"'self'", "data:"},
			},
			expected: "img-src 'self' data:",
		},
		{
			name:     "empty config",
			cfg:      CSPConfig{},
			expected: "",
		},
		{
			name:     "api config",
			cfg:      APICSPConfig(),
			expected: "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.BuildCSPHeader(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSecurityHeadersWithCSP(t *testing.T) {
	handler := SecurityHeadersWithCSP(APICSPConfig(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	headers := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'",
	}
	for name, want := range headers {
		if got := resp.Header.Get(name); got != want {
			t.Errorf("header %s: expected %q, got %q", name, want, got)
		}
	}
}

func TestSecurityHeadersWithCSPEmptyConfig(t *testing.T) {
	handler := SecurityHeadersWithCSP(CSPConfig{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if got := w.Result().Header.Get("Content-Security-Policy"); got != "" {
		t.Errorf("expected no CSP header for empty config, got %q", got)
	}
	if got := w.Result().Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
}

func TestValidateContentType(t *testing.T) {
	allowed := []string{"application/json"}

	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"exact match", "application/json", true},
		{"with charset parameter", "application/json; charset=utf-8", true},
		{"case insensitive", "Application/JSON", true},
		{"form encoded rejected", "application/x-www-form-urlencoded", false},
		{"multipart rejected", "multipart/form-data; boundary=x", false},
		{"empty rejected", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateContentType(tt.contentType, allowed); got != tt.want {
				t.Errorf("ValidateContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}
