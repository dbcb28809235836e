package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestTokenBucket_Allow(t *testing.T) {
	// 5 tokens, refilling at 1 token/second
	bucket := newTokenBucket(5, 1)

	// Should allow 5 requests immediately (burst)
	for i := 0; i < 5; i++ {
		if !bucket.allow() {
			t.Errorf("Request %d should be allowed (burst)", i+1)
		}
	}

	// 6th request should be denied
	if bucket.allow() {
		t.Error("6th request should be denied")
	}

	// Wait for refill (1 second = 1 token)
	time.Sleep(1100 * time.Millisecond)

	if !bucket.allow() {
		t.Error("Request after refill should be allowed")
	}

	if bucket.allow() {
		t.Error("Request should be denied after using refilled token")
	}
}

func TestTokenBucket_Remaining(t *testing.T) {
	bucket := newTokenBucket(10, 1)

	if remaining := bucket.remaining(); remaining != 10 {
		t.Errorf("Expected 10 remaining tokens, got %d", remaining)
	}

	for i := 0; i < 3; i++ {
		bucket.allow()
	}

	if remaining := bucket.remaining(); remaining != 7 {
		t.Errorf("Expected 7 remaining tokens, got %d", remaining)
	}

	// Wait for partial refill
	time.Sleep(500 * time.Millisecond)
	if remaining := bucket.remaining(); remaining < 7 || remaining > 8 {
		t.Errorf("Expected ~7-8 remaining tokens after partial refill, got %d", remaining)
	}
}

func TestTokenBucket_Reset(t *testing.T) {
	bucket := newTokenBucket(5, 1)

	for i := 0; i < 5; i++ {
		bucket.allow()
	}

	reset := bucket.reset()
	if !reset.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}

	// Should be approximately 5 seconds (5 tokens / 1 token per second)
	duration := time.Until(reset)
	if duration < 4*time.Second || duration > 6*time.Second {
		t.Errorf("Expected reset in ~5 seconds, got %v", duration)
	}
}

func TestTokenBucket_Concurrent(t *testing.T) {
	bucket := newTokenBucket(100, 10)

	var wg sync.WaitGroup
	var allowed, denied int
	var mu sync.Mutex

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if bucket.allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			} else {
				mu.Lock()
				denied++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// Should have allowed ~100 (the burst capacity)
	if allowed < 90 || allowed > 110 {
		t.Errorf("Expected ~100 allowed requests, got %d", allowed)
	}
	if denied < 90 || denied > 110 {
		t.Errorf("Expected ~100 denied requests, got %d", denied)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60, // 1 per second
		BurstSize:         5,
	})

	ip := "192.168.1.1"

	for i := 0; i < 5; i++ {
		if !rl.Allow(ip) {
			t.Errorf("Request %d should be allowed (burst)", i+1)
		}
	}

	if rl.Allow(ip) {
		t.Error("Request beyond burst should be denied")
	}

	time.Sleep(1100 * time.Millisecond)

	if !rl.Allow(ip) {
		t.Error("Request after refill should be allowed")
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60,
		BurstSize:         3,
	})

	ip1 := "192.168.1.1"
	ip2 := "192.168.1.2"

	for i := 0; i < 3; i++ {
		if !rl.Allow(ip1) {
			t.Errorf("IP1 request %d should be allowed", i+1)
		}
	}

	if rl.Allow(ip1) {
		t.Error("IP1 should be rate limited")
	}

	// IP2 should still have a full bucket
	for i := 0; i < 3; i++ {
		if !rl.Allow(ip2) {
			t.Errorf("IP2 request %d should be allowed", i+1)
		}
	}

	if rl.Allow(ip2) {
		t.Error("IP2 should be rate limited")
	}
}

func TestRateLimiter_Remaining(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60,
		BurstSize:         10,
	})

	ip := "192.168.1.1"

	if remaining := rl.Remaining(ip); remaining != 10 {
		t.Errorf("Expected 10 remaining, got %d", remaining)
	}

	for i := 0; i < 3; i++ {
		rl.Allow(ip)
	}

	if remaining := rl.Remaining(ip); remaining != 7 {
		t.Errorf("Expected 7 remaining after 3 requests, got %d", remaining)
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60,
		BurstSize:         3,
	})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	limitedHandler := rl.Middleware(handler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/books", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()

		limitedHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, w.Code)
		}
		if got := w.Header().Get("X-RateLimit-Limit"); got != "60" {
			t.Errorf("Request %d: expected X-RateLimit-Limit=60, got %s", i+1, got)
		}
		if w.Header().Get("X-RateLimit-Remaining") == "" {
			t.Errorf("Request %d: X-RateLimit-Remaining header missing", i+1)
		}
	}

	// 4th request should be rate limited
	req := httptest.NewRequest("GET", "/api/books", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()

	limitedHandler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header should be present when rate limited")
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type=application/json, got %s", ct)
	}

	var resp APIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding 429 body: %v", err)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("Expected RATE_LIMIT_EXCEEDED error envelope, got %+v", resp)
	}
}

func TestRateLimiter_Headers(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60,
		BurstSize:         5,
	})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	limitedHandler := rl.Middleware(handler)

	req := httptest.NewRequest("GET", "/api/books", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()

	limitedHandler.ServeHTTP(w, req)

	for _, header := range []string{
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
	} {
		if w.Header().Get(header) == "" {
			t.Errorf("Required header %s is missing", header)
		}
	}

	if limit := w.Header().Get("X-RateLimit-Limit"); limit != "60" {
		t.Errorf("Expected X-RateLimit-Limit=60, got %s", limit)
	}
	// Headers report the state before this request consumes a token.
	if remaining := w.Header().Get("X-RateLimit-Remaining"); remaining != "5" {
		t.Errorf("Expected X-RateLimit-Remaining=5, got %s", remaining)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name         string
		remoteAddr   string
		forwardedFor string
		realIP       string
		expectedIP   string
	}{
		{
			name:       "RemoteAddr only",
			remoteAddr: "192.168.1.1:12345",
			expectedIP: "192.168.1.1",
		},
		{
			name:         "X-Forwarded-For header",
			remoteAddr:   "192.168.1.1:12345",
			forwardedFor: "203.0.113.1",
			expectedIP:   "203.0.113.1",
		},
		{
			name:       "X-Real-IP header",
			remoteAddr: "192.168.1.1:12345",
			realIP:     "203.0.113.2",
			expectedIP: "203.0.113.2",
		},
		{
			name:         "X-Forwarded-For takes precedence",
			remoteAddr:   "192.168.1.1:12345",
			forwardedFor: "203.0.113.1",
			realIP:       "203.0.113.2",
			expectedIP:   "203.0.113.1",
		},
		{
			name:         "X-Forwarded-For with multiple IPs takes leftmost",
			remoteAddr:   "192.168.1.1:12345",
			forwardedFor: "203.0.113.1, 10.0.0.1, 172.16.0.1",
			expectedIP:   "203.0.113.1",
		},
		{
			name:         "X-Forwarded-For with spaces",
			remoteAddr:   "192.168.1.1:12345",
			forwardedFor: "  203.0.113.5  ,  10.0.0.2  ",
			expectedIP:   "203.0.113.5",
		},
		{
			name:         "invalid X-Forwarded-For falls back to RemoteAddr",
			remoteAddr:   "192.168.1.1:12345",
			forwardedFor: "not-an-ip-address",
			expectedIP:   "192.168.1.1",
		},
		{
			name:         "garbage X-Forwarded-For falls back to RemoteAddr",
			remoteAddr:   "192.168.1.1:12345",
			forwardedFor: "'; DROP TABLE users; --",
			expectedIP:   "192.168.1.1",
		},
		{
			name:       "invalid X-Real-IP falls back to RemoteAddr",
			remoteAddr: "192.168.1.1:12345",
			realIP:     "malicious-value",
			expectedIP: "192.168.1.1",
		},
		{
			name:         "IPv6 address",
			remoteAddr:   "[2001:db8::1]:12345",
			forwardedFor: "2001:db8::2",
			expectedIP:   "2001:db8::2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/books", nil)
			req.RemoteAddr = tt.remoteAddr

			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			if ip := getClientIP(req); ip != tt.expectedIP {
				t.Errorf("Expected IP %s, got %s", tt.expectedIP, ip)
			}
		})
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60,
		BurstSize:         5,
	})

	for i := 0; i < 5; i++ {
		rl.Allow(fmt.Sprintf("192.168.1.%d", i))
	}

	rl.mu.RLock()
	initialCount := len(rl.buckets)
	rl.mu.RUnlock()
	if initialCount != 5 {
		t.Fatalf("Expected 5 buckets, got %d", initialCount)
	}

	// A sweep "now" keeps every bucket; one past the TTL drops them all.
	rl.sweep(time.Now())

	rl.mu.RLock()
	afterFresh := len(rl.buckets)
	rl.mu.RUnlock()
	if afterFresh != 5 {
		t.Errorf("Sweep removed fresh buckets: %d remain", afterFresh)
	}

	rl.sweep(time.Now().Add(rl.cleanupTTL + time.Minute))

	rl.mu.RLock()
	afterStale := len(rl.buckets)
	rl.mu.RUnlock()
	if afterStale != 0 {
		t.Errorf("Expected all stale buckets removed, %d remain", afterStale)
	}
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 600,
		BurstSize:         100,
	})

	var wg sync.WaitGroup
	numGoroutines := 50
	requestsPerGoroutine := 20

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		ip := fmt.Sprintf("192.168.1.%d", i%10)

		go func(ip string) {
			defer wg.Done()
			for j := 0; j < requestsPerGoroutine; j++ {
				rl.Allow(ip)
				rl.Remaining(ip)
				rl.Reset(ip)
			}
		}(ip)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out - possible deadlock")
	}
}

func BenchmarkRateLimiter_Allow(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60,
		BurstSize:         10,
	})
	ip := "192.168.1.1"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rl.Allow(ip)
	}
}

func BenchmarkRateLimiter_AllowConcurrent(b *testing.B) {
	rl := NewRateLimiter(RateLimiterConfig{
		RequestsPerMinute: 60,
		BurstSize:         10,
	})

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ip := "192.168.1.1"
		for pb.Next() {
			rl.Allow(ip)
		}
	})
}
