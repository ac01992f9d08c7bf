package security

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"aiwire/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 5)

	ip1 := "192.168.1.1"
	limiter1 := limiter.GetLimiter(ip1)
	limiter2 := limiter.GetLimiter(ip1)

	if limiter1 != limiter2 {
		t.Error("Expected same limiter for same IP")
	}

	limiter3 := limiter.GetLimiter("192.168.1.2")
	if limiter1 == limiter3 {
		t.Error("Expected different limiters for different IPs")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(10), 5)
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	limiter.GetLimiter("192.168.1.1")
	current = current.Add(20 * time.Minute)
	limiter.GetLimiter("192.168.1.2")

	if removed := limiter.Cleanup(10 * time.Minute); removed != 1 {
		t.Errorf("Expected 1 idle limiter removed, got %d", removed)
	}
	if limiter.Len() != 1 {
		t.Errorf("Expected 1 limiter left, got %d", limiter.Len())
	}
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	if !cfg.EnableRateLimit {
		t.Error("Expected rate limiting to be enabled by default")
	}
	if cfg.RateLimitPerSecond != 10.0 {
		t.Errorf("Expected rate limit per second to be 10.0, got %f", cfg.RateLimitPerSecond)
	}
	if cfg.RateLimitBurst != 20 {
		t.Errorf("Expected rate limit burst to be 20, got %d", cfg.RateLimitBurst)
	}
	if !cfg.EnableCORS || !cfg.EnableSecurityHeaders || !cfg.EnableRequestID {
		t.Error("Expected CORS, security headers and request IDs enabled by default")
	}
	if cfg.MaxRequestSize != 1<<20 {
		t.Errorf("Expected max request size to be 1MB, got %d", cfg.MaxRequestSize)
	}
}

func TestSetupSecurityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		cfg         *config.SecurityConfig
		wantHeaders bool
	}{
		{name: "defaults", cfg: nil, wantHeaders: true},
		{
			name: "all disabled",
			cfg: &config.SecurityConfig{
				MaxRequestSize: 1024,
			},
			wantHeaders: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			SetupSecurityMiddleware(router, tt.cfg)
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/test", nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			gotRequestID := w.Header().Get("X-Request-ID") != ""
			gotFrameDeny := w.Header().Get("X-Frame-Options") == "DENY"
			if gotRequestID != tt.wantHeaders || gotFrameDeny != tt.wantHeaders {
				t.Errorf("Expected headers present=%v, got request id=%v frame deny=%v", tt.wantHeaders, gotRequestID, gotFrameDeny)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	limiter := NewRateLimiter(rate.Limit(1), 2)
	router.Use(RateLimitMiddleware(limiter))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1")
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected burst requests to succeed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be limited, got %d", codes[2])
	}

	// another client has its own bucket
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.2")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected other client to succeed, got %d", w.Code)
	}
}

func TestRequestSizeMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(RequestSizeMiddleware(100))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/test", nil)
	req.ContentLength = 50
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/test", nil)
	req.ContentLength = 150
	router.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/test", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for request with no content length, got %d", w.Code)
	}
}

func TestInputValidationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(InputValidationMiddleware())
	router.GET("/api/v1/articles", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tests := []struct {
		name   string
		params url.Values
		want   int
	}{
		{"no parameters", url.Values{}, http.StatusOK},
		{"plain query", url.Values{"q": {"gpt-5 launch"}}, http.StatusOK},
		{"query at limit", url.Values{"q": {strings.Repeat("a", MaxQueryLength)}}, http.StatusOK},
		{"multibyte query at limit", url.Values{"q": {strings.Repeat("é", MaxQueryLength)}}, http.StatusOK},
		{"query too long", url.Values{"q": {strings.Repeat("a", MaxQueryLength+1)}}, http.StatusBadRequest},
		{"query with control character", url.Values{"q": {"gpt\x00"}}, http.StatusBadRequest},
		{"topic with space", url.Values{"topic": {"Google AI"}}, http.StatusOK},
		{"topic with dot", url.Values{"topic": {"Copy.ai"}}, http.StatusOK},
		{"topic too long", url.Values{"topic": {strings.Repeat("t", MaxTopicLength+1)}}, http.StatusBadRequest},
		{"topic with symbols", url.Values{"topic": {"<script>"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/api/v1/articles?"+tt.params.Encode(), nil)
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestSecurityLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(SecurityLoggingMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("User-Agent", "TestBot/1.0")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1"}, "", "192.168.1.1"},
		{"real ip", map[string]string{"X-Real-IP": "192.168.1.2"}, "", "192.168.1.2"},
		{"single forwarded", map[string]string{"X-Forwarded-For": "192.168.1.3"}, "", "192.168.1.3"},
		{"remote addr", nil, "192.168.1.4:12345", "192.168.1.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				got = getClientIP(c)
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}
			router.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsValidTopicName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"OpenAI", true},
		{"Google Cloud AI", true},
		{"AI21 Labs", true},
		{"Copy.ai", true},
		{"topic_with_underscores", true},
		{"a", true},
		{"", false},
		{"invalid@topic", false},
		{"topic!with!special!chars", false},
		{strings.Repeat("x", MaxTopicLength), true},
		{strings.Repeat("x", MaxTopicLength+1), false},
	}

	for _, tt := range tests {
		if got := isValidTopicName(tt.name); got != tt.valid {
			t.Errorf("isValidTopicName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}
