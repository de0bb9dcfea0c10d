package http_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "neuradigest/internal/handler/http"
)

// 同一IPからの連続リクエスト
func BenchmarkRateLimiter_SameIP(b *testing.B) {
	limiter := httpHandler.NewRateLimiter(10000, time.Minute)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	req.RemoteAddr = "203.0.113.100:12345"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

// 複数IPの混在リクエスト
func BenchmarkRateLimiter_MultipleIPs(b *testing.B) {
	limiter := httpHandler.NewRateLimiter(1000, time.Minute)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ips := make([]string, 32)
	for i := range ips {
		ips[i] = fmt.Sprintf("203.0.113.%d:12345", i+1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/news", nil)
		req.RemoteAddr = ips[i%len(ips)]
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkRateLimiter_Parallel(b *testing.B) {
	limiter := httpHandler.NewRateLimiter(1 << 20, time.Minute)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	b.RunParallel(func(pb *testing.PB) {
		req := httptest.NewRequest(http.MethodGet, "/news", nil)
		req.RemoteAddr = "203.0.113.50:12345"
		for pb.Next() {
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}
	})
}
