package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "test-id-123", FromContext(WithRequestID(context.Background(), "test-id-123")))
	assert.Equal(t, "", FromContext(context.Background()))

	// 型が違う値は無視
	ctx := context.WithValue(context.Background(), RequestIDKey, 12345)
	assert.Equal(t, "", FromContext(ctx))
}

func TestMiddleware_PropagatesExistingID(t *testing.T) {
	const existingID = "existing-request-id-456"
	var capturedID string

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	req.Header.Set(RequestIDHeader, existingID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, existingID, capturedID)
	assert.Equal(t, existingID, rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_GeneratesUUIDWhenMissing(t *testing.T) {
	var capturedID string

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, capturedID)
	_, err := uuid.Parse(capturedID)
	assert.NoError(t, err, "generated ID should be a valid UUID")
	assert.Equal(t, capturedID, rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := map[string]bool{}

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[FromContext(r.Context())] = true
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/news", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Len(t, seen, 5, "each request should get its own ID")
}
