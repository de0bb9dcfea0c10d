package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{
			name:         "map payload",
			code:         http.StatusOK,
			data:         map[string]string{"message": "success"},
			expectedBody: `{"message":"success"}`,
		},
		{
			name:         "struct payload",
			code:         http.StatusCreated,
			data:         struct{ Row int }{Row: 2},
			expectedBody: `{"Row":2}`,
		},
		{
			name:         "nil payload writes no body",
			code:         http.StatusNoContent,
			data:         nil,
			expectedBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			if w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.expectedBody {
				t.Errorf("body = %q, want %q", got, tt.expectedBody)
			}
		})
	}
}

func TestSafeError_ValidationMessagePassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadRequest, errors.New("email is required"))

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "email is required" {
		t.Errorf("error = %q, want validation message", body["error"])
	}
}

func TestSafeError_InternalDetailIsHidden(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusBadGateway, errors.New("dial tcp 10.0.0.5:6379: connection refused"))

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, want generic message", body["error"])
	}
}

func TestSafeError_500AlwaysGeneric(t *testing.T) {
	// 500ではセーフなフレーズを含んでいても詳細を返さない
	w := httptest.NewRecorder()
	SafeError(w, http.StatusInternalServerError, errors.New("spreadsheet row not found during write"))

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error = %q, want generic message", body["error"])
	}
}

func TestSafeError_NilErrorWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	SafeError(w, http.StatusInternalServerError, nil)

	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}
