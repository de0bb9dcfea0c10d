package http

import (
	"net/http"
)

const (
	maxAuthHeaderLen = 8192
	maxPathLen       = 2048
	maxBodyBytes     = 10 << 20
)

// InputValidation rejects oversized request parts before a handler sees
// them: Authorization headers over 8KB, paths over 2KB, and bodies over
// 10MB. A JWT is well under 1KB, so the header limit leaves plenty of
// headroom.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderLen {
				writeJSONError(w, http.StatusBadRequest, "authorization header too large")
				return
			}

			if len(r.URL.Path) > maxPathLen {
				writeJSONError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
