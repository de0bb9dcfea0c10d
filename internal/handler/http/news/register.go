package news

import (
	"log/slog"
	"net/http"

	newsUC "neuradigest/internal/usecase/news"
)

// Register registers the news digest endpoint with the given mux.
func Register(mux *http.ServeMux, svc *newsUC.Service, logger *slog.Logger) {
	mux.Handle("GET /news", DigestHandler{Svc: svc, Logger: logger})
}
