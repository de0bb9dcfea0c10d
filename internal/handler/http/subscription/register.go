package subscription

import (
	"log/slog"
	"net/http"

	"neuradigest/internal/handler/http/auth"
	subUC "neuradigest/internal/usecase/subscription"
)

// Register registers the subscription endpoints with the given mux.
// The subscriber list and detail lookups sit behind the auth middleware.
func Register(mux *http.ServeMux, svc *subUC.Service, logger *slog.Logger) {
	mux.Handle("POST /subscribe", SubscribeHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /unsubscribe", UnsubscribeHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /subscribers", auth.Authz(ListHandler{Svc: svc, Logger: logger}))
	mux.Handle("GET /subscribers/{row}", auth.Authz(DetailHandler{Svc: svc, Logger: logger}))
}
