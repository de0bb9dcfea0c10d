package subscription

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/handler/http/respond"
	"neuradigest/internal/observability/logging"
	subUC "neuradigest/internal/usecase/subscription"
)

// SubscribeHandler handles newsletter signups.
type SubscribeHandler struct {
	Svc    *subUC.Service
	Logger *slog.Logger
}

func (h SubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	sub, err := h.Svc.Subscribe(ctx, req.Name, req.Email)
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.JSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message})
		case errors.Is(err, subUC.ErrAlreadySubscribed):
			respond.JSON(w, http.StatusConflict, errorResponse{Error: "This email is already subscribed."})
		default:
			logger.Error("subscribe failed",
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds())
			respond.JSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to subscribe: " + respond.SanitizeError(err) + ". Please try again later."})
		}
		return
	}

	logger.Info("subscriber added",
		"email", sub.Email,
		"duration_ms", time.Since(start).Milliseconds())

	respond.JSON(w, http.StatusOK, messageResponse{Message: "Successfully subscribed to newsletter!"})
}
