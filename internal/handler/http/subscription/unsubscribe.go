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

// UnsubscribeHandler handles unsubscribe requests.
type UnsubscribeHandler struct {
	Svc    *subUC.Service
	Logger *slog.Logger
}

func (h UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.Svc.Unsubscribe(ctx, req.Email); err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.As(err, &vErr):
			respond.JSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Message})
		case errors.Is(err, subUC.ErrNotSubscribed):
			respond.JSON(w, http.StatusNotFound, errorResponse{Error: "Email not found in our subscription list."})
		case errors.Is(err, subUC.ErrAlreadyUnsubscribed):
			respond.JSON(w, http.StatusConflict, errorResponse{Error: "This email is already unsubscribed."})
		default:
			logger.Error("unsubscribe failed",
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds())
			respond.JSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to unsubscribe: " + respond.SanitizeError(err) + ". Please try again later."})
		}
		return
	}

	logger.Info("subscriber removed",
		"email", entity.NormalizeEmail(req.Email),
		"duration_ms", time.Since(start).Milliseconds())

	respond.JSON(w, http.StatusOK, messageResponse{Message: "Successfully unsubscribed from newsletter!"})
}
