package subscription

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"neuradigest/internal/handler/http/pathutil"
	"neuradigest/internal/handler/http/respond"
	"neuradigest/internal/observability/logging"
	subUC "neuradigest/internal/usecase/subscription"
)

// DetailHandler returns the subscriber stored at one sheet row.
type DetailHandler struct {
	Svc    *subUC.Service
	Logger *slog.Logger
}

func (h DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	row, err := pathutil.ExtractRow(r.URL.Path, "/subscribers/")
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid row number"})
		return
	}

	found, err := h.Svc.Get(ctx, int(row))
	switch {
	case errors.Is(err, subUC.ErrRowNotFound):
		respond.JSON(w, http.StatusNotFound, errorResponse{Error: "Subscriber not found"})
		return
	case err != nil:
		logger.Error("subscriber lookup failed",
			"row", row,
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, SubscriberDTO{
		Row:          found.Row,
		Name:         found.Subscriber.Name,
		Email:        found.Subscriber.Email,
		SubscribedAt: found.Subscriber.SubscribedAt,
		Status:       found.Subscriber.Status,
	})
}
