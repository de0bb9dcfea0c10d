package subscription

import (
	"log/slog"
	"net/http"
	"time"

	"neuradigest/internal/handler/http/respond"
	"neuradigest/internal/observability/logging"
	subUC "neuradigest/internal/usecase/subscription"
)

// ListHandler returns every subscriber row for admin inspection.
type ListHandler struct {
	Svc    *subUC.Service
	Logger *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	rows, err := h.Svc.List(ctx)
	if err != nil {
		logger.Error("subscriber list failed",
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]SubscriberDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, SubscriberDTO{
			Row:          row.Row,
			Name:         row.Subscriber.Name,
			Email:        row.Subscriber.Email,
			SubscribedAt: row.Subscriber.SubscribedAt,
			Status:       row.Subscriber.Status,
		})
	}

	logger.Info("subscriber list served",
		"count", len(dtos),
		"duration_ms", time.Since(start).Milliseconds())

	respond.JSON(w, http.StatusOK, dtos)
}
