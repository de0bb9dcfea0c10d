package news

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"neuradigest/internal/handler/http/respond"
	"neuradigest/internal/observability/logging"
	newsUC "neuradigest/internal/usecase/news"
)

// DigestHandler serves the merged, ranked news digest.
type DigestHandler struct {
	Svc    *newsUC.Service
	Logger *slog.Logger
}

func (h DigestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	items, err := h.Svc.Digest(ctx)
	if err != nil {
		if errors.Is(err, newsUC.ErrNoSources) {
			logger.Error("no feed sources configured")
		} else {
			logger.Error("digest request failed",
				"error", err.Error(),
				"duration_ms", time.Since(start).Milliseconds())
		}
		respond.JSON(w, http.StatusInternalServerError, DigestResponse{
			News:  []ItemDTO{},
			Error: "Failed to fetch news",
		})
		return
	}

	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, ItemDTO{
			Title:       item.Title,
			Link:        item.Link,
			PublishedAt: item.PublishedAt,
			Snippet:     item.Snippet,
			ImageURL:    item.ImageURL,
			Source:      item.Source,
			Category:    item.Category,
		})
	}

	logger.Info("digest served",
		"items", len(dtos),
		"duration_ms", time.Since(start).Milliseconds())

	respond.JSON(w, http.StatusOK, DigestResponse{News: dtos})
}
