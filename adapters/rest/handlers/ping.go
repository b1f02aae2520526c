package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskflow-service/core"
	"taskflow-service/pkg/res"
)

func NewPingHandler(log *slog.Logger, pinger core.Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			log.Warn("ping failed", "error", err)
			res.Json(w, map[string]any{"db": "down"}, http.StatusServiceUnavailable)
			return
		}
		res.Json(w, map[string]any{"db": "ok"}, http.StatusOK)
	}
}
