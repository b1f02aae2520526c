package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskflow-service/adapters/rest"
	"taskflow-service/core"
	"taskflow-service/pkg/res"
)

func NewGetHistoryHandler(log *slog.Logger, svc *core.HistoryService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := core.ParseID(r.PathValue("taskId"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		history, err := svc.GetByTask(ctx, taskID)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, history, http.StatusOK)
	}
}
