package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"taskflow-service/adapters/rest"
	"taskflow-service/core"
	"taskflow-service/pkg/res"
)

func NewCreatePriorityHandler(log *slog.Logger, svc *core.PriorityService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreatePriorityIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.Create(ctx, in.Level, in.Default)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, p, http.StatusCreated)
	}
}

func NewListPrioritiesHandler(log *slog.Logger, svc *core.PriorityService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		priorities, err := svc.GetAll(ctx)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, priorities, http.StatusOK)
	}
}

func NewGetPriorityHandler(log *slog.Logger, svc *core.PriorityService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.GetByID(ctx, id)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, p, http.StatusOK)
	}
}

func NewUpdatePriorityHandler(log *slog.Logger, svc *core.PriorityService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var in rest.UpdatePriorityIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		p, err := svc.Update(ctx, id, core.PriorityPatch{Level: in.Level, Default: in.Default})
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, p, http.StatusOK)
	}
}

func NewDeletePriorityHandler(log *slog.Logger, svc *core.PriorityService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.Delete(ctx, id); err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.NoContent(w)
	}
}
