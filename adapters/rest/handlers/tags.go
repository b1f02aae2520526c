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

func NewCreateTagHandler(log *slog.Logger, svc *core.TagService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTagIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Create(ctx, in.Name, in.Color)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusCreated)
	}
}

func NewListTagsHandler(log *slog.Logger, svc *core.TagService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		tags, err := svc.GetAll(ctx)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, tags, http.StatusOK)
	}
}

func NewGetTagHandler(log *slog.Logger, svc *core.TagService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetByID(ctx, id)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewUpdateTagHandler(log *slog.Logger, svc *core.TagService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var in rest.UpdateTagIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Update(ctx, id, core.TagPatch{Name: in.Name, Color: in.Color})
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewDeleteTagHandler(log *slog.Logger, svc *core.TagService, timeout time.Duration) http.HandlerFunc {
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
