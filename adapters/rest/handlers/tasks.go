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

func NewCreateTaskHandler(log *slog.Logger, svc *core.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		input := core.CreateTaskInput{
			Title:         in.Title,
			Description:   in.Description,
			PriorityID:    in.PriorityID,
			CreatorID:     in.CreatorID,
			ResponsibleID: in.ResponsibleID,
			TagIDs:        in.TagIDs,
		}
		if in.Status != nil {
			input.Status = *in.Status
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Create(ctx, input)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusCreated)
	}
}

func NewListTasksHandler(log *slog.Logger, svc *core.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		tasks, err := svc.GetAll(ctx)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, tasks, http.StatusOK)
	}
}

func NewGetTaskHandler(log *slog.Logger, svc *core.TaskService, timeout time.Duration) http.HandlerFunc {
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

func NewUpdateTaskHandler(log *slog.Logger, svc *core.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var in rest.UpdateTaskIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.Update(ctx, id, core.TaskPatch{
			Title:       in.Title,
			Description: in.Description,
			PriorityID:  in.PriorityID,
			Status:      in.Status,
			TagIDs:      in.TagIDs,
		})
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewAssignResponsibleHandler(log *slog.Logger, svc *core.TaskService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var in rest.AssignResponsibleIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.AssignResponsible(ctx, id, in.ResponsibleID)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewDeleteTaskHandler(log *slog.Logger, svc *core.TaskService, timeout time.Duration) http.HandlerFunc {
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

// NewTasksByHandler serves the /tasks/{priority,responsible,creator,tag}/{id}
// query routes through a shared shape.
func NewTasksByHandler(log *slog.Logger, timeout time.Duration, query func(context.Context, int64) ([]core.Task, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		tasks, err := query(ctx, id)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, tasks, http.StatusOK)
	}
}
