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

func NewCreateUserHandler(log *slog.Logger, svc *core.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateUserIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.Create(ctx, in.Name, in.Email, in.Password)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, u, http.StatusCreated)
	}
}

func NewLoginHandler(log *slog.Logger, svc *core.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.LoginIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, token, err := svc.Login(ctx, in.Email, in.Password)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, rest.LoginOut{User: u, Token: token}, http.StatusOK)
	}
}

func NewListUsersHandler(log *slog.Logger, svc *core.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		users, err := svc.GetAll(ctx)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, users, http.StatusOK)
	}
}

func NewGetUserHandler(log *slog.Logger, svc *core.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		profile, err := svc.GetByID(ctx, id)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, profile, http.StatusOK)
	}
}

func NewUpdateUserHandler(log *slog.Logger, svc *core.UserService, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.ParseID(r.PathValue("id"))
		if err != nil {
			res.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var in rest.UpdateUserIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.Update(ctx, id, core.UserPatch{
			Name:     in.Name,
			Email:    in.Email,
			Password: in.Password,
			Avatar:   in.Avatar,
		})
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, u, http.StatusOK)
	}
}

func NewDeleteUserHandler(log *slog.Logger, svc *core.UserService, timeout time.Duration) http.HandlerFunc {
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
