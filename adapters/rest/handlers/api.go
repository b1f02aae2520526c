package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"taskflow-service/adapters/rest"
	"taskflow-service/core"
)

type Deps struct {
	Users      *core.UserService
	Priorities *core.PriorityService
	Tags       *core.TagService
	Tasks      *core.TaskService
	History    *core.HistoryService
	Pinger     core.Pinger
}

func Register(mux *http.ServeMux, log *slog.Logger, deps Deps, tokens rest.TokenParser, timeout time.Duration) {
	authed := rest.RequireAuth(tokens)
	self := rest.RequireSelf()

	userExists := rest.RequireExists(log, timeout, func(ctx context.Context, id int64) error {
		_, err := deps.Users.GetByID(ctx, id)
		return err
	})
	priorityExists := rest.RequireExists(log, timeout, func(ctx context.Context, id int64) error {
		_, err := deps.Priorities.GetByID(ctx, id)
		return err
	})
	tagExists := rest.RequireExists(log, timeout, func(ctx context.Context, id int64) error {
		_, err := deps.Tags.GetByID(ctx, id)
		return err
	})

	// ping
	mux.Handle("GET /ping", NewPingHandler(log, deps.Pinger, timeout))

	// users
	mux.Handle("POST /users", NewCreateUserHandler(log, deps.Users, timeout))
	mux.Handle("POST /users/login", NewLoginHandler(log, deps.Users, timeout))
	mux.Handle("GET /users", NewListUsersHandler(log, deps.Users, timeout))
	mux.Handle("GET /users/{id}", rest.Chain(NewGetUserHandler(log, deps.Users, timeout), userExists))
	mux.Handle("PUT /users/{id}", rest.Chain(NewUpdateUserHandler(log, deps.Users, timeout), authed, userExists, self))
	mux.Handle("DELETE /users/{id}", rest.Chain(NewDeleteUserHandler(log, deps.Users, timeout), authed, userExists, self))

	// priorities
	mux.Handle("POST /priorities", rest.Chain(NewCreatePriorityHandler(log, deps.Priorities, timeout), authed))
	mux.Handle("GET /priorities", rest.Chain(NewListPrioritiesHandler(log, deps.Priorities, timeout), authed))
	mux.Handle("GET /priorities/{id}", rest.Chain(NewGetPriorityHandler(log, deps.Priorities, timeout), authed, priorityExists))
	mux.Handle("PUT /priorities/{id}", rest.Chain(NewUpdatePriorityHandler(log, deps.Priorities, timeout), authed, priorityExists))
	mux.Handle("DELETE /priorities/{id}", rest.Chain(NewDeletePriorityHandler(log, deps.Priorities, timeout), authed, priorityExists))

	// tags
	mux.Handle("POST /tags", rest.Chain(NewCreateTagHandler(log, deps.Tags, timeout), authed))
	mux.Handle("GET /tags", rest.Chain(NewListTagsHandler(log, deps.Tags, timeout), authed))
	mux.Handle("GET /tags/{id}", rest.Chain(NewGetTagHandler(log, deps.Tags, timeout), authed, tagExists))
	mux.Handle("PUT /tags/{id}", rest.Chain(NewUpdateTagHandler(log, deps.Tags, timeout), authed, tagExists))
	mux.Handle("DELETE /tags/{id}", rest.Chain(NewDeleteTagHandler(log, deps.Tags, timeout), authed, tagExists))

	// tasks
	mux.Handle("GET /tasks", NewListTasksHandler(log, deps.Tasks, timeout))
	mux.Handle("GET /tasks/{id}", NewGetTaskHandler(log, deps.Tasks, timeout))
	mux.Handle("POST /tasks", rest.Chain(NewCreateTaskHandler(log, deps.Tasks, timeout), authed))
	mux.Handle("PUT /tasks/{id}", rest.Chain(NewUpdateTaskHandler(log, deps.Tasks, timeout), authed))
	mux.Handle("DELETE /tasks/{id}", rest.Chain(NewDeleteTaskHandler(log, deps.Tasks, timeout), authed))
	mux.Handle("POST /tasks/{id}/assign", rest.Chain(NewAssignResponsibleHandler(log, deps.Tasks, timeout), authed))
	mux.Handle("GET /tasks/priority/{id}", rest.Chain(NewTasksByHandler(log, timeout, deps.Tasks.GetByPriority), authed))
	mux.Handle("GET /tasks/responsible/{id}", rest.Chain(NewTasksByHandler(log, timeout, deps.Tasks.GetByResponsible), authed))
	mux.Handle("GET /tasks/creator/{id}", rest.Chain(NewTasksByHandler(log, timeout, deps.Tasks.GetByCreator), authed))
	mux.Handle("GET /tasks/tag/{id}", rest.Chain(NewTasksByHandler(log, timeout, deps.Tasks.GetByTag), authed))

	// history
	mux.Handle("GET /history/{taskId}", rest.Chain(NewGetHistoryHandler(log, deps.History, timeout), authed))
}
