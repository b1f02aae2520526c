package rest

import "taskflow-service/core"

type CreateUserIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOut struct {
	User  core.User `json:"user"`
	Token string    `json:"token"`
}

type UpdateUserIn struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

type CreatePriorityIn struct {
	Level   string `json:"level"`
	Default bool   `json:"default"`
}

type UpdatePriorityIn struct {
	Level   *string `json:"level,omitempty"`
	Default *bool   `json:"default,omitempty"`
}

type CreateTagIn struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

type UpdateTagIn struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type CreateTaskIn struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	PriorityID    int64            `json:"priorityId"`
	CreatorID     int64            `json:"creatorId"`
	ResponsibleID *int64           `json:"responsibleId,omitempty"`
	Status        *core.TaskStatus `json:"status,omitempty"`
	TagIDs        []int64          `json:"tagIds,omitempty"`
}

type UpdateTaskIn struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	PriorityID  *int64           `json:"priorityId,omitempty"`
	Status      *core.TaskStatus `json:"status,omitempty"`
	TagIDs      *[]int64         `json:"tagIds,omitempty"`
}

type AssignResponsibleIn struct {
	ResponsibleID int64 `json:"responsibleId"`
}
