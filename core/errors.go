package core

import "errors"

var (
	ErrBadArguments    = errors.New("bad arguments")
	ErrInvalidID       = errors.New("invalid id")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Users errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Priorities errors
var (
	ErrPriorityNotFound  = errors.New("priority not found")
	ErrPriorityProtected = errors.New("default priority cannot be modified")
)

// Tags errors
var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag with this name already exists")
)

// Tasks errors
var (
	ErrTaskNotFound = errors.New("task not found")
)
