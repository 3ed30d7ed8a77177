package services

import (
	"context"

	"github.com/balkashynov/cludy/internal/owner"
)

// TaskService manages study tasks. Every operation applies the owner
// visibility rule before touching storage.
type TaskService interface {
	Create(ctx context.Context, params CreateTaskParams, o owner.Owner) (*TaskView, error)
	GetByID(ctx context.Context, taskID uint, o owner.Owner) (*TaskView, error)
	List(ctx context.Context, o owner.Owner) ([]TaskView, error)
	Update(ctx context.Context, taskID uint, params UpdateTaskParams, o owner.Owner) (*TaskView, error)
	Delete(ctx context.Context, taskID uint, o owner.Owner) (bool, error)
}

// SessionService manages study sessions and computes per-user statistics.
type SessionService interface {
	Create(ctx context.Context, params CreateSessionParams, o owner.Owner) (*SessionView, error)
	GetUserSessions(ctx context.Context, o owner.Owner) ([]SessionView, error)
	GetTaskSessions(ctx context.Context, taskID uint, o owner.Owner) ([]SessionView, error)
	Complete(ctx context.Context, sessionID uint, o owner.Owner) (bool, error)
	GetUserStats(ctx context.Context, userID uint) (*SessionStats, error)
}

// AuthService registers and authenticates users and issues access tokens.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	GetUserByID(ctx context.Context, userID uint) (*UserView, error)
	ParseToken(token string) (uint, error)
}

type CreateTaskParams struct {
	Title       string
	Description string
}

type UpdateTaskParams struct {
	Title       string
	Description string
	IsCompleted bool
}

type CreateSessionParams struct {
	TaskID   uint
	Duration int // minutes
	Type     string
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}
