package services

import (
	"time"
)

// TaskView is the read shape of a task. SessionCount and TotalStudyTime are
// derived from completed sessions at read time and never stored.
type TaskView struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	IsCompleted    bool      `json:"is_completed"`
	SessionCount   int       `json:"session_count"`
	TotalStudyTime int       `json:"total_study_time"` // minutes
}

// SessionView is the read shape of a session with the parent task's title
// denormalized in.
type SessionView struct {
	ID          uint       `json:"id"`
	TaskID      uint       `json:"task_id"`
	TaskTitle   string     `json:"task_title"`
	Duration    int        `json:"duration"` // minutes
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	IsCompleted bool       `json:"is_completed"`
}

// SessionStats aggregates a single user's sessions. All figures except
// TotalSessions cover completed sessions only.
type SessionStats struct {
	TotalSessions          int         `json:"total_sessions"`
	TotalStudyTime         int         `json:"total_study_time"` // minutes
	CompletedSessions      int         `json:"completed_sessions"`
	PomodoroSessions       int         `json:"pomodoro_sessions"`
	FreeSessions           int         `json:"free_sessions"`
	AverageSessionDuration float64     `json:"average_session_duration"`
	DailyStats             []DailyStat `json:"daily_stats"`
}

// DailyStat is one calendar-day bucket of completed sessions.
type DailyStat struct {
	Date         time.Time `json:"date"`
	SessionCount int       `json:"session_count"`
	TotalMinutes int       `json:"total_minutes"`
}

// UserView is the public shape of a user account.
type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult couples a freshly issued token with its user.
type AuthResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
