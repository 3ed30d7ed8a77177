package models

import (
	"time"
)

const (
	SessionTypePomodoro = "pomodoro"
	SessionTypeFree     = "free"

	// Duration bounds in minutes.
	SessionDurationMin = 1
	SessionDurationMax = 480
)

// Session represents one timed study session against a task. The owner is
// captured from the actor at creation time and is independent of the task's
// owner. Deleting the parent task deletes its sessions; deleting the owning
// user only clears UserID.
type Session struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	TaskID      uint       `gorm:"not null;index" json:"task_id"`
	UserID      *uint      `gorm:"index" json:"user_id,omitempty"`
	Duration    int        `gorm:"not null" json:"duration"` // minutes
	Type        string     `gorm:"size:20;not null;index" json:"type"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	IsCompleted bool       `gorm:"default:false;index" json:"is_completed"`

	// Relationships
	Task Task  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// ValidSessionType reports whether t is one of the known session types.
func ValidSessionType(t string) bool {
	return t == SessionTypePomodoro || t == SessionTypeFree
}
