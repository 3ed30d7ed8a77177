package models

import (
	"time"
)

const (
	TaskTitleMaxLen       = 200
	TaskDescriptionMaxLen = 1000
)

// Task represents a study task. UserID is nullable: tasks created before
// logging in belong to nobody and stay reachable by anonymous callers.
type Task struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	IsCompleted bool      `gorm:"default:false;index" json:"is_completed"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	// Relationships
	User     *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Sessions []Session `gorm:"foreignKey:TaskID" json:"-"`
}
