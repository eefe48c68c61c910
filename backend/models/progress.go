package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressCompleted  = "COMPLETED"
)

type ActivityProgress struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex:idx_user_activity"`
	ActivityID  uint   `gorm:"uniqueIndex:idx_user_activity"`
	Status      string `gorm:"default:NOT_STARTED"` // NOT_STARTED, IN_PROGRESS, COMPLETED
	StartedAt   *time.Time
	CompletedAt *time.Time
	Attempts    int `gorm:"default:0"`
	XPEarned    int `gorm:"default:0"`
}
