package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username      string `gorm:"unique;not null"`
	Email         string `gorm:"unique;not null"`
	PasswordHash  string `gorm:"not null"`
	Role          string `gorm:"default:learner"` // learner, responsible, admin
	AgeGroup      string // child, teen
	XP            int    `gorm:"default:0"`
	Timezone      string `gorm:"default:America/Sao_Paulo"` // IANA name
	AvatarURL     string
	ResponsibleID *uint // learner -> responsible account
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
