package models

import "gorm.io/gorm"

type Article struct {
	gorm.Model
	Title     string
	Slug      string `gorm:"unique;not null"`
	Summary   string
	Content   string
	CoverURL  string
	Audience  string // child, teen, responsible
	AuthorID  uint
	Published bool `gorm:"default:false"`
}
