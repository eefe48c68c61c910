package models

import "gorm.io/gorm"

type Module struct {
	gorm.Model
	Title         string
	ShortDesc     string
	Description   string
	Archetype     string // hacker, guardian, detective
	AgeGroup      string // child, teen
	LogoURL       string
	SequenceOrder int
	Activities    []Activity
}

type Activity struct {
	gorm.Model
	ModuleID      uint
	Title         string
	Description   string
	Kind          string // quiz, fake_news, password_challenge, info_text, chat_simulation, match_pairs
	Content       string // JSON payload rendered by the client
	SequenceOrder int
}
