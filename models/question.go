package models

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	Title      string         `json:"title" gorm:"not null"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	AuthorID   uint           `json:"author_id" gorm:"not null;index"`
	Author     User           `json:"author" gorm:"foreignKey:AuthorID"`
	NumReads   int            `json:"num_reads" gorm:"not null;default:0"`
	NumAnswers int            `json:"num_answers" gorm:"not null;default:0"`
	Tags       []string       `json:"tags" gorm:"type:text;serializer:json"`
	Img        string         `json:"img,omitempty"`
	Sponsor    string         `json:"sponsor"`
	Field      string         `json:"field"`
	Applicant  string         `json:"applicant"`
	Period     string         `json:"period"`
	Manager    string         `json:"manager"`
	Tel        string         `json:"tel"`
	Radio      string         `json:"radio"`
	CreatedAt  time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// EditableColumns are overwritten by an update; counters and ownership are not.
var EditableColumns = []string{
	"title", "content", "sponsor", "field", "applicant", "period", "manager", "tel", "radio", "tags",
}
