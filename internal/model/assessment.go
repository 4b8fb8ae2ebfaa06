package model

import (
	"time"

	"gorm.io/datatypes"
)

// Assessment represents an exam definition: subject, schedule and a keyed
// set of questions.
type Assessment struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	SubjectName string            `json:"subject_name" gorm:"size:255;not null;index"`
	Date        string            `json:"date" gorm:"size:10;not null"`      // YYYY-MM-DD
	StartTime   string            `json:"time" gorm:"size:5;not null"`       // HH:MM
	Questions   datatypes.JSONMap `json:"questions" gorm:"not null"`         // question id -> question body
	CreatorID   uint              `json:"creator_id" gorm:"not null;index"`  // Immutable after creation
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	Creator User `json:"-" gorm:"foreignKey:CreatorID"`
}
