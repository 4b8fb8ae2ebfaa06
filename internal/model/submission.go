package model

import (
	"time"

	"gorm.io/datatypes"
)

// Submission represents one student's keyed answer set for one assessment.
// The composite unique index rejects a second attempt by the same student.
type Submission struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	Answers      datatypes.JSONMap `json:"answers" gorm:"not null"` // question id -> answer body
	StudentID    uint              `json:"student_id" gorm:"not null;uniqueIndex:idx_student_assessment"`
	AssessmentID uint              `json:"assessment_id" gorm:"not null;uniqueIndex:idx_student_assessment"`
	CreatedAt    time.Time         `json:"created_at"`

	// Relations
	Student    User       `json:"-" gorm:"foreignKey:StudentID"`
	Assessment Assessment `json:"-" gorm:"foreignKey:AssessmentID"`
}
