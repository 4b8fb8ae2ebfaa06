package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"examer/internal/model"
)

func TestBuildAssessmentDetail(t *testing.T) {
	assessment := &model.Assessment{
		ID:          3,
		SubjectName: "History",
		Date:        "2026-10-01",
		StartTime:   "14:00",
		Questions: datatypes.JSONMap{
			"q1": "When did WW2 end?",
			"q2": "Who wrote the Declaration of Independence?",
			"q3": "Name the first Roman emperor.",
		},
		CreatorID: 4,
	}

	teacherView := BuildAssessmentDetail(model.RoleTeacher, assessment)
	studentView := BuildAssessmentDetail(model.RoleStudent, assessment)

	// Key-set parity: both views expose exactly the same question keys.
	assert.Len(t, teacherView.Questions, 3)
	assert.Len(t, studentView.Questions, 3)
	for key := range teacherView.Questions {
		assert.Contains(t, studentView.Questions, key)
	}

	for key, body := range assessment.Questions {
		assert.Equal(t, body, teacherView.Questions[key])
		assert.Equal(t, "hide", studentView.Questions[key])
	}

	assert.Equal(t, "History", studentView.Subject)
	assert.Equal(t, "2026-10-01", studentView.Date)
	assert.Equal(t, "14:00", studentView.Time)
}

func TestBuildAssessmentDetail_EmptyQuestions(t *testing.T) {
	assessment := &model.Assessment{
		ID:          5,
		SubjectName: "Geography",
		Questions:   datatypes.JSONMap{},
	}

	teacherView := BuildAssessmentDetail(model.RoleTeacher, assessment)
	studentView := BuildAssessmentDetail(model.RoleStudent, assessment)

	assert.Empty(t, teacherView.Questions)
	assert.Empty(t, studentView.Questions)
	assert.NotNil(t, studentView.Questions)
}
