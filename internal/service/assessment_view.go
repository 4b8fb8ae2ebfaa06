package service

import (
	"examer/internal/model"
)

// hiddenQuestionBody replaces question content in the student view.
const hiddenQuestionBody = "hide"

// AssessmentDetail is the per-role view of an assessment.
type AssessmentDetail struct {
	ID        uint                   `json:"id"`
	Subject   string                 `json:"subject"`
	Date      string                 `json:"date"`
	Time      string                 `json:"time"`
	Questions map[string]interface{} `json:"questions"`
	CreatorID uint                   `json:"creator_id"`
}

// BuildAssessmentDetail maps an assessment to the view the role is allowed to
// see. A teacher gets question bodies; a student gets the identical key set
// with every value replaced by a placeholder, so question count and order are
// visible but content is not.
func BuildAssessmentDetail(role model.Role, a *model.Assessment) AssessmentDetail {
	detail := AssessmentDetail{
		ID:        a.ID,
		Subject:   a.SubjectName,
		Date:      a.Date,
		Time:      a.StartTime,
		Questions: make(map[string]interface{}, len(a.Questions)),
		CreatorID: a.CreatorID,
	}

	for key, body := range a.Questions {
		if role == model.RoleTeacher {
			detail.Questions[key] = body
		} else {
			detail.Questions[key] = hiddenQuestionBody
		}
	}
	return detail
}
