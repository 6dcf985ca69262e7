package service

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestApplyGradeResult(t *testing.T) {
	passed := &GradeResult{
		Answers: []model.SubmissionAnswer{{QuestionID: 1, IsCorrect: true, PointsEarned: 5}},
		Score:   100,
		Passed:  true,
	}
	failed := &GradeResult{
		Answers: []model.SubmissionAnswer{{QuestionID: 1, IsCorrect: false}},
		Score:   20,
		Passed:  false,
	}

	s := model.ExamSubmission{Status: model.SubmissionPending}
	assert.NoError(t, applyGradeResult(&s, passed))
	assert.Equal(t, model.SubmissionGraded, s.Status)
	assert.Equal(t, float64(100), s.Score)
	answers, err := s.DecodeAnswers()
	assert.NoError(t, err)
	assert.True(t, answers[0].IsCorrect)

	s = model.ExamSubmission{Status: model.SubmissionPending}
	assert.NoError(t, applyGradeResult(&s, failed))
	assert.Equal(t, model.SubmissionFailed, s.Status)
}

// 判分结果写到副本上，原始提交在持久化成功前保持待判分状态
func TestGradeResultAppliedToCopyLeavesOriginalPending(t *testing.T) {
	original := model.ExamSubmission{Status: model.SubmissionPending}

	graded := original
	assert.NoError(t, applyGradeResult(&graded, &GradeResult{Score: 80, Passed: true}))

	assert.Equal(t, model.SubmissionPending, original.Status)
	assert.Zero(t, original.Score)
	assert.Equal(t, model.SubmissionGraded, graded.Status)
}
