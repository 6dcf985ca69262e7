package service

import (
	"testing"

	"academy_backend/internal/model"
	"academy_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuestions(t *testing.T) {
	valid := choiceQuestion(t, 1, 1,
		model.ChoiceOption{OptionText: "对", IsCorrect: true},
		model.ChoiceOption{OptionText: "错"},
	)
	noCorrect := choiceQuestion(t, 2, 1,
		model.ChoiceOption{OptionText: "A"},
		model.ChoiceOption{OptionText: "B"},
	)
	trueFalse := model.ExamQuestion{
		BaseModel:    model.BaseModel{ID: 3},
		QuestionType: model.QuestionTrueFalse,
		Options:      mustJSON(t, []model.TrueFalseStatement{{StatementText: "陈述", IsTrue: true}}),
	}

	assert.NoError(t, validateQuestions([]model.ExamQuestion{valid, trueFalse}))
	assert.ErrorIs(t, validateQuestions([]model.ExamQuestion{valid, noCorrect}), util.ErrQuestionNeedsCorrect)
	// 非选择题不做选项校验
	assert.NoError(t, validateQuestions([]model.ExamQuestion{trueFalse}))
	assert.NoError(t, validateQuestions(nil))
}

func TestGetForTakingStripsAnswerKeys(t *testing.T) {
	// 剥离逻辑不依赖存储，直接在内存考试上走一遍
	exam := &model.Exam{
		Status:       model.ExamPublished,
		PassingScore: 70,
		Questions: []model.ExamQuestion{
			{
				BaseModel:    model.BaseModel{ID: 1},
				QuestionType: model.QuestionMultipleChoice,
				Options: mustJSON(t, []model.ChoiceOption{
					{OptionText: "A", IsCorrect: true},
					{OptionText: "B"},
				}),
				Explanation: "选A因为……",
			},
			{
				BaseModel:    model.BaseModel{ID: 2},
				QuestionType: model.QuestionTrueFalse,
				Options: mustJSON(t, []model.TrueFalseStatement{
					{StatementText: "陈述一", IsTrue: true},
				}),
			},
			{
				BaseModel:    model.BaseModel{ID: 3},
				QuestionType: model.QuestionShortAnswer,
				Options:      mustJSON(t, model.ShortAnswerKey{CorrectAnswer: "paris"}),
			},
		},
	}

	stripped, err := stripAnswerKeys(exam)
	require.NoError(t, err)

	opts, err := stripped.Questions[0].DecodeChoiceOptions()
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "A", opts[0].OptionText)
	assert.False(t, opts[0].IsCorrect)
	assert.Empty(t, stripped.Questions[0].Explanation)

	stmts, err := stripped.Questions[1].DecodeStatements()
	require.NoError(t, err)
	assert.False(t, stmts[0].IsTrue)

	assert.Nil(t, stripped.Questions[2].Options)

	// 原始考试对象不受影响
	origOpts, err := exam.Questions[0].DecodeChoiceOptions()
	require.NoError(t, err)
	assert.True(t, origOpts[0].IsCorrect)
}
