package service

import (
	"encoding/json"
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func choiceQuestion(t *testing.T, id uint, points int, options ...model.ChoiceOption) model.ExamQuestion {
	t.Helper()
	return model.ExamQuestion{
		BaseModel:    model.BaseModel{ID: id},
		QuestionType: model.QuestionMultipleChoice,
		Points:       points,
		Options:      mustJSON(t, options),
	}
}

func TestGradeMultipleChoiceExactSelection(t *testing.T) {
	exam := &model.Exam{
		PassingScore: 70,
		Questions: []model.ExamQuestion{
			choiceQuestion(t, 1, 1,
				model.ChoiceOption{OptionText: "正确项", IsCorrect: true},
				model.ChoiceOption{OptionText: "干扰项", IsCorrect: false},
			),
		},
	}

	cases := []struct {
		name     string
		selected []model.SelectedOption
		correct  bool
	}{
		{"只选正确项", []model.SelectedOption{{OptionIndex: 0, Selected: true}}, true},
		{"两项全选", []model.SelectedOption{{OptionIndex: 0, Selected: true}, {OptionIndex: 1, Selected: true}}, false},
		{"全部不选", nil, false},
		{"只选错误项", []model.SelectedOption{{OptionIndex: 1, Selected: true}}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := GradeSubmission(exam, []model.SubmissionAnswer{
				{QuestionID: 1, QuestionType: model.QuestionMultipleChoice, SelectedOptions: tc.selected},
			})
			require.NoError(t, err)
			require.Len(t, result.Answers, 1)
			assert.Equal(t, tc.correct, result.Answers[0].IsCorrect)
			if tc.correct {
				assert.Equal(t, 1, result.Answers[0].PointsEarned)
			} else {
				assert.Zero(t, result.Answers[0].PointsEarned)
			}
		})
	}
}

func TestGradeTrueFalseAllStatementsMustMatch(t *testing.T) {
	q := model.ExamQuestion{
		BaseModel:    model.BaseModel{ID: 7},
		QuestionType: model.QuestionTrueFalse,
		Points:       2,
		Options: mustJSON(t, []model.TrueFalseStatement{
			{StatementText: "地球绕太阳公转", IsTrue: true},
			{StatementText: "水在0度沸腾", IsTrue: false},
		}),
	}
	exam := &model.Exam{PassingScore: 50, Questions: []model.ExamQuestion{q}}

	grade := func(responses []model.TrueFalseResponse) *GradeResult {
		result, err := GradeSubmission(exam, []model.SubmissionAnswer{{
			QuestionID:         7,
			QuestionType:       model.QuestionTrueFalse,
			TrueFalseResponses: responses,
		}})
		require.NoError(t, err)
		return result
	}

	// 全部答对
	result := grade([]model.TrueFalseResponse{
		{StatementIndex: 0, MarkedTrue: true},
		{StatementIndex: 1, MarkedTrue: false},
	})
	assert.True(t, result.Answers[0].IsCorrect)
	assert.Equal(t, 2, result.EarnedPoints)

	// 未作答的陈述按判“假”处理：漏答一条为假的陈述仍算答对
	result = grade([]model.TrueFalseResponse{
		{StatementIndex: 0, MarkedTrue: true},
	})
	assert.True(t, result.Answers[0].IsCorrect)
	assert.Equal(t, 2, result.EarnedPoints)

	// 漏答为真的陈述则不得分
	result = grade([]model.TrueFalseResponse{
		{StatementIndex: 1, MarkedTrue: false},
	})
	assert.False(t, result.Answers[0].IsCorrect)
	assert.Zero(t, result.EarnedPoints)

	// 判断错误不得分
	result = grade([]model.TrueFalseResponse{
		{StatementIndex: 0, MarkedTrue: true},
		{StatementIndex: 1, MarkedTrue: true},
	})
	assert.False(t, result.Answers[0].IsCorrect)
}

func TestGradeShortAnswer(t *testing.T) {
	cases := []struct {
		name     string
		key      model.ShortAnswerKey
		response string
		correct  bool
	}{
		{"默认不区分大小写", model.ShortAnswerKey{CorrectAnswer: "Paris"}, "paris", true},
		{"首尾空白忽略", model.ShortAnswerKey{CorrectAnswer: "paris"}, "  paris  ", true},
		{"区分大小写时不匹配", model.ShortAnswerKey{CorrectAnswer: "Paris", CaseSensitive: true}, "paris", false},
		{"部分匹配：作答包含答案", model.ShortAnswerKey{CorrectAnswer: "paris", AllowPartialMatch: true}, "Paris, France", true},
		{"部分匹配：答案包含作答", model.ShortAnswerKey{CorrectAnswer: "the quick brown fox", AllowPartialMatch: true}, "quick brown", true},
		{"未开启部分匹配则必须全等", model.ShortAnswerKey{CorrectAnswer: "paris"}, "Paris, France", false},
		{"空作答对空答案", model.ShortAnswerKey{CorrectAnswer: "  "}, "", true},
		{"空作答对非空答案", model.ShortAnswerKey{CorrectAnswer: "paris", AllowPartialMatch: true}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := model.ExamQuestion{
				BaseModel:    model.BaseModel{ID: 3},
				QuestionType: model.QuestionShortAnswer,
				Points:       1,
				Options:      mustJSON(t, tc.key),
			}
			exam := &model.Exam{PassingScore: 100, Questions: []model.ExamQuestion{q}}
			result, err := GradeSubmission(exam, []model.SubmissionAnswer{{
				QuestionID:          3,
				QuestionType:        model.QuestionShortAnswer,
				ShortAnswerResponse: tc.response,
			}})
			require.NoError(t, err)
			assert.Equal(t, tc.correct, result.Answers[0].IsCorrect)
		})
	}
}

func TestGradeSubmissionScoreAndPassing(t *testing.T) {
	exam := &model.Exam{
		PassingScore: 70,
		Questions: []model.ExamQuestion{
			choiceQuestion(t, 1, 1, model.ChoiceOption{OptionText: "A", IsCorrect: true}),
			choiceQuestion(t, 2, 3, model.ChoiceOption{OptionText: "B", IsCorrect: true}),
		},
	}

	// 只答对1分题：1/4 => 25分，未及格
	result, err := GradeSubmission(exam, []model.SubmissionAnswer{
		{QuestionID: 1, QuestionType: model.QuestionMultipleChoice, SelectedOptions: []model.SelectedOption{{OptionIndex: 0, Selected: true}}},
		{QuestionID: 2, QuestionType: model.QuestionMultipleChoice},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.EarnedPoints)
	assert.Equal(t, 4, result.TotalPoints)
	assert.InDelta(t, 25.0, result.Score, 0.0001)
	assert.False(t, result.Passed)

	// 全对：100分，及格
	result, err = GradeSubmission(exam, []model.SubmissionAnswer{
		{QuestionID: 1, QuestionType: model.QuestionMultipleChoice, SelectedOptions: []model.SelectedOption{{OptionIndex: 0, Selected: true}}},
		{QuestionID: 2, QuestionType: model.QuestionMultipleChoice, SelectedOptions: []model.SelectedOption{{OptionIndex: 0, Selected: true}}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, result.Score, 0.0001)
	assert.True(t, result.Passed)
}

func TestGradeSubmissionIgnoresUnknownQuestionID(t *testing.T) {
	exam := &model.Exam{
		PassingScore: 70,
		Questions: []model.ExamQuestion{
			choiceQuestion(t, 10, 2, model.ChoiceOption{OptionText: "A", IsCorrect: true}),
		},
	}

	result, err := GradeSubmission(exam, []model.SubmissionAnswer{
		{QuestionID: 999, QuestionType: model.QuestionMultipleChoice, SelectedOptions: []model.SelectedOption{{OptionIndex: 0, Selected: true}}},
		{QuestionID: 10, QuestionType: model.QuestionMultipleChoice, SelectedOptions: []model.SelectedOption{{OptionIndex: 0, Selected: true}}},
	})
	require.NoError(t, err)
	// 无效题目ID的作答被丢弃，不影响其余判分
	require.Len(t, result.Answers, 1)
	assert.Equal(t, uint(10), result.Answers[0].QuestionID)
	assert.InDelta(t, 100.0, result.Score, 0.0001)
}

// 题目重排后按ID匹配仍然判对，不依赖数组下标
func TestGradeSubmissionStableUnderReorder(t *testing.T) {
	q1 := choiceQuestion(t, 1, 1, model.ChoiceOption{OptionText: "A", IsCorrect: true}, model.ChoiceOption{OptionText: "B"})
	q2 := choiceQuestion(t, 2, 1, model.ChoiceOption{OptionText: "C"}, model.ChoiceOption{OptionText: "D", IsCorrect: true})

	answers := []model.SubmissionAnswer{
		{QuestionID: 1, QuestionType: model.QuestionMultipleChoice, SelectedOptions: []model.SelectedOption{{OptionIndex: 0, Selected: true}}},
		{QuestionID: 2, QuestionType: model.QuestionMultipleChoice, SelectedOptions: []model.SelectedOption{{OptionIndex: 1, Selected: true}}},
	}

	original := &model.Exam{PassingScore: 100, Questions: []model.ExamQuestion{q1, q2}}
	reordered := &model.Exam{PassingScore: 100, Questions: []model.ExamQuestion{q2, q1}}

	for _, exam := range []*model.Exam{original, reordered} {
		result, err := GradeSubmission(exam, answers)
		require.NoError(t, err)
		assert.True(t, result.Passed)
		assert.Equal(t, 2, result.EarnedPoints)
	}
}

func TestGradeSubmissionEmptyExam(t *testing.T) {
	exam := &model.Exam{PassingScore: 70}
	result, err := GradeSubmission(exam, nil)
	require.NoError(t, err)
	assert.Zero(t, result.TotalPoints)
	assert.Zero(t, result.Score)
	assert.False(t, result.Passed)
}
