package service

import (
	"academy_backend/internal/model"
	"strings"
)

// GradeResult 一次判分的汇总结果
type GradeResult struct {
	Answers      []model.SubmissionAnswer
	EarnedPoints int
	TotalPoints  int
	Score        float64
	Passed       bool
}

// GradeSubmission 对整份答卷判分。
// 每道题按全对计分：选错任何一项即得0分。答卷按题目ID与试题匹配，
// 找不到对应题目的作答直接忽略，未作答的题目不得分。
// 总分为全部试题分值之和，得分率换算为百分制后与及格线比较。
func GradeSubmission(exam *model.Exam, answers []model.SubmissionAnswer) (*GradeResult, error) {
	byQuestion := make(map[uint]*model.ExamQuestion, len(exam.Questions))
	totalPoints := 0
	for i := range exam.Questions {
		q := &exam.Questions[i]
		byQuestion[q.ID] = q
		totalPoints += q.Points
	}

	earned := 0
	graded := make([]model.SubmissionAnswer, 0, len(answers))
	for _, answer := range answers {
		question, ok := byQuestion[answer.QuestionID]
		if !ok {
			continue
		}

		correct, err := gradeAnswer(question, &answer)
		if err != nil {
			return nil, err
		}

		answer.IsCorrect = correct
		answer.PointsEarned = 0
		if correct {
			answer.PointsEarned = question.Points
			earned += question.Points
		}
		graded = append(graded, answer)
	}

	score := 0.0
	if totalPoints > 0 {
		score = float64(earned) / float64(totalPoints) * 100
	}

	return &GradeResult{
		Answers:      graded,
		EarnedPoints: earned,
		TotalPoints:  totalPoints,
		Score:        score,
		Passed:       score >= exam.PassingScore,
	}, nil
}

func gradeAnswer(question *model.ExamQuestion, answer *model.SubmissionAnswer) (bool, error) {
	switch question.QuestionType {
	case model.QuestionMultipleChoice:
		options, err := question.DecodeChoiceOptions()
		if err != nil {
			return false, err
		}
		return gradeMultipleChoice(options, answer.SelectedOptions), nil
	case model.QuestionTrueFalse:
		statements, err := question.DecodeStatements()
		if err != nil {
			return false, err
		}
		return gradeTrueFalse(statements, answer.TrueFalseResponses), nil
	case model.QuestionShortAnswer:
		key, err := question.DecodeShortAnswerKey()
		if err != nil {
			return false, err
		}
		return gradeShortAnswer(key, answer.ShortAnswerResponse), nil
	}
	return false, nil
}

// gradeMultipleChoice 每个选项的勾选状态都必须与答案键一致，
// 未出现在作答中的选项视为未勾选
func gradeMultipleChoice(options []model.ChoiceOption, selected []model.SelectedOption) bool {
	marked := make(map[int]bool, len(selected))
	for _, s := range selected {
		if s.Selected {
			marked[s.OptionIndex] = true
		}
	}

	for i, option := range options {
		if marked[i] != option.IsCorrect {
			return false
		}
	}
	return true
}

// gradeTrueFalse 每条陈述的判断都必须正确，
// 未作答的陈述视为判“假”，与选择题的未勾选规则一致
func gradeTrueFalse(statements []model.TrueFalseStatement, responses []model.TrueFalseResponse) bool {
	marked := make(map[int]bool, len(responses))
	for _, r := range responses {
		marked[r.StatementIndex] = r.MarkedTrue
	}

	for i, statement := range statements {
		if marked[i] != statement.IsTrue {
			return false
		}
	}
	return true
}

// gradeShortAnswer 默认忽略大小写和首尾空白；
// 开启部分匹配时，学员答案与标准答案互相包含即算正确
func gradeShortAnswer(key *model.ShortAnswerKey, response string) bool {
	given := strings.TrimSpace(response)
	expected := strings.TrimSpace(key.CorrectAnswer)

	if !key.CaseSensitive {
		given = strings.ToLower(given)
		expected = strings.ToLower(expected)
	}

	if given == "" || expected == "" {
		return given == expected
	}

	if given == expected {
		return true
	}

	if key.AllowPartialMatch {
		return strings.Contains(given, expected) || strings.Contains(expected, given)
	}
	return false
}
