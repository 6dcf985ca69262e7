package model

import (
	"encoding/json"
	"time"
)

type SubmissionStatus string

const (
	SubmissionPending SubmissionStatus = "pending"
	SubmissionGraded  SubmissionStatus = "graded"
	SubmissionFailed  SubmissionStatus = "failed"
)

// ExamSubmission 单次考试作答。生命周期：pending -> graded|failed，
// 单向且只转移一次；判分后答案不可变，管理端仅可补充 Feedback。
// swagger:model ExamSubmission
type ExamSubmission struct {
	BaseModel
	ClientID       uint             `gorm:"index:idx_submission_client_exam;type:bigint unsigned;not null" json:"clientId"`
	Client         *Account         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	CourseID       uint             `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	ExamID         uint             `gorm:"index:idx_submission_client_exam;type:bigint unsigned;not null" json:"examId"`
	Answers        json.RawMessage  `gorm:"type:json" json:"answers"` // JSON: []SubmissionAnswer
	Score          float64          `json:"score"`
	SubmissionDate time.Time        `json:"submissionDate"`
	TimeSpent      int              `json:"timeSpent"` // 分钟
	Status         SubmissionStatus `gorm:"size:20;default:'pending'" json:"status"`
	Feedback       string           `gorm:"type:text" json:"feedback"`
}

func (ExamSubmission) TableName() string {
	return "exam_submissions"
}

// SubmissionAnswer 按稳定题目 ID 关联题目（而非数组下标，避免题目
// 增删/重排后错位）。判分结果写回 IsCorrect / PointsEarned。
type SubmissionAnswer struct {
	QuestionID          uint                `json:"questionId"`
	QuestionType        QuestionType        `json:"questionType"`
	SelectedOptions     []SelectedOption    `json:"selectedOptions,omitempty"`
	TrueFalseResponses  []TrueFalseResponse `json:"trueFalseResponses,omitempty"`
	ShortAnswerResponse string              `json:"shortAnswerResponse,omitempty"`
	IsCorrect           bool                `json:"isCorrect"`
	PointsEarned        int                 `json:"pointsEarned"`
}

type SelectedOption struct {
	OptionIndex int  `json:"optionIndex"`
	Selected    bool `json:"selected"`
}

type TrueFalseResponse struct {
	StatementIndex int  `json:"statementIndex"`
	MarkedTrue     bool `json:"markedTrue"`
}

func (s *ExamSubmission) DecodeAnswers() ([]SubmissionAnswer, error) {
	var answers []SubmissionAnswer
	if len(s.Answers) == 0 {
		return answers, nil
	}
	err := json.Unmarshal(s.Answers, &answers)
	return answers, err
}

func (s *ExamSubmission) SetAnswers(answers []SubmissionAnswer) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	s.Answers = raw
	return nil
}
