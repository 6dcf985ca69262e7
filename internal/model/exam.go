package model

import "encoding/json"

type ExamStatus string

const (
	ExamDraft     ExamStatus = "draft"
	ExamPublished ExamStatus = "published"
	ExamArchived  ExamStatus = "archived"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

// swagger:model Exam
type Exam struct {
	BaseModel
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	TimeLimit          int        `gorm:"default:60" json:"timeLimit"` // 分钟
	PassingScore       float64    `gorm:"default:70" json:"passingScore"`
	RandomizeQuestions bool       `gorm:"default:false" json:"randomizeQuestions"`
	ShowResults        bool       `gorm:"default:true" json:"showResults"`
	AllowRetakes       bool       `gorm:"default:false" json:"allowRetakes"`
	MaxAttempts        int        `gorm:"default:1" json:"maxAttempts"`
	Status             ExamStatus `gorm:"size:20;default:'draft'" json:"status"`
	CreatedByID        uint       `gorm:"index;type:bigint unsigned" json:"createdById"`

	Questions []ExamQuestion `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// ExamQuestion 考试题目。答案键按题型存入 Options JSON 列：
// multiple-choice -> []ChoiceOption，true-false -> []TrueFalseStatement，
// short-answer -> ShortAnswerKey。
// swagger:model ExamQuestion
type ExamQuestion struct {
	BaseModel
	ExamID       uint            `gorm:"index;type:bigint unsigned;not null" json:"examId"`
	QuestionText string          `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType    `gorm:"size:30;not null" json:"questionType"`
	Points       int             `gorm:"default:1" json:"points"`
	Order        int             `gorm:"default:0" json:"order"`
	Options      json.RawMessage `gorm:"type:json" json:"options"`
	Explanation  string          `gorm:"type:text" json:"explanation"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

type ChoiceOption struct {
	OptionText string `json:"optionText"`
	IsCorrect  bool   `json:"isCorrect"`
}

type TrueFalseStatement struct {
	StatementText string `json:"statementText"`
	IsTrue        bool   `json:"isTrue"`
}

type ShortAnswerKey struct {
	CorrectAnswer     string `json:"correctAnswer"`
	CaseSensitive     bool   `json:"caseSensitive"`
	AllowPartialMatch bool   `json:"allowPartialMatch"`
}

func (q *ExamQuestion) DecodeChoiceOptions() ([]ChoiceOption, error) {
	var opts []ChoiceOption
	err := json.Unmarshal(q.Options, &opts)
	return opts, err
}

func (q *ExamQuestion) DecodeStatements() ([]TrueFalseStatement, error) {
	var stmts []TrueFalseStatement
	err := json.Unmarshal(q.Options, &stmts)
	return stmts, err
}

func (q *ExamQuestion) DecodeShortAnswerKey() (*ShortAnswerKey, error) {
	var key ShortAnswerKey
	if err := json.Unmarshal(q.Options, &key); err != nil {
		return nil, err
	}
	return &key, nil
}
