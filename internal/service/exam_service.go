package service

import (
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo *repository.ExamRepository
}

func NewExamService(examRepo *repository.ExamRepository) *ExamService {
	return &ExamService{ExamRepo: examRepo}
}

// validateQuestions 选择题必须至少有一个正确选项，否则没人能得分
func validateQuestions(questions []model.ExamQuestion) error {
	for i := range questions {
		q := &questions[i]
		if q.QuestionType != model.QuestionMultipleChoice {
			continue
		}
		options, err := q.DecodeChoiceOptions()
		if err != nil {
			return err
		}
		hasCorrect := false
		for _, opt := range options {
			if opt.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return util.ErrQuestionNeedsCorrect
		}
	}
	return nil
}

func (s *ExamService) Create(exam *model.Exam, createdBy uint) error {
	if err := validateQuestions(exam.Questions); err != nil {
		return err
	}

	if exam.Status == "" {
		exam.Status = model.ExamDraft
	}
	exam.CreatedByID = createdBy
	return s.ExamRepo.Create(exam)
}

func (s *ExamService) GetByID(id uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	return exam, err
}

// GetForTaking 学员开考视图：只返回已发布考试，且剥离答案键
func (s *ExamService) GetForTaking(id uint) (*model.Exam, error) {
	exam, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamPublished {
		return nil, util.ErrExamNotPublished
	}
	return stripAnswerKeys(exam)
}

// stripAnswerKeys 返回去除答案键的考试副本，原对象不变
func stripAnswerKeys(exam *model.Exam) (*model.Exam, error) {
	stripped := *exam
	stripped.Questions = make([]model.ExamQuestion, len(exam.Questions))
	for i, q := range exam.Questions {
		sq := q
		switch q.QuestionType {
		case model.QuestionMultipleChoice:
			options, err := q.DecodeChoiceOptions()
			if err != nil {
				return nil, err
			}
			for j := range options {
				options[j].IsCorrect = false
			}
			if err := setOptions(&sq, options); err != nil {
				return nil, err
			}
		case model.QuestionTrueFalse:
			statements, err := q.DecodeStatements()
			if err != nil {
				return nil, err
			}
			for j := range statements {
				statements[j].IsTrue = false
			}
			if err := setOptions(&sq, statements); err != nil {
				return nil, err
			}
		case model.QuestionShortAnswer:
			sq.Options = nil
		}
		sq.Explanation = ""
		stripped.Questions[i] = sq
	}
	return &stripped, nil
}

func (s *ExamService) List(status model.ExamStatus, page, pageSize int) ([]model.Exam, int64, error) {
	return s.ExamRepo.FindAll(status, page, pageSize)
}

func (s *ExamService) Update(exam *model.Exam) error {
	if err := validateQuestions(exam.Questions); err != nil {
		return err
	}

	questions := exam.Questions
	exam.Questions = nil
	if err := s.ExamRepo.Update(exam); err != nil {
		return err
	}
	if questions != nil {
		if err := s.ExamRepo.ReplaceQuestions(exam.ID, questions); err != nil {
			return err
		}
	}
	exam.Questions = questions
	return nil
}

func (s *ExamService) Delete(id uint) error {
	return s.ExamRepo.Delete(id)
}

func setOptions(q *model.ExamQuestion, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	q.Options = raw
	return nil
}
