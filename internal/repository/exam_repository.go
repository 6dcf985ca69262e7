package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("exam_questions.`order` ASC")
	}).First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) FindAll(status model.ExamStatus, page, pageSize int) ([]model.Exam, int64, error) {
	var exams []model.Exam
	var total int64

	query := r.DB.Model(&model.Exam{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&exams).Error
	return exams, total, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

// ReplaceQuestions 整体替换试题，保留ID的题目原样更新，避免提交记录中的题目引用失效
func (r *ExamRepository) ReplaceQuestions(examID uint, questions []model.ExamQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		keepIDs := make([]uint, 0, len(questions))
		for i := range questions {
			questions[i].ExamID = examID
			if questions[i].ID != 0 {
				keepIDs = append(keepIDs, questions[i].ID)
			}
		}

		del := tx.Where("exam_id = ?", examID)
		if len(keepIDs) > 0 {
			del = del.Where("id NOT IN ?", keepIDs)
		}
		if err := del.Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}

		for i := range questions {
			if err := tx.Save(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExamRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, id).Error
	})
}
