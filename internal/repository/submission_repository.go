package repository

import (
	"academy_backend/internal/access"
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.ExamSubmission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.ExamSubmission, error) {
	var s model.ExamSubmission
	err := r.DB.Preload("Client").First(&s, id).Error
	return &s, err
}

// FindScoped 按授权结果过滤答卷（行级范围归属当前访问者）
func (r *SubmissionRepository) FindScoped(d access.Decision, a *access.Actor) ([]model.ExamSubmission, error) {
	var list []model.ExamSubmission
	q := d.Apply(r.DB.Model(&model.ExamSubmission{}), a)
	err := q.Order("submission_date DESC").Find(&list).Error
	return list, err
}

func (r *SubmissionRepository) FindAll(examID, courseID uint, status model.SubmissionStatus, page, pageSize int) ([]model.ExamSubmission, int64, error) {
	var list []model.ExamSubmission
	var total int64

	query := r.DB.Model(&model.ExamSubmission{})
	if examID != 0 {
		query = query.Where("exam_id = ?", examID)
	}
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Client").
		Order("submission_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error
	return list, total, err
}

// CountAttempts 统计学员在某场考试下的提交次数
func (r *SubmissionRepository) CountAttempts(clientID, examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamSubmission{}).
		Where("client_id = ? AND exam_id = ?", clientID, examID).
		Count(&count).Error
	return count, err
}

// FindPending 拉取待判分的提交，供后台定时任务重试
func (r *SubmissionRepository) FindPending(limit int) ([]model.ExamSubmission, error) {
	var list []model.ExamSubmission
	err := r.DB.Where("status = ?", model.SubmissionPending).
		Order("submission_date ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *SubmissionRepository) Update(s *model.ExamSubmission) error {
	return r.DB.Save(s).Error
}

func (r *SubmissionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ExamSubmission{}, id).Error
}
