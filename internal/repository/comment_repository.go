package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("Client").First(&comment, id).Error
	return &comment, err
}

// FindByLesson 查询某节课的评论，approvedOnly时只返回已审核的
func (r *CommentRepository) FindByLesson(courseID uint, lessonPath string, approvedOnly bool, page, pageSize int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.DB.Model(&model.Comment{}).
		Where("course_id = ? AND lesson_path = ?", courseID, lessonPath)
	if approvedOnly {
		query = query.Where("status = ?", model.CommentApproved)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Client").
		Order("posted_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepository) FindByStatus(status model.CommentStatus, page, pageSize int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.DB.Model(&model.Comment{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Client").
		Order("posted_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.DB.Save(comment).Error
}

func (r *CommentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Comment{}, id).Error
}
