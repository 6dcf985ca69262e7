package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(review *model.CourseReview) error {
	return r.DB.Create(review).Error
}

func (r *ReviewRepository) FindByID(id uint) (*model.CourseReview, error) {
	var review model.CourseReview
	err := r.DB.First(&review, id).Error
	return &review, err
}

func (r *ReviewRepository) FindByCourse(courseID uint) (*model.CourseReview, error) {
	var review model.CourseReview
	err := r.DB.Where("course_id = ?", courseID).First(&review).Error
	return &review, err
}

func (r *ReviewRepository) FindAll(page, pageSize int) ([]model.CourseReview, int64, error) {
	var reviews []model.CourseReview
	var total int64

	if err := r.DB.Model(&model.CourseReview{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) Update(review *model.CourseReview) error {
	return r.DB.Save(review).Error
}

func (r *ReviewRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CourseReview{}, id).Error
}
