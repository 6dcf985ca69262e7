package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByURLName(urlName string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").Where("url_name = ?", urlName).First(&course).Error
	return &course, err
}

// FindAll 按状态过滤分页查询，state为空时返回全部
func (r *CourseRepository) FindAll(state model.CourseState, categoryID uint, page, pageSize int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.Model(&model.Course{})
	if state != "" {
		query = query.Where("state = ?", state)
	}
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Instructor").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

// CountByInstructor 讲师被删除前检查引用
func (r *CourseRepository) CountByInstructor(instructorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("instructor_id = ?", instructorID).Count(&count).Error
	return count, err
}
