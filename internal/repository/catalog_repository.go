package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

// CategoryRepository 课程分类
type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, id).Error
	return &category, err
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("title ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Category{}, id).Error
}

// InstructorRepository 讲师
type InstructorRepository struct {
	DB *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{DB: db}
}

func (r *InstructorRepository) Create(instructor *model.Instructor) error {
	return r.DB.Create(instructor).Error
}

func (r *InstructorRepository) FindByID(id uint) (*model.Instructor, error) {
	var instructor model.Instructor
	err := r.DB.First(&instructor, id).Error
	return &instructor, err
}

func (r *InstructorRepository) FindAll(page, pageSize int) ([]model.Instructor, int64, error) {
	var instructors []model.Instructor
	var total int64

	if err := r.DB.Model(&model.Instructor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&instructors).Error
	return instructors, total, err
}

func (r *InstructorRepository) Update(instructor *model.Instructor) error {
	return r.DB.Save(instructor).Error
}

func (r *InstructorRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Instructor{}, id).Error
}
