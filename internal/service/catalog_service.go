package service

import (
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"errors"

	"gorm.io/gorm"
)

// CatalogService 课程分类与讲师目录
type CatalogService struct {
	CategoryRepo   *repository.CategoryRepository
	InstructorRepo *repository.InstructorRepository
	CourseRepo     *repository.CourseRepository
}

func NewCatalogService(categoryRepo *repository.CategoryRepository, instructorRepo *repository.InstructorRepository, courseRepo *repository.CourseRepository) *CatalogService {
	return &CatalogService{
		CategoryRepo:   categoryRepo,
		InstructorRepo: instructorRepo,
		CourseRepo:     courseRepo,
	}
}

func (s *CatalogService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

func (s *CatalogService) CreateCategory(category *model.Category) error {
	return s.CategoryRepo.Create(category)
}

func (s *CatalogService) UpdateCategory(category *model.Category) error {
	return s.CategoryRepo.Update(category)
}

func (s *CatalogService) DeleteCategory(id uint) error {
	return s.CategoryRepo.Delete(id)
}

func (s *CatalogService) ListInstructors(page, pageSize int) ([]model.Instructor, int64, error) {
	return s.InstructorRepo.FindAll(page, pageSize)
}

func (s *CatalogService) GetInstructor(id uint) (*model.Instructor, error) {
	return s.InstructorRepo.FindByID(id)
}

func (s *CatalogService) CreateInstructor(instructor *model.Instructor, createdBy uint) error {
	instructor.CreatedByID = createdBy
	return s.InstructorRepo.Create(instructor)
}

func (s *CatalogService) UpdateInstructor(instructor *model.Instructor) error {
	return s.InstructorRepo.Update(instructor)
}

// DeleteInstructor 讲师被课程引用时拒绝删除
func (s *CatalogService) DeleteInstructor(id uint) error {
	count, err := s.CourseRepo.CountByInstructor(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("讲师仍被课程引用，无法删除")
	}

	if _, err := s.InstructorRepo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.InstructorRepo.Delete(id)
}
