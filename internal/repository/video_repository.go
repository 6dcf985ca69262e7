package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) Create(video *model.Video) error {
	return r.DB.Create(video).Error
}

func (r *VideoRepository) FindByID(id uint) (*model.Video, error) {
	var video model.Video
	err := r.DB.First(&video, id).Error
	return &video, err
}

func (r *VideoRepository) FindAll(status model.ProcessingStatus, page, pageSize int) ([]model.Video, int64, error) {
	var videos []model.Video
	var total int64

	query := r.DB.Model(&model.Video{})
	if status != "" {
		query = query.Where("processing_status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&videos).Error
	return videos, total, err
}

func (r *VideoRepository) Update(video *model.Video) error {
	return r.DB.Save(video).Error
}

// UpdateStatus 只更新处理状态及相关产物字段
func (r *VideoRepository) UpdateStatus(id uint, status model.ProcessingStatus, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["processing_status"] = status
	return r.DB.Model(&model.Video{}).Where("id = ?", id).Updates(updates).Error
}

func (r *VideoRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Video{}, id).Error
}
