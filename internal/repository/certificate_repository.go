package repository

import (
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

func (r *CertificateRepository) FindByID(id uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.First(&cert, id).Error
	return &cert, err
}

func (r *CertificateRepository) FindAll(page, pageSize int) ([]model.Certificate, int64, error) {
	var certs []model.Certificate
	var total int64

	if err := r.DB.Model(&model.Certificate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&certs).Error
	return certs, total, err
}

func (r *CertificateRepository) Update(cert *model.Certificate) error {
	return r.DB.Save(cert).Error
}

func (r *CertificateRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Certificate{}, id).Error
}
