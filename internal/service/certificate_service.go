package service

import (
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
)

type CertificateService struct {
	CertificateRepo *repository.CertificateRepository
}

func NewCertificateService(certificateRepo *repository.CertificateRepository) *CertificateService {
	return &CertificateService{CertificateRepo: certificateRepo}
}

func (s *CertificateService) Create(cert *model.Certificate, createdBy uint) error {
	cert.SerialNo = model.GenerateUUID()
	cert.CreatedByID = createdBy
	return s.CertificateRepo.Create(cert)
}

func (s *CertificateService) GetByID(id uint) (*model.Certificate, error) {
	return s.CertificateRepo.FindByID(id)
}

func (s *CertificateService) List(page, pageSize int) ([]model.Certificate, int64, error) {
	return s.CertificateRepo.FindAll(page, pageSize)
}

func (s *CertificateService) Update(cert *model.Certificate) error {
	return s.CertificateRepo.Update(cert)
}

func (s *CertificateService) Delete(id uint) error {
	return s.CertificateRepo.Delete(id)
}
