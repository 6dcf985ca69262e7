package repository

import (
	"academy_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) Create(account *model.Account) error {
	return r.DB.Create(account).Error
}

func (r *AccountRepository) FindByID(id uint) (*model.Account, error) {
	var account model.Account
	err := r.DB.First(&account, id).Error
	return &account, err
}

func (r *AccountRepository) FindByEmail(email string) (*model.Account, error) {
	var account model.Account
	err := r.DB.Where("email = ?", email).First(&account).Error
	return &account, err
}

func (r *AccountRepository) FindAll(page, pageSize int) ([]model.Account, int64, error) {
	var accounts []model.Account
	var total int64

	if err := r.DB.Model(&model.Account{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&accounts).Error
	return accounts, total, err
}

func (r *AccountRepository) Update(account *model.Account) error {
	return r.DB.Save(account).Error
}

func (r *AccountRepository) UpdateLastLogin(accountID uint) error {
	return r.DB.Model(&model.Account{}).
		Where("id = ?", accountID).
		Update("last_login", time.Now()).
		Error
}

func (r *AccountRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Account{}, id).Error
}
