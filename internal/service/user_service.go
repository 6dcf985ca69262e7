package service

import (
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 后台员工与学员账号管理
type UserService struct {
	UserRepo    *repository.UserRepository
	AccountRepo *repository.AccountRepository
}

func NewUserService(userRepo *repository.UserRepository, accountRepo *repository.AccountRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		AccountRepo: accountRepo,
	}
}

func (s *UserService) ListStaff(page, pageSize int) ([]model.User, int64, error) {
	return s.UserRepo.FindAll(page, pageSize)
}

func (s *UserService) GetStaff(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

// UpdateStaffRoles 全量替换角色集合
func (s *UserService) UpdateStaffRoles(id uint, roles []model.StaffRole) (*model.User, error) {
	for _, role := range roles {
		if !model.IsValidStaffRole(role) {
			return nil, util.ErrInvalidRole
		}
	}

	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := user.SetRoles(roles); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetStaffDisabled(id uint, disabled bool) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	user.Disabled = disabled
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteStaff(id uint) error {
	return s.UserRepo.Delete(id)
}

func (s *UserService) ListAccounts(page, pageSize int) ([]model.Account, int64, error) {
	return s.AccountRepo.FindAll(page, pageSize)
}

func (s *UserService) GetAccount(id uint) (*model.Account, error) {
	account, err := s.AccountRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAccountNotFound
	}
	return account, err
}

// UpdateAccountProfile 学员更新个人资料，邮箱和状态不在此处修改
func (s *UserService) UpdateAccountProfile(id uint, fullName, phone string, fieldOfWork model.FieldOfWork, marketingConsent *bool) (*model.Account, error) {
	account, err := s.GetAccount(id)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		account.FullName = fullName
	}
	if phone != "" {
		account.Phone = phone
	}
	if fieldOfWork != "" {
		account.FieldOfWork = fieldOfWork
	}
	if marketingConsent != nil {
		account.MarketingConsent = *marketingConsent
	}

	if err := s.AccountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *UserService) ChangeAccountPassword(id uint, oldPassword, newPassword string) error {
	account, err := s.GetAccount(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(oldPassword)); err != nil {
		return errors.New("原密码不正确")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.Password = string(hashed)
	return s.AccountRepo.Update(account)
}

func (s *UserService) SetAccountStatus(id uint, status model.AccountStatus) (*model.Account, error) {
	account, err := s.GetAccount(id)
	if err != nil {
		return nil, err
	}
	account.Status = status
	if err := s.AccountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *UserService) DeleteAccount(id uint) error {
	return s.AccountRepo.Delete(id)
}
