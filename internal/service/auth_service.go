package service

import (
	"academy_backend/internal/access"
	"academy_backend/internal/config"
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo    *repository.UserRepository
	AccountRepo *repository.AccountRepository
	Email       *EmailService
	Cfg         *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, accountRepo *repository.AccountRepository, email *EmailService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		AccountRepo: accountRepo,
		Email:       email,
		Cfg:         cfg,
	}
}

// RegisterStaff 创建后台员工，只有超级管理员可调用
func (s *AuthService) RegisterStaff(user *model.User, roles []model.StaffRole) error {
	for _, role := range roles {
		if !model.IsValidStaffRole(role) {
			return util.ErrInvalidRole
		}
	}

	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	if err := user.SetRoles(roles); err != nil {
		return err
	}

	createErr := s.UserRepo.Create(user)
	if createErr != nil {
		return createErr
	}

	// 管理层账号同时开通学员身份，方便验收课程内容
	if hasManagerRole(roles) {
		account := &model.Account{
			Email:        user.Email,
			Password:     user.Password,
			FullName:     user.Name,
			FieldOfWork:  model.FieldManagement,
			AgreeToTerms: true,
			Status:       model.AccountActive,
		}
		if _, err := s.AccountRepo.FindByEmail(user.Email); errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.AccountRepo.Create(account); err != nil {
				logger.Log.Warn("failed to provision client account for staff",
					zap.String("email", user.Email), zap.Error(err))
			}
		}
	}
	return nil
}

func hasManagerRole(roles []model.StaffRole) bool {
	for _, r := range roles {
		if r == model.RoleSuperAdmin || r == model.RoleManager {
			return true
		}
	}
	return false
}

func (s *AuthService) LoginStaff(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if user.Disabled {
		return "", nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := util.GenerateStaffJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	return token, user, err
}

// RegisterClient 学员自助注册，注册成功后发送欢迎邮件
func (s *AuthService) RegisterClient(account *model.Account) error {
	if !account.AgreeToTerms {
		return errors.New("必须同意服务条款")
	}

	_, err := s.AccountRepo.FindByEmail(account.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account.Password = string(hashedPassword)
	if account.Status == "" {
		account.Status = model.AccountActive
	}

	if err := s.AccountRepo.Create(account); err != nil {
		return err
	}

	if s.Email != nil {
		go s.Email.SendWelcomeEmail(account.Email, account.FullName)
	}
	return nil
}

func (s *AuthService) LoginClient(email, password string) (string, *model.Account, error) {
	account, err := s.AccountRepo.FindByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if account.Status == model.AccountCancelled {
		return "", nil, errors.New("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := s.AccountRepo.UpdateLastLogin(account.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("account_id", account.ID), zap.Error(err))
	}

	token, err := util.GenerateClientJWT(account, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	return token, account, err
}

func (s *AuthService) GetCurrentStaff(c *gin.Context) *model.User {
	actor := util.GetActorFromContext(c)
	if actor == nil || actor.Kind != access.KindStaff {
		return nil
	}

	user, err := s.UserRepo.FindByID(actor.ID)
	if err != nil {
		return nil
	}
	return user
}

func (s *AuthService) GetCurrentClient(c *gin.Context) *model.Account {
	actor := util.GetActorFromContext(c)
	if actor == nil || actor.Kind != access.KindClient {
		return nil
	}

	account, err := s.AccountRepo.FindByID(actor.ID)
	if err != nil {
		return nil
	}
	return account
}
