package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// StaffRegisterRequest 员工注册请求
// swagger:model StaffRegisterRequest
type StaffRegisterRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Roles    []string `json:"roles" binding:"required,min=1"`
}

// RegisterStaff godoc
// @Summary 创建后台员工
// @Description 超级管理员为团队成员开通后台账号并分配角色
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body StaffRegisterRequest true "员工信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/admin/staff [post]
func (c *AuthController) RegisterStaff(ctx *gin.Context) {
	var req StaffRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roles := make([]model.StaffRole, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, model.StaffRole(r))
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := c.AuthService.RegisterStaff(user, roles); err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered):
			util.Error(ctx, 409, "该邮箱已被注册")
		case errors.Is(err, util.ErrInvalidRole):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginStaff godoc
// @Summary 员工登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 401 {object} util.Response "凭证无效"
// @Router /api/admin/login [post]
func (c *AuthController) LoginStaff(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.LoginStaff(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, err.Error())
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"roles": user.DecodeRoles(),
		},
	})
}

// ClientRegisterRequest 学员注册请求
// swagger:model ClientRegisterRequest
type ClientRegisterRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	FullName         string `json:"fullName" binding:"required"`
	Phone            string `json:"phone"`
	FieldOfWork      string `json:"fieldOfWork"`
	AgreeToTerms     bool   `json:"agreeToTerms"`
	MarketingConsent bool   `json:"marketingConsent"`
}

// RegisterClient godoc
// @Summary 学员注册
// @Description 学员自助注册，注册成功后发送欢迎邮件
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body ClientRegisterRequest true "注册信息"
// @Success 201 {object} util.Response{data=object} "注册成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/register [post]
func (c *AuthController) RegisterClient(ctx *gin.Context) {
	var req ClientRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	account := &model.Account{
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
		Phone:            req.Phone,
		FieldOfWork:      model.FieldOfWork(req.FieldOfWork),
		AgreeToTerms:     req.AgreeToTerms,
		MarketingConsent: req.MarketingConsent,
	}

	if err := c.AuthService.RegisterClient(account); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "该邮箱已被注册")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, gin.H{"id": account.ID})
}

// LoginClient godoc
// @Summary 学员登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 401 {object} util.Response "凭证无效"
// @Router /api/login [post]
func (c *AuthController) LoginClient(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, account, err := c.AuthService.LoginClient(req.Email, req.Password)
	if err != nil {
		util.Error(ctx, 401, err.Error())
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"account": gin.H{
			"id":       account.ID,
			"email":    account.Email,
			"fullName": account.FullName,
		},
	})
}

// Me godoc
// @Summary 当前登录主体
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	if staff := c.AuthService.GetCurrentStaff(ctx); staff != nil {
		util.Success(ctx, gin.H{
			"kind":  "staff",
			"id":    staff.ID,
			"name":  staff.Name,
			"email": staff.Email,
			"roles": staff.DecodeRoles(),
		})
		return
	}

	if account := c.AuthService.GetCurrentClient(ctx); account != nil {
		util.Success(ctx, gin.H{
			"kind":     "client",
			"id":       account.ID,
			"email":    account.Email,
			"fullName": account.FullName,
		})
		return
	}

	util.Unauthorized(ctx)
}
