package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ListStaff godoc
// @Summary 员工列表
// @Tags 账号管理
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/staff [get]
func (c *UserController) ListStaff(ctx *gin.Context) {
	page, limit := pagination(ctx)
	list, total, err := c.UserService.ListStaff(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

type StaffRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// UpdateStaffRoles godoc
// @Summary 调整员工角色
// @Tags 账号管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "员工ID"
// @Param   body body StaffRolesRequest true "角色集合"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "未知角色"
// @Router /api/admin/staff/{id}/roles [put]
func (c *UserController) UpdateStaffRoles(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid staff id")
		return
	}

	var req StaffRolesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roles := make([]model.StaffRole, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, model.StaffRole(r))
	}

	user, err := c.UserService.UpdateStaffRoles(uint(id), roles)
	if err != nil {
		if errors.Is(err, util.ErrInvalidRole) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.NotFound(ctx)
		}
		return
	}
	util.Success(ctx, user)
}

type DisableRequest struct {
	Disabled bool `json:"disabled"`
}

// SetStaffDisabled godoc
// @Summary 停用/启用员工账号
// @Tags 账号管理
// @Security BearerAuth
// @Param   id path int true "员工ID"
// @Param   body body DisableRequest true "停用标记"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/admin/staff/{id}/disabled [put]
func (c *UserController) SetStaffDisabled(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid staff id")
		return
	}

	var req DisableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetStaffDisabled(uint(id), req.Disabled)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

// DeleteStaff godoc
// @Summary 删除员工账号
// @Tags 账号管理
// @Security BearerAuth
// @Param   id path int true "员工ID"
// @Success 200 {object} util.Response
// @Router /api/admin/staff/{id} [delete]
func (c *UserController) DeleteStaff(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid staff id")
		return
	}
	if err := c.UserService.DeleteStaff(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListAccounts godoc
// @Summary 学员账号列表
// @Tags 账号管理
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/accounts [get]
func (c *UserController) ListAccounts(ctx *gin.Context) {
	page, limit := pagination(ctx)
	list, total, err := c.UserService.ListAccounts(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// ProfileRequest 学员资料更新
type ProfileRequest struct {
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	FieldOfWork      string `json:"fieldOfWork"`
	MarketingConsent *bool  `json:"marketingConsent"`
}

// UpdateOwnProfile godoc
// @Summary 更新个人资料
// @Tags 账号管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.Account}
// @Router /api/profile [put]
func (c *UserController) UpdateOwnProfile(ctx *gin.Context) {
	var req ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetActorFromContext(ctx)
	account, err := c.UserService.UpdateAccountProfile(actor.ID, req.FullName, req.Phone,
		model.FieldOfWork(req.FieldOfWork), req.MarketingConsent)
	if err != nil {
		if errors.Is(err, util.ErrAccountNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, account)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangeOwnPassword godoc
// @Summary 修改密码
// @Tags 账号管理
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ChangePasswordRequest true "新旧密码"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "原密码不正确"
// @Router /api/profile/password [put]
func (c *UserController) ChangeOwnPassword(ctx *gin.Context) {
	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetActorFromContext(ctx)
	if err := c.UserService.ChangeAccountPassword(actor.ID, req.OldPassword, req.NewPassword); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

type AccountStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active pending completed cancelled"`
}

// SetAccountStatus godoc
// @Summary 调整学员账号状态
// @Tags 账号管理
// @Security BearerAuth
// @Param   id path int true "账号ID"
// @Param   body body AccountStatusRequest true "状态"
// @Success 200 {object} util.Response{data=model.Account}
// @Router /api/admin/accounts/{id}/status [put]
func (c *UserController) SetAccountStatus(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid account id")
		return
	}

	var req AccountStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	account, err := c.UserService.SetAccountStatus(uint(id), model.AccountStatus(req.Status))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, account)
}

// DeleteAccount godoc
// @Summary 删除学员账号
// @Tags 账号管理
// @Security BearerAuth
// @Param   id path int true "账号ID"
// @Success 200 {object} util.Response
// @Router /api/admin/accounts/{id} [delete]
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid account id")
		return
	}
	if err := c.UserService.DeleteAccount(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
