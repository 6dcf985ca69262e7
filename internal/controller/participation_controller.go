package controller

import (
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ParticipationController struct {
	ParticipationService *service.ParticipationService
}

func NewParticipationController(participationService *service.ParticipationService) *ParticipationController {
	return &ParticipationController{ParticipationService: participationService}
}

type EnrollRequest struct {
	CourseID uint `json:"courseId" binding:"required"`
}

// Enroll godoc
// @Summary 报名课程
// @Description 免费公开课直接生效，付费课和私享课进入待处理状态
// @Tags 报名
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body EnrollRequest true "课程"
// @Success 201 {object} util.Response{data=model.Participation}
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "已报名"
// @Router /api/participations [post]
func (c *ParticipationController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetActorFromContext(ctx)
	p, err := c.ParticipationService.Enroll(actor.ID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, p)
}

// ListOwn godoc
// @Summary 我的报名记录
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Participation}
// @Router /api/participations [get]
func (c *ParticipationController) ListOwn(ctx *gin.Context) {
	actor := util.GetActorFromContext(ctx)
	list, err := c.ParticipationService.ListOwn(actor)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// GetOwn godoc
// @Summary 报名详情
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "报名ID"
// @Success 200 {object} util.Response{data=model.Participation}
// @Failure 403 {object} util.Response "非本人记录"
// @Router /api/participations/{id} [get]
func (c *ParticipationController) GetOwn(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid participation id")
		return
	}

	actor := util.GetActorFromContext(ctx)
	p, err := c.ParticipationService.GetOwn(actor.ID, uint(id))
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.NotFound(ctx)
		}
		return
	}
	util.Success(ctx, p)
}

// List godoc
// @Summary 报名记录管理列表
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   courseId query int false "按课程筛选"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/participations [get]
func (c *ParticipationController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	courseID := util.MustParseUint(ctx.Query("courseId"))

	list, total, err := c.ParticipationService.List(courseID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// ConfirmPayment godoc
// @Summary 确认收款
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "报名ID"
// @Success 200 {object} util.Response{data=model.Participation}
// @Router /api/admin/participations/{id}/payment [post]
func (c *ParticipationController) ConfirmPayment(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid participation id")
		return
	}

	p, err := c.ParticipationService.ConfirmPayment(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Approve godoc
// @Summary 审核通过私享课报名
// @Tags 报名
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "报名ID"
// @Success 200 {object} util.Response{data=model.Participation}
// @Router /api/admin/participations/{id}/approve [post]
func (c *ParticipationController) Approve(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid participation id")
		return
	}

	p, err := c.ParticipationService.Approve(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Delete godoc
// @Summary 删除报名记录
// @Tags 报名
// @Security BearerAuth
// @Param   id path int true "报名ID"
// @Success 200 {object} util.Response
// @Router /api/admin/participations/{id} [delete]
func (c *ParticipationController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid participation id")
		return
	}

	if err := c.ParticipationService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
