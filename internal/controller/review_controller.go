package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

type ReviewRequest struct {
	CourseID uint   `json:"courseId" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// Submit godoc
// @Summary 提交课程评价
// @Description 仅限已报名学员，重复提交覆盖旧评价，评价需审核后计入总分
// @Tags 评价
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ReviewRequest true "评价"
// @Success 200 {object} util.Response{data=model.CourseReview}
// @Failure 403 {object} util.Response "未报名该课程"
// @Router /api/reviews [post]
func (c *ReviewController) Submit(ctx *gin.Context) {
	var req ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetActorFromContext(ctx)
	doc, err := c.ReviewService.SubmitReview(actor.ID, req.CourseID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Error(ctx, 403, err.Error())
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidRating):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, doc)
}

// GetByCourse godoc
// @Summary 课程评价汇总
// @Tags 评价
// @Produce  json
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.CourseReview}
// @Failure 404 {object} util.Response
// @Router /api/reviews/{courseId} [get]
func (c *ReviewController) GetByCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	doc, err := c.ReviewService.GetByCourse(uint(courseID))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, doc)
}

type ModerateRequest struct {
	ClientID uint   `json:"clientId" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=approved rejected"`
}

// Moderate godoc
// @Summary 审核评价
// @Description 审核结果会触发课程总评分重算
// @Tags 评价
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "课程ID"
// @Param   body body ModerateRequest true "审核决定"
// @Success 200 {object} util.Response{data=model.CourseReview}
// @Router /api/admin/courses/{courseId}/reviews/moderate [post]
func (c *ReviewController) Moderate(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req ModerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.ReviewService.Moderate(uint(courseID), req.ClientID, model.ReviewStatus(req.Status))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, doc)
}

type HelpfulRequest struct {
	ClientID uint `json:"clientId" binding:"required"`
}

// MarkHelpful godoc
// @Summary 评价点赞
// @Tags 评价
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   courseId path int true "课程ID"
// @Param   body body HelpfulRequest true "被点赞的评价作者"
// @Success 200 {object} util.Response{data=model.CourseReview}
// @Router /api/reviews/{courseId}/helpful [post]
func (c *ReviewController) MarkHelpful(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var req HelpfulRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	doc, err := c.ReviewService.MarkHelpful(uint(courseID), req.ClientID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, doc)
}

// List godoc
// @Summary 全部课程评价文档
// @Tags 评价
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/reviews [get]
func (c *ReviewController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	list, total, err := c.ReviewService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}
