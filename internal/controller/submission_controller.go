package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitRequest 交卷请求，答案按题目ID关联
// swagger:model SubmitRequest
type SubmitRequest struct {
	CourseID  uint                     `json:"courseId" binding:"required"`
	ExamID    uint                     `json:"examId" binding:"required"`
	Answers   []model.SubmissionAnswer `json:"answers" binding:"required"`
	TimeSpent int                      `json:"timeSpent"`
}

// Submit godoc
// @Summary 交卷
// @Description 落库后立即自动判分，通过必修考试会联动更新报名完成状态
// @Tags 考试提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SubmitRequest true "答卷"
// @Success 201 {object} util.Response{data=model.ExamSubmission}
// @Failure 403 {object} util.Response "未报名该课程"
// @Failure 404 {object} util.Response "考试不存在或未发布"
// @Failure 429 {object} util.Response "超出答题次数限制"
// @Router /api/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetActorFromContext(ctx)
	submission, err := c.SubmissionService.Submit(actor.ID, req.CourseID, req.ExamID, req.Answers, req.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound), errors.Is(err, util.ErrExamNotPublished):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotEnrolled):
			util.Error(ctx, 403, err.Error())
		case errors.Is(err, util.ErrAttemptLimitReached):
			util.Error(ctx, 429, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, submission)
}

// ListOwn godoc
// @Summary 我的考试记录
// @Tags 考试提交
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ExamSubmission}
// @Router /api/submissions [get]
func (c *SubmissionController) ListOwn(ctx *gin.Context) {
	actor := util.GetActorFromContext(ctx)
	list, err := c.SubmissionService.ListOwn(actor)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// GetOwn godoc
// @Summary 提交详情
// @Tags 考试提交
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "提交ID"
// @Success 200 {object} util.Response{data=model.ExamSubmission}
// @Failure 403 {object} util.Response "非本人记录"
// @Router /api/submissions/{id} [get]
func (c *SubmissionController) GetOwn(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	actor := util.GetActorFromContext(ctx)
	submission, err := c.SubmissionService.GetOwn(actor.ID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrSubmissionNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// List godoc
// @Summary 提交记录管理列表
// @Tags 考试提交
// @Produce  json
// @Security BearerAuth
// @Param   examId query int false "按考试筛选"
// @Param   courseId query int false "按课程筛选"
// @Param   status query string false "状态筛选"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/submissions [get]
func (c *SubmissionController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	examID := util.MustParseUint(ctx.Query("examId"))
	courseID := util.MustParseUint(ctx.Query("courseId"))
	status := model.SubmissionStatus(ctx.Query("status"))

	list, total, err := c.SubmissionService.List(examID, courseID, status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// AddFeedback godoc
// @Summary 补充评语
// @Description 只更新评语，不改动分数和判分状态
// @Tags 考试提交
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "提交ID"
// @Param   body body FeedbackRequest true "评语"
// @Success 200 {object} util.Response{data=model.ExamSubmission}
// @Router /api/admin/submissions/{id}/feedback [post]
func (c *SubmissionController) AddFeedback(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	var req FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.AddFeedback(uint(id), req.Feedback)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}
