package controller

import (
	"academy_backend/internal/access"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

type CommentRequest struct {
	CourseID   uint   `json:"courseId" binding:"required"`
	LessonPath string `json:"lessonPath" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// Post godoc
// @Summary 发表课时评论
// @Description 仅限已报名学员，评论进入待审核状态
// @Tags 评论
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 403 {object} util.Response "未报名该课程"
// @Router /api/comments [post]
func (c *CommentController) Post(ctx *gin.Context) {
	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetActorFromContext(ctx)
	comment, err := c.CommentService.Post(actor.ID, req.CourseID, req.LessonPath, req.Content)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.Error(ctx, 403, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// ListForLesson godoc
// @Summary 课时评论列表
// @Description 内部员工可见全部，学员和访客只见已审核的
// @Tags 评论
// @Produce  json
// @Param   courseId query int true "课程ID"
// @Param   lessonPath query string true "课时路径"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/comments [get]
func (c *CommentController) ListForLesson(ctx *gin.Context) {
	page, limit := pagination(ctx)
	courseID := util.MustParseUint(ctx.Query("courseId"))
	lessonPath := ctx.Query("lessonPath")
	if courseID == 0 || lessonPath == "" {
		util.BadRequest(ctx, "courseId and lessonPath are required")
		return
	}

	actor := util.GetActorFromContext(ctx)
	list, total, err := c.CommentService.ListForLesson(courseID, lessonPath, access.IsInternal(actor), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// ListPending godoc
// @Summary 待审核评论
// @Tags 评论
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/comments/pending [get]
func (c *CommentController) ListPending(ctx *gin.Context) {
	page, limit := pagination(ctx)
	list, total, err := c.CommentService.ListPending(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// Approve godoc
// @Summary 审核通过评论
// @Tags 评论
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "评论ID"
// @Success 200 {object} util.Response{data=model.Comment}
// @Router /api/admin/comments/{id}/approve [post]
func (c *CommentController) Approve(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid comment id")
		return
	}

	comment, err := c.CommentService.Approve(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, comment)
}

// Delete godoc
// @Summary 删除评论
// @Description 学员只能删除自己的评论，内部员工可删除任意评论
// @Tags 评论
// @Security BearerAuth
// @Param   id path int true "评论ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "非本人评论"
// @Router /api/comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid comment id")
		return
	}

	actor := util.GetActorFromContext(ctx)
	d := access.Can(actor, access.Comments, access.Delete)
	if !d.Allowed {
		util.Forbidden(ctx)
		return
	}
	if d.OwnerColumn == "" {
		if err := c.CommentService.Delete(uint(id)); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, nil)
		return
	}

	if err := c.CommentService.DeleteOwn(actor.ID, uint(id)); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
		} else {
			util.NotFound(ctx)
		}
		return
	}
	util.Success(ctx, nil)
}
