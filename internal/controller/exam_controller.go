package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// ExamQuestionRequest 题目请求体。Options 按题型传入对应的答案键结构
type ExamQuestionRequest struct {
	ID           uint            `json:"id"`
	QuestionText string          `json:"questionText" binding:"required"`
	QuestionType string          `json:"questionType" binding:"required,oneof=multiple-choice true-false short-answer"`
	Points       int             `json:"points"`
	Order        int             `json:"order"`
	Options      json.RawMessage `json:"options" binding:"required"`
	Explanation  string          `json:"explanation"`
}

// ExamRequest 创建/更新考试请求
// swagger:model ExamRequest
type ExamRequest struct {
	Title              string                `json:"title" binding:"required"`
	Description        string                `json:"description"`
	TimeLimit          int                   `json:"timeLimit"`
	PassingScore       float64               `json:"passingScore"`
	RandomizeQuestions bool                  `json:"randomizeQuestions"`
	ShowResults        bool                  `json:"showResults"`
	AllowRetakes       bool                  `json:"allowRetakes"`
	MaxAttempts        int                   `json:"maxAttempts"`
	Status             string                `json:"status"`
	Questions          []ExamQuestionRequest `json:"questions"`
}

func (req *ExamRequest) apply(exam *model.Exam) {
	exam.Title = req.Title
	exam.Description = req.Description
	if req.TimeLimit > 0 {
		exam.TimeLimit = req.TimeLimit
	}
	if req.PassingScore > 0 {
		exam.PassingScore = req.PassingScore
	}
	exam.RandomizeQuestions = req.RandomizeQuestions
	exam.ShowResults = req.ShowResults
	exam.AllowRetakes = req.AllowRetakes
	if req.MaxAttempts > 0 {
		exam.MaxAttempts = req.MaxAttempts
	}
	if req.Status != "" {
		exam.Status = model.ExamStatus(req.Status)
	}

	questions := make([]model.ExamQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		question := model.ExamQuestion{
			QuestionText: q.QuestionText,
			QuestionType: model.QuestionType(q.QuestionType),
			Points:       points,
			Order:        q.Order,
			Options:      q.Options,
			Explanation:  q.Explanation,
		}
		question.ID = q.ID
		questions = append(questions, question)
	}
	exam.Questions = questions
}

// Create godoc
// @Summary 创建考试
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ExamRequest true "考试信息"
// @Success 201 {object} util.Response{data=model.Exam}
// @Failure 400 {object} util.Response "选择题缺少正确选项"
// @Router /api/admin/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	var req ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam := &model.Exam{}
	req.apply(exam)

	actor := util.GetActorFromContext(ctx)
	if err := c.ExamService.Create(exam, actor.ID); err != nil {
		if errors.Is(err, util.ErrQuestionNeedsCorrect) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, exam)
}

// Get godoc
// @Summary 考试详情（管理端，含答案键）
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response
// @Router /api/admin/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	exam, err := c.ExamService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}

// GetForTaking godoc
// @Summary 开考视图（剥离答案键）
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "考试ID"
// @Success 200 {object} util.Response{data=model.Exam}
// @Failure 404 {object} util.Response "考试不存在或未发布"
// @Router /api/exams/{id} [get]
func (c *ExamController) GetForTaking(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	exam, err := c.ExamService.GetForTaking(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) || errors.Is(err, util.ErrExamNotPublished) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}

// List godoc
// @Summary 考试列表
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "状态筛选"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	status := model.ExamStatus(ctx.Query("status"))

	exams, total, err := c.ExamService.List(status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: exams, Total: total, Page: page, Limit: limit})
}

// Update godoc
// @Summary 更新考试
// @Description 保留题目ID的题目原样更新，避免已有提交的题目引用失效
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "考试ID"
// @Param   body body ExamRequest true "考试信息"
// @Success 200 {object} util.Response{data=model.Exam}
// @Router /api/admin/exams/{id} [put]
func (c *ExamController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	exam, err := c.ExamService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	req.apply(exam)

	if err := c.ExamService.Update(exam); err != nil {
		if errors.Is(err, util.ErrQuestionNeedsCorrect) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, exam)
}

// Delete godoc
// @Summary 删除考试
// @Tags 考试
// @Security BearerAuth
// @Param   id path int true "考试ID"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	if err := c.ExamService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
