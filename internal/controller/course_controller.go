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

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary 课程列表
// @Description 内部员工可按状态筛选，其他访问者只看到已发布课程
// @Tags 课程
// @Produce  json
// @Param   state query string false "课程状态（仅内部员工有效）"
// @Param   categoryId query int false "分类ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	actor := util.GetActorFromContext(ctx)
	state := model.CourseState(ctx.Query("state"))
	categoryID := util.MustParseUint(ctx.Query("categoryId"))

	courses, total, err := c.CourseService.List(actor, state, categoryID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 课程详情
// @Description 按访问者身份返回不同级别的内容：匿名只见目录，
// @Description 已登录未报名可见公开章节，已报名学员和内部员工可见全部
// @Tags 课程
// @Produce  json
// @Param   urlName path string true "课程短链名"
// @Success 200 {object} util.Response{data=service.CourseView}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{urlName} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	actor := util.GetActorFromContext(ctx)

	view, err := c.CourseService.GetView(ctx.Param("urlName"), actor)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}

// CourseRequest 创建/更新课程请求
// swagger:model CourseRequest
type CourseRequest struct {
	Title          string                   `json:"title" binding:"required"`
	URLName        string                   `json:"urlName"`
	State          string                   `json:"state"`
	Description    json.RawMessage          `json:"description"`
	CoverPhotoURL  string                   `json:"coverPhotoUrl"`
	PreviewVideoID uint                     `json:"previewVideoId"`
	EnrollmentType string                   `json:"enrollmentType"`
	IsPaid         string                   `json:"isPaid"`
	Price          float64                  `json:"price"`
	CategoryID     uint                     `json:"categoryId"`
	InstructorID   uint                     `json:"instructorId"`
	Sections       []model.CourseSection    `json:"sections"`
	ExamConfigs    []model.CourseExamConfig `json:"examConfigs"`
}

func (req *CourseRequest) apply(course *model.Course) error {
	course.Title = req.Title
	if req.URLName != "" {
		course.URLName = util.Slugify(req.URLName)
	}
	if req.State != "" {
		course.State = model.CourseState(req.State)
	}
	course.Description = req.Description
	course.CoverPhotoURL = req.CoverPhotoURL
	course.PreviewVideoID = req.PreviewVideoID
	if req.EnrollmentType != "" {
		course.EnrollmentType = model.EnrollmentType(req.EnrollmentType)
	}
	if req.IsPaid != "" {
		course.IsPaid = model.PricingMode(req.IsPaid)
	}
	course.Price = req.Price
	course.CategoryID = req.CategoryID
	course.InstructorID = req.InstructorID
	if req.Sections != nil {
		if err := course.SetSections(req.Sections); err != nil {
			return err
		}
	}
	if req.ExamConfigs != nil {
		if err := course.SetExamConfigs(req.ExamConfigs); err != nil {
			return err
		}
	}
	return nil
}

// Create godoc
// @Summary 创建课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{}
	if err := req.apply(course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	actor := util.GetActorFromContext(ctx)
	if err := c.CourseService.Create(course, actor.ID); err != nil {
		if errors.Is(err, util.ErrPriceRequired) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := req.apply(course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.Update(course); err != nil {
		if errors.Is(err, util.ErrPriceRequired) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
