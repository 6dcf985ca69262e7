package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListCategories godoc
// @Summary 课程分类列表
// @Tags 目录
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.CatalogService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

type CategoryRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateCategory godoc
// @Summary 创建分类
// @Tags 目录
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CategoryRequest true "分类信息"
// @Success 201 {object} util.Response{data=model.Category}
// @Router /api/admin/categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category := &model.Category{Title: req.Title}
	if err := c.CatalogService.CreateCategory(category); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// UpdateCategory godoc
// @Summary 更新分类
// @Tags 目录
// @Security BearerAuth
// @Param   id path int true "分类ID"
// @Param   body body CategoryRequest true "分类信息"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/admin/categories/{id} [put]
func (c *CatalogController) UpdateCategory(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category := &model.Category{Title: req.Title}
	category.ID = uint(id)
	if err := c.CatalogService.UpdateCategory(category); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除分类
// @Tags 目录
// @Security BearerAuth
// @Param   id path int true "分类ID"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id} [delete]
func (c *CatalogController) DeleteCategory(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}
	if err := c.CatalogService.DeleteCategory(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListInstructors godoc
// @Summary 讲师列表
// @Tags 目录
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/instructors [get]
func (c *CatalogController) ListInstructors(ctx *gin.Context) {
	page, limit := pagination(ctx)
	instructors, total, err := c.CatalogService.ListInstructors(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: instructors, Total: total, Page: page, Limit: limit})
}

// GetInstructor godoc
// @Summary 讲师详情
// @Tags 目录
// @Produce  json
// @Param   id path int true "讲师ID"
// @Success 200 {object} util.Response{data=model.Instructor}
// @Failure 404 {object} util.Response
// @Router /api/instructors/{id} [get]
func (c *CatalogController) GetInstructor(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid instructor id")
		return
	}

	instructor, err := c.CatalogService.GetInstructor(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, instructor)
}

type InstructorRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Email       string `json:"email" binding:"required,email"`
	PhotoURL    string `json:"photoUrl"`
}

// CreateInstructor godoc
// @Summary 创建讲师
// @Tags 目录
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body InstructorRequest true "讲师信息"
// @Success 201 {object} util.Response{data=model.Instructor}
// @Router /api/admin/instructors [post]
func (c *CatalogController) CreateInstructor(ctx *gin.Context) {
	var req InstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	instructor := &model.Instructor{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhotoURL:    req.PhotoURL,
	}

	actor := util.GetActorFromContext(ctx)
	if err := c.CatalogService.CreateInstructor(instructor, actor.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, instructor)
}

// UpdateInstructor godoc
// @Summary 更新讲师
// @Tags 目录
// @Security BearerAuth
// @Param   id path int true "讲师ID"
// @Param   body body InstructorRequest true "讲师信息"
// @Success 200 {object} util.Response{data=model.Instructor}
// @Router /api/admin/instructors/{id} [put]
func (c *CatalogController) UpdateInstructor(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid instructor id")
		return
	}

	instructor, err := c.CatalogService.GetInstructor(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req InstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	instructor.Name = req.Name
	instructor.Description = req.Description
	instructor.Email = req.Email
	instructor.PhotoURL = req.PhotoURL

	if err := c.CatalogService.UpdateInstructor(instructor); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, instructor)
}

// DeleteInstructor godoc
// @Summary 删除讲师
// @Description 讲师被课程引用时拒绝删除
// @Tags 目录
// @Security BearerAuth
// @Param   id path int true "讲师ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "讲师仍被课程引用"
// @Router /api/admin/instructors/{id} [delete]
func (c *CatalogController) DeleteInstructor(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid instructor id")
		return
	}

	if err := c.CatalogService.DeleteInstructor(uint(id)); err != nil {
		util.Error(ctx, 409, err.Error())
		return
	}
	util.Success(ctx, nil)
}
