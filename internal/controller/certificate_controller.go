package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

type CertificateRequest struct {
	Name        string `json:"name" binding:"required"`
	TemplateURL string `json:"templateUrl"`
	Description string `json:"description"`
}

// Create godoc
// @Summary 创建证书模版
// @Tags 证书
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CertificateRequest true "证书模版"
// @Success 201 {object} util.Response{data=model.Certificate}
// @Router /api/admin/certificates [post]
func (c *CertificateController) Create(ctx *gin.Context) {
	var req CertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert := &model.Certificate{
		Name:        req.Name,
		TemplateURL: req.TemplateURL,
		Description: req.Description,
	}

	actor := util.GetActorFromContext(ctx)
	if err := c.CertificateService.Create(cert, actor.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, cert)
}

// Get godoc
// @Summary 证书模版详情
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "证书ID"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/admin/certificates/{id} [get]
func (c *CertificateController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid certificate id")
		return
	}

	cert, err := c.CertificateService.GetByID(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, cert)
}

// List godoc
// @Summary 证书模版列表
// @Tags 证书
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	list, total, err := c.CertificateService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// Update godoc
// @Summary 更新证书模版
// @Tags 证书
// @Security BearerAuth
// @Param   id path int true "证书ID"
// @Param   body body CertificateRequest true "证书模版"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Router /api/admin/certificates/{id} [put]
func (c *CertificateController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid certificate id")
		return
	}

	cert, err := c.CertificateService.GetByID(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req CertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert.Name = req.Name
	cert.TemplateURL = req.TemplateURL
	cert.Description = req.Description

	if err := c.CertificateService.Update(cert); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}

// Delete godoc
// @Summary 删除证书模版
// @Tags 证书
// @Security BearerAuth
// @Param   id path int true "证书ID"
// @Success 200 {object} util.Response
// @Router /api/admin/certificates/{id} [delete]
func (c *CertificateController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid certificate id")
		return
	}

	if err := c.CertificateService.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
