package controller

import (
	"academy_backend/internal/model"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VideoController struct {
	VideoService *service.VideoService
}

func NewVideoController(videoService *service.VideoService) *VideoController {
	return &VideoController{VideoService: videoService}
}

// Upload godoc
// @Summary 上传视频
// @Description 上传后自动抓帧生成封面、读取时长，并异步送转码队列
// @Tags 视频
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "视频文件"
// @Param   title formData string false "标题"
// @Param   description formData string false "描述"
// @Success 201 {object} util.Response{data=model.Video}
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/admin/videos [post]
func (c *VideoController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	actor := util.GetActorFromContext(ctx)
	video, err := c.VideoService.UploadVideo(ctx.Request.Context(), file,
		ctx.PostForm("title"), ctx.PostForm("description"), actor.ID)
	if err != nil {
		if errors.Is(err, util.ErrInvalidVideoExt) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, video)
}

// UploadChunk godoc
// @Summary 分片上传视频
// @Description 进度存 Redis，收齐全部分片后自动合并入库
// @Tags 视频
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   chunk formData file true "分片文件"
// @Param   chunkNumber formData int true "分片序号（从1开始）"
// @Param   totalChunks formData int true "分片总数"
// @Param   identifier formData string true "上传会话标识"
// @Param   filename formData string true "原始文件名"
// @Param   title formData string false "标题"
// @Param   description formData string false "描述"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/videos/chunk [post]
func (c *VideoController) UploadChunk(ctx *gin.Context) {
	chunkFile, err := ctx.FormFile("chunk")
	if err != nil {
		util.BadRequest(ctx, "chunk is required")
		return
	}

	chunkNumber, _ := strconv.Atoi(ctx.PostForm("chunkNumber"))
	totalChunks, _ := strconv.Atoi(ctx.PostForm("totalChunks"))
	identifier := ctx.PostForm("identifier")
	filename := ctx.PostForm("filename")
	if chunkNumber < 1 || totalChunks < 1 || identifier == "" || filename == "" {
		util.BadRequest(ctx, "chunkNumber, totalChunks, identifier and filename are required")
		return
	}

	actor := util.GetActorFromContext(ctx)
	progress, video, err := c.VideoService.UploadVideoChunk(ctx.Request.Context(), chunkFile,
		chunkNumber, totalChunks, identifier, filename,
		ctx.PostForm("title"), ctx.PostForm("description"), actor.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"progress": progress, "video": video})
}

// GetUploadProgress godoc
// @Summary 查询上传进度
// @Tags 视频
// @Produce  json
// @Security BearerAuth
// @Param   identifier path string true "上传会话标识"
// @Success 200 {object} util.Response{data=model.UploadProgress}
// @Failure 404 {object} util.Response
// @Router /api/admin/videos/progress/{identifier} [get]
func (c *VideoController) GetUploadProgress(ctx *gin.Context) {
	progress, err := c.VideoService.GetUploadProgress(ctx.Param("identifier"))
	if err != nil {
		if errors.Is(err, util.ErrUploadProgressNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// Get godoc
// @Summary 视频详情
// @Tags 视频
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "视频ID"
// @Success 200 {object} util.Response{data=model.Video}
// @Failure 404 {object} util.Response
// @Router /api/videos/{id} [get]
func (c *VideoController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid video id")
		return
	}

	video, err := c.VideoService.GetByID(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, video)
}

// Playback godoc
// @Summary 获取播放地址
// @Description 转码完成返回 HLS 地址，否则返回原始文件的限时链接
// @Tags 视频
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "视频ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/videos/{id}/playback [get]
func (c *VideoController) Playback(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid video id")
		return
	}

	url, err := c.VideoService.PlaybackURL(ctx.Request.Context(), uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// List godoc
// @Summary 视频列表
// @Tags 视频
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "按转码状态筛选"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/videos [get]
func (c *VideoController) List(ctx *gin.Context) {
	page, limit := pagination(ctx)
	status := model.ProcessingStatus(ctx.Query("status"))

	list, total, err := c.VideoService.List(status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

// Delete godoc
// @Summary 删除视频
// @Tags 视频
// @Security BearerAuth
// @Param   id path int true "视频ID"
// @Success 200 {object} util.Response
// @Router /api/admin/videos/{id} [delete]
func (c *VideoController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid video id")
		return
	}

	if err := c.VideoService.Delete(ctx.Request.Context(), uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// TranscodeCallbackRequest 转码服务回调
type TranscodeCallbackRequest struct {
	VideoID uint   `json:"videoId" binding:"required"`
	Status  string `json:"status" binding:"required,oneof=processing complete failed"`
	HLSURL  string `json:"hlsUrl"`
}

// TranscodeCallback godoc
// @Summary 转码状态回调
// @Description 外部转码服务推进状态机，非法迁移会被拒绝
// @Tags 视频
// @Accept  json
// @Produce  json
// @Param   body body TranscodeCallbackRequest true "回调数据"
// @Param   X-Callback-Token header string true "回调令牌"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "令牌缺失或不匹配"
// @Failure 409 {object} util.Response "非法状态迁移"
// @Router /api/callbacks/transcode [post]
func (c *VideoController) TranscodeCallback(ctx *gin.Context) {
	// 回调不走登录态，凭配置的共享令牌鉴权；未配置令牌时接口关闭
	token := c.VideoService.Cfg.Transcoder.CallbackToken
	if token == "" || ctx.GetHeader("X-Callback-Token") != token {
		util.Unauthorized(ctx)
		return
	}

	var req TranscodeCallbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.VideoService.HandleTranscodeCallback(req.VideoID, model.ProcessingStatus(req.Status), req.HLSURL); err != nil {
		if errors.Is(err, util.ErrInvalidStatusChange) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.NotFound(ctx)
		}
		return
	}
	util.Success(ctx, nil)
}
