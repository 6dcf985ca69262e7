package service

import (
	"academy_backend/internal/config"
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const uploadProgressKeyPrefix = "video_upload_progress:"

type VideoService struct {
	VideoRepo      *repository.VideoRepository
	StorageService *StorageService
	Cfg            *config.Config
	Redis          *redis.Client
	httpClient     *http.Client
}

func NewVideoService(videoRepo *repository.VideoRepository, storageService *StorageService, cfg *config.Config, rdb *redis.Client) *VideoService {
	return &VideoService{
		VideoRepo:      videoRepo,
		StorageService: storageService,
		Cfg:            cfg,
		Redis:          rdb,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// UploadVideo 一次性上传。落盘后抓帧生成封面、读取时长，
// 入库成功再异步送转码队列。
func (s *VideoService) UploadVideo(ctx context.Context, file *multipart.FileHeader, title, description string, uploaderID uint) (*model.Video, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	isValidType := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			isValidType = true
			break
		}
	}
	if !isValidType {
		return nil, util.ErrInvalidVideoExt
	}

	objectKey := "videos/" + time.Now().Format("20060102150405") + "-" +
		util.GenerateRandomString(6) + "-" +
		strings.ReplaceAll(file.Filename, " ", "-")

	// 临时保存到本地进行处理
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}

	tempFilename := fmt.Sprintf("temp_video_%d%s", time.Now().UnixNano(), ext)
	videoPath := filepath.Join(tempDir, tempFilename)
	defer os.Remove(videoPath)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 深度验证 MIME 类型
	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo}); err != nil {
		return nil, fmt.Errorf("非法的文件内容，仅允许视频格式: %v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	videoURL, err := s.StorageService.UploadFile(ctx, objectKey, videoPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}

	video := &model.Video{
		Title:            title,
		Description:      description,
		ObjectKey:        objectKey,
		URL:              videoURL,
		Size:             file.Size,
		Format:           strings.TrimPrefix(ext, "."),
		Thumbnail:        s.buildThumbnail(ctx, videoPath, file.Filename, ext),
		ProcessingStatus: model.ProcessingNotProcessed,
		UploaderID:       uploaderID,
	}

	if info, err := util.GetVideoInfo(videoPath); err == nil {
		video.Duration = info.Duration
	}

	if err := s.VideoRepo.Create(video); err != nil {
		return nil, err
	}

	s.enqueueTranscode(video)
	return video, nil
}

// buildThumbnail 抓帧失败时回退到默认封面
func (s *VideoService) buildThumbnail(ctx context.Context, videoPath, originalName, ext string) string {
	thumbnailFilename := "thumbnails/" + time.Now().Format("20060102150405") + "-" +
		strings.ReplaceAll(strings.TrimSuffix(originalName, ext), " ", "-") + ".jpg"

	thumbnailDir := filepath.Join(s.Cfg.Storage.LocalPath, "thumbnails")
	if err := os.MkdirAll(thumbnailDir, 0755); err != nil {
		logger.Log.Error("创建缩略图目录失败", zap.Error(err))
		return s.StorageService.GetURL("thumbnails/default-video-thumbnail.jpg")
	}
	thumbnailPath := filepath.Join(thumbnailDir, filepath.Base(thumbnailFilename))
	defer os.Remove(thumbnailPath)

	if err := util.GenerateThumbnail(videoPath, thumbnailPath, "3"); err != nil {
		logger.Log.Error("生成缩略图失败", zap.Error(err))
		return s.StorageService.GetURL("thumbnails/default-video-thumbnail.jpg")
	}

	thumbnailURL, err := s.StorageService.UploadFile(ctx, thumbnailFilename, thumbnailPath, "image/jpeg")
	if err != nil {
		return s.StorageService.GetURL("thumbnails/default-video-thumbnail.jpg")
	}
	return thumbnailURL
}

// UploadVideoChunk 分片上传，进度存 Redis，收齐后合并走完整处理流程
func (s *VideoService) UploadVideoChunk(ctx context.Context, chunkFile *multipart.FileHeader, chunkNumber, totalChunks int, identifier, filename, title, description string, uploaderID uint) (*model.UploadProgress, *model.Video, error) {
	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp", identifier)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, nil, err
	}

	chunkPath := filepath.Join(tempDir, fmt.Sprintf("chunk_%d", chunkNumber))
	src, err := chunkFile.Open()
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	dst, err := os.Create(chunkPath)
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, nil, err
	}
	dst.Close()

	redisKey := uploadProgressKeyPrefix + identifier

	var progress *model.UploadProgress
	val, err := s.Redis.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		progress = &model.UploadProgress{
			TotalChunks: totalChunks,
			Identifier:  identifier,
			Filename:    filename,
			CreatedAt:   time.Now(),
			Chunks:      make(map[int]bool),
		}
	} else if err != nil {
		return nil, nil, err
	} else {
		progress = &model.UploadProgress{}
		if err := json.Unmarshal([]byte(val), progress); err != nil {
			return nil, nil, err
		}
	}

	if !progress.Chunks[chunkNumber] {
		progress.UploadedChunks++
		progress.FileSize += chunkFile.Size
		progress.Chunks[chunkNumber] = true
	}

	isComplete := progress.UploadedChunks == progress.TotalChunks

	updatedVal, _ := json.Marshal(progress)
	if err := s.Redis.Set(ctx, redisKey, updatedVal, 24*time.Hour).Err(); err != nil {
		logger.Log.Warn("保存上传进度失败", zap.String("identifier", identifier), zap.Error(err))
	}

	var video *model.Video
	if isComplete {
		video, err = s.assembleChunks(ctx, tempDir, identifier, filename, title, description, uploaderID, progress)
		if err != nil {
			return nil, nil, err
		}
		os.RemoveAll(tempDir)
		s.Redis.Del(context.Background(), redisKey)
	}

	return progress, video, nil
}

func (s *VideoService) assembleChunks(ctx context.Context, tempDir, identifier, filename, title, description string, uploaderID uint, progress *model.UploadProgress) (*model.Video, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectKey := "videos/" + time.Now().Format("20060102150405") + "-" +
		util.GenerateRandomString(6) + "-" +
		strings.ReplaceAll(strings.TrimSuffix(filename, ext), " ", "-") + ext
	finalPath := filepath.Join(s.Cfg.Storage.LocalPath, "temp", identifier+"_final"+ext)
	defer os.Remove(finalPath)

	finalFile, err := os.Create(finalPath)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= progress.TotalChunks; i++ {
		chunkPath := filepath.Join(tempDir, fmt.Sprintf("chunk_%d", i))
		data, err := os.ReadFile(chunkPath)
		if err != nil {
			finalFile.Close()
			return nil, err
		}
		if _, err := finalFile.Write(data); err != nil {
			finalFile.Close()
			return nil, err
		}
	}
	finalFile.Close()

	videoURL, err := s.StorageService.UploadFile(ctx, objectKey, finalPath, "video/"+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSuffix(filename, ext)
	}

	video := &model.Video{
		Title:            title,
		Description:      description,
		ObjectKey:        objectKey,
		URL:              videoURL,
		Size:             progress.FileSize,
		Format:           strings.TrimPrefix(ext, "."),
		Thumbnail:        s.buildThumbnail(ctx, finalPath, filename, ext),
		ProcessingStatus: model.ProcessingNotProcessed,
		UploaderID:       uploaderID,
	}

	if info, err := util.GetVideoInfo(finalPath); err == nil {
		video.Duration = info.Duration
	}

	if err := s.VideoRepo.Create(video); err != nil {
		return nil, err
	}

	s.enqueueTranscode(video)
	return video, nil
}

func (s *VideoService) GetUploadProgress(identifier string) (*model.UploadProgress, error) {
	redisKey := uploadProgressKeyPrefix + identifier
	val, err := s.Redis.Get(context.Background(), redisKey).Result()
	if err == redis.Nil {
		return nil, util.ErrUploadProgressNotFound
	} else if err != nil {
		return nil, err
	}

	var progress model.UploadProgress
	if err := json.Unmarshal([]byte(val), &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

type transcodeRequest struct {
	VideoID     uint   `json:"videoId"`
	SourceURL   string `json:"sourceUrl"`
	CallbackURL string `json:"callbackUrl"`
}

// enqueueTranscode 通知外部转码服务，成功后状态迁到 queued。
// 未配置转码服务时保持 not_processed，原始文件直接可用。
func (s *VideoService) enqueueTranscode(video *model.Video) {
	if !s.Cfg.Transcoder.Enabled || s.Cfg.Transcoder.Endpoint == "" {
		return
	}

	go func() {
		payload, err := json.Marshal(transcodeRequest{
			VideoID:     video.ID,
			SourceURL:   video.URL,
			CallbackURL: s.Cfg.Transcoder.CallbackURL,
		})
		if err != nil {
			return
		}

		resp, err := s.httpClient.Post(s.Cfg.Transcoder.Endpoint, "application/json", bytes.NewReader(payload))
		if err != nil {
			logger.Log.Error("转码服务调用失败", zap.Uint("video_id", video.ID), zap.Error(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			logger.Log.Error("转码服务返回异常状态",
				zap.Uint("video_id", video.ID), zap.Int("status", resp.StatusCode))
			return
		}

		if err := s.transition(video.ID, model.ProcessingQueued, nil); err != nil {
			logger.Log.Error("更新转码状态失败", zap.Uint("video_id", video.ID), zap.Error(err))
			return
		}
		monitoring.VideoProcessingGauge.Inc()
	}()
}

// HandleTranscodeCallback 转码服务回调，按状态机推进
func (s *VideoService) HandleTranscodeCallback(videoID uint, status model.ProcessingStatus, hlsURL string) error {
	updates := map[string]interface{}{}
	if status == model.ProcessingComplete && hlsURL != "" {
		updates["hls_url"] = hlsURL
	}

	if err := s.transition(videoID, status, updates); err != nil {
		return err
	}

	if status == model.ProcessingComplete || status == model.ProcessingFailed {
		monitoring.VideoProcessingGauge.Dec()
	}
	return nil
}

func (s *VideoService) transition(videoID uint, next model.ProcessingStatus, updates map[string]interface{}) error {
	video, err := s.VideoRepo.FindByID(videoID)
	if err != nil {
		return err
	}

	if !video.ProcessingStatus.CanTransitionTo(next) {
		logger.Log.Warn("拒绝非法的转码状态迁移",
			zap.Uint("video_id", videoID),
			zap.String("from", string(video.ProcessingStatus)),
			zap.String("to", string(next)))
		return util.ErrInvalidStatusChange
	}

	return s.VideoRepo.UpdateStatus(videoID, next, updates)
}

func (s *VideoService) GetByID(id uint) (*model.Video, error) {
	return s.VideoRepo.FindByID(id)
}

// PlaybackURL 优先返回 HLS 地址，对象存储启用签名时返回限时链接
func (s *VideoService) PlaybackURL(ctx context.Context, id uint) (string, error) {
	video, err := s.VideoRepo.FindByID(id)
	if err != nil {
		return "", err
	}

	if video.ProcessingStatus == model.ProcessingComplete && video.HLSURL != "" {
		return video.HLSURL, nil
	}
	return s.StorageService.PresignedURL(ctx, video.ObjectKey, time.Hour)
}

func (s *VideoService) List(status model.ProcessingStatus, page, pageSize int) ([]model.Video, int64, error) {
	return s.VideoRepo.FindAll(status, page, pageSize)
}

func (s *VideoService) Delete(ctx context.Context, id uint) error {
	video, err := s.VideoRepo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.StorageService.Delete(ctx, video.ObjectKey); err != nil {
		logger.Log.Warn("删除存储对象失败", zap.Uint("video_id", id), zap.Error(err))
	}
	return s.VideoRepo.Delete(id)
}
