package model

import "time"

// ProcessingStatus 视频转码状态机：
// not_processed -> queued -> processing -> complete|failed，不允许回退。
type ProcessingStatus string

const (
	ProcessingNotProcessed ProcessingStatus = "not_processed"
	ProcessingQueued       ProcessingStatus = "queued"
	ProcessingInProgress   ProcessingStatus = "processing"
	ProcessingComplete     ProcessingStatus = "complete"
	ProcessingFailed       ProcessingStatus = "failed"
)

var processingTransitions = map[ProcessingStatus][]ProcessingStatus{
	ProcessingNotProcessed: {ProcessingQueued},
	ProcessingQueued:       {ProcessingInProgress, ProcessingComplete, ProcessingFailed},
	ProcessingInProgress:   {ProcessingComplete, ProcessingFailed},
	ProcessingComplete:     {},
	ProcessingFailed:       {},
}

// CanTransitionTo 校验转码状态是否允许迁移
func (s ProcessingStatus) CanTransitionTo(next ProcessingStatus) bool {
	for _, allowed := range processingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// swagger:model Video
type Video struct {
	BaseModel
	Title            string           `gorm:"size:255;not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	ObjectKey        string           `gorm:"size:255;not null" json:"objectKey"` // 对象存储中的原始文件
	URL              string           `gorm:"size:255" json:"url"`
	Duration         float64          `json:"duration"` // 秒
	Size             int64            `json:"size"`
	Format           string           `gorm:"size:20" json:"format"`
	Thumbnail        string           `gorm:"size:255" json:"thumbnail"`
	ProcessingStatus ProcessingStatus `gorm:"size:20;default:'not_processed'" json:"processingStatus"`
	HLSURL           string           `gorm:"size:255" json:"hlsUrl"`
	UploaderID       uint             `gorm:"index;type:bigint unsigned" json:"uploaderId"`
}

func (Video) TableName() string {
	return "videos"
}

// UploadProgress 分片上传进度（存 Redis）
type UploadProgress struct {
	TotalChunks    int          `json:"totalChunks"`
	UploadedChunks int          `json:"uploadedChunks"`
	FileSize       int64        `json:"fileSize"`
	Identifier     string       `json:"identifier"`
	Filename       string       `json:"filename"`
	CreatedAt      time.Time    `json:"createdAt"`
	Chunks         map[int]bool `json:"chunks"`
}
