package model

import "time"

type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
)

// Comment 课时评论，需管理端审核后公开
// swagger:model Comment
type Comment struct {
	BaseModel
	Content    string        `gorm:"type:text;not null" json:"content"`
	CourseID   uint          `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	LessonPath string        `gorm:"size:100;not null" json:"lessonPath"` // 如 "sections[0].lessons[1]"
	Status     CommentStatus `gorm:"size:20;default:'pending'" json:"status"`
	ClientID   uint          `gorm:"index;type:bigint unsigned;not null" json:"clientId"`
	Client     *Account      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	PostedAt   time.Time     `json:"postedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
