package model

import (
	"encoding/json"
	"time"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// CourseReview 一门课程的评价汇总文档。OverallRating / ReviewCount
// 为派生字段，写入时由已通过审核的评价重新计算。
// swagger:model CourseReview
type CourseReview struct {
	BaseModel
	CourseID      uint            `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"courseId"`
	CourseTitle   string          `gorm:"size:255;not null" json:"courseTitle"`
	OverallRating float64         `gorm:"default:0" json:"overallRating"`
	ReviewCount   int             `gorm:"default:0" json:"reviewCount"`
	Reviews       json.RawMessage `gorm:"type:json" json:"reviews"` // JSON: []Review
}

func (CourseReview) TableName() string {
	return "course_reviews"
}

type Review struct {
	ClientID   uint         `json:"clientId"`
	Rating     int          `json:"rating"` // 1-5
	Comment    string       `json:"comment,omitempty"`
	Status     ReviewStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	Helpful    int          `json:"helpful"`
	IsFeatured bool         `json:"isFeatured"`
}

func (r *CourseReview) DecodeReviews() ([]Review, error) {
	var reviews []Review
	if len(r.Reviews) == 0 {
		return reviews, nil
	}
	err := json.Unmarshal(r.Reviews, &reviews)
	return reviews, err
}

func (r *CourseReview) SetReviews(reviews []Review) error {
	raw, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	r.Reviews = raw
	return nil
}
