package model

type ParticipationStatus string

const (
	ParticipationPending   ParticipationStatus = "pending"
	ParticipationEnrolled  ParticipationStatus = "enrolled"
	ParticipationPaid      ParticipationStatus = "paid"
	ParticipationCompleted ParticipationStatus = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

// Participation 报名记录：一个学员账号与一门课程的关联，
// 仅归属学员本人可读写（管理端角色除外）。
// swagger:model Participation
type Participation struct {
	BaseModel
	ClientID      uint                `gorm:"index:idx_participation_client_course;type:bigint unsigned;not null" json:"clientId"`
	Client        *Account            `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	CourseID      uint                `gorm:"index:idx_participation_client_course;type:bigint unsigned;not null" json:"courseId"`
	Course        *Course             `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Status        ParticipationStatus `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus       `gorm:"size:20;default:'unpaid'" json:"paymentStatus"`
	ExamCompleted bool                `gorm:"default:false" json:"examCompleted"`
}

func (Participation) TableName() string {
	return "participations"
}
