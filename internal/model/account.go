package model

import "time"

// FieldOfWork 学员所属行业
type FieldOfWork string

const (
	FieldManagement FieldOfWork = "management"
	FieldFinance    FieldOfWork = "finance"
	FieldMarketing  FieldOfWork = "marketing"
	FieldDigital    FieldOfWork = "digital"
	FieldLogistics  FieldOfWork = "logistics"
	FieldHR         FieldOfWork = "hr"
	FieldProduction FieldOfWork = "production"
	FieldIT         FieldOfWork = "it"
	FieldSafety     FieldOfWork = "safety"
)

type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountPending   AccountStatus = "pending"
	AccountCompleted AccountStatus = "completed"
	AccountCancelled AccountStatus = "cancelled"
)

// Account 终端学员账号（C端），与后台 User 分离
// swagger:model Account
type Account struct {
	BaseModel
	Email            string        `gorm:"size:100;unique;not null" json:"email"`
	Password         string        `gorm:"size:100;not null" json:"-"`
	FullName         string        `gorm:"size:150;not null" json:"fullName"`
	Phone            string        `gorm:"size:30" json:"phone"`
	FieldOfWork      FieldOfWork   `gorm:"size:30;not null" json:"fieldOfWork"`
	AgreeToTerms     bool          `gorm:"not null" json:"agreeToTerms"`
	MarketingConsent bool          `gorm:"default:false" json:"marketingConsent"`
	Status           AccountStatus `gorm:"size:20;default:'active'" json:"status"`
	LastLogin        time.Time     `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (Account) TableName() string {
	return "accounts"
}
