package model

// Certificate 结业证书模板
// swagger:model Certificate
type Certificate struct {
	BaseModel
	SerialNo    string `gorm:"size:36;uniqueIndex" json:"serialNo"` // 创建时生成，不可改
	Name        string `gorm:"size:150;not null" json:"name"`
	TemplateURL string `gorm:"size:255;not null" json:"templateUrl"`
	Description string `gorm:"type:text" json:"description"`
	CreatedByID uint   `gorm:"index;type:bigint unsigned" json:"createdById"`
}

func (Certificate) TableName() string {
	return "certificates"
}
