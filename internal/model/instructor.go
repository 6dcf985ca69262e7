package model

// swagger:model Instructor
type Instructor struct {
	BaseModel
	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Email       string `gorm:"size:100;unique;not null" json:"email"`
	PhotoURL    string `gorm:"size:255" json:"photoUrl"`
	CreatedByID uint   `gorm:"index;type:bigint unsigned" json:"createdById"`
}

func (Instructor) TableName() string {
	return "instructors"
}
