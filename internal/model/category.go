package model

// swagger:model Category
type Category struct {
	BaseModel
	Title string `gorm:"size:150;not null" json:"title"`
}

func (Category) TableName() string {
	return "categories"
}
