package model

import "encoding/json"

type CourseState string

const (
	CourseDraft     CourseState = "draft"
	CoursePublished CourseState = "published"
	CoursePending   CourseState = "pending"
)

type EnrollmentType string

const (
	EnrollmentPublic  EnrollmentType = "public"
	EnrollmentPrivate EnrollmentType = "private"
)

type PricingMode string

const (
	PricingFree PricingMode = "free"
	PricingPaid PricingMode = "paid"
)

// ContentItemType 课时内容块类型
type ContentItemType string

const (
	ContentVideo       ContentItemType = "video"
	ContentPDF         ContentItemType = "pdf"
	ContentDocument    ContentItemType = "document"
	ContentSpreadsheet ContentItemType = "spreadsheet"
	ContentImage       ContentItemType = "image"
	ContentQuiz        ContentItemType = "quiz"
)

// Course 课程。章节/课时/内容块为嵌套 JSON 文档，顺序由 order 字段决定，
// 与数组下标无关。
// swagger:model Course
type Course struct {
	BaseModel
	Title          string          `gorm:"size:255;not null" json:"title"`
	URLName        string          `gorm:"size:255;uniqueIndex;not null" json:"urlName"`
	State          CourseState     `gorm:"size:20;default:'draft'" json:"state"`
	Description    json.RawMessage `gorm:"type:json" json:"description"` // JSON: CourseDescription
	CoverPhotoURL  string          `gorm:"size:255" json:"coverPhotoUrl"`
	PreviewVideoID uint            `gorm:"type:bigint unsigned" json:"previewVideoId"`
	EnrollmentType EnrollmentType  `gorm:"size:20;default:'public'" json:"enrollmentType"`
	IsPaid         PricingMode     `gorm:"size:10;default:'free'" json:"isPaid"`
	Price          float64         `json:"price"`
	CategoryID     uint            `gorm:"index;type:bigint unsigned" json:"categoryId"`
	InstructorID   uint            `gorm:"index;type:bigint unsigned" json:"instructorId"`
	Instructor     *Instructor     `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Sections       json.RawMessage `gorm:"type:json" json:"sections"`    // JSON: []CourseSection
	ExamConfigs    json.RawMessage `gorm:"type:json" json:"examConfigs"` // JSON: []CourseExamConfig
	CreatedByID    uint            `gorm:"index;type:bigint unsigned" json:"createdById"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseDescription struct {
	Details CourseDetails `json:"details"`
	Infos   CourseInfos   `json:"infos"`
}

type CourseDetails struct {
	Challenges     []string `json:"challenges"`
	Overview       []string `json:"overview"`
	Outcomes       []string `json:"outcomes"`
	TargetAudience []string `json:"targetAudience"`
}

type CourseInfos struct {
	NumberOfVideos            int `json:"numberOfVideos"`
	NumberOfSections          int `json:"numberOfSections"`
	NumberOfPracticalFiles    int `json:"numberOfPracticalFiles"`
	NumberOfPracticalExamples int `json:"numberOfPracticalExamples"`
	CourseTime                int `json:"courseTime"` // 分钟
}

// CourseSection 章节。IsPublic 允许已登录但未报名的学员查看整节内容。
type CourseSection struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Order       int            `json:"order"`
	IsPublic    bool           `json:"isPublic"`
	Lessons     []CourseLesson `json:"lessons"`
}

type CourseLesson struct {
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Order        int           `json:"order"`
	ContentItems []ContentItem `json:"contentItems,omitempty"`
}

// ContentItem 课时内容块，按类型只填对应字段
type ContentItem struct {
	Type     ContentItemType `json:"type"`
	Title    string          `json:"title"`
	VideoID  uint            `json:"videoId,omitempty"`  // type=video
	FileURL  string          `json:"fileUrl,omitempty"`  // pdf/document/spreadsheet/image
	Question *QuizQuestion   `json:"question,omitempty"` // type=quiz
}

// QuizQuestion 课时内嵌的小测题（非正式考试）
type QuizQuestion struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// CourseExamConfig 课程与考试的关联配置
type CourseExamConfig struct {
	ExamID             uint `json:"examId"`
	RequiredToComplete bool `json:"requiredToComplete"`
}

func (c *Course) DecodeSections() ([]CourseSection, error) {
	var sections []CourseSection
	if len(c.Sections) == 0 {
		return sections, nil
	}
	err := json.Unmarshal(c.Sections, &sections)
	return sections, err
}

func (c *Course) SetSections(sections []CourseSection) error {
	raw, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	c.Sections = raw
	return nil
}

func (c *Course) DecodeExamConfigs() ([]CourseExamConfig, error) {
	var configs []CourseExamConfig
	if len(c.ExamConfigs) == 0 {
		return configs, nil
	}
	err := json.Unmarshal(c.ExamConfigs, &configs)
	return configs, err
}

func (c *Course) SetExamConfigs(configs []CourseExamConfig) error {
	raw, err := json.Marshal(configs)
	if err != nil {
		return err
	}
	c.ExamConfigs = raw
	return nil
}

// ExamConfigFor 按考试查找本课程的关联配置
func (c *Course) ExamConfigFor(examID uint) (*CourseExamConfig, error) {
	configs, err := c.DecodeExamConfigs()
	if err != nil {
		return nil, err
	}
	for i := range configs {
		if configs[i].ExamID == examID {
			return &configs[i], nil
		}
	}
	return nil, nil
}
