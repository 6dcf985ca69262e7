package service

import (
	"academy_backend/internal/access"
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// CourseAccessLevel 课程内容的展示级别
type CourseAccessLevel string

const (
	// AccessPreview 匿名访客：只看课程介绍和目录标题
	AccessPreview CourseAccessLevel = "preview"
	// AccessLimited 已登录未报名：公开章节可看内容
	AccessLimited CourseAccessLevel = "limited"
	// AccessFull 已报名学员或内部员工：完整内容
	AccessFull CourseAccessLevel = "full"
)

// CourseView 按访问者身份裁剪后的课程视图
type CourseView struct {
	Course      *model.Course         `json:"course"`
	Sections    []model.CourseSection `json:"sections"`
	AccessLevel CourseAccessLevel     `json:"accessLevel"`
	Enrolled    bool                  `json:"enrolled"`
}

type CourseService struct {
	CourseRepo        *repository.CourseRepository
	ParticipationRepo *repository.ParticipationRepository
	InstructorRepo    *repository.InstructorRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, participationRepo *repository.ParticipationRepository, instructorRepo *repository.InstructorRepository) *CourseService {
	return &CourseService{
		CourseRepo:        courseRepo,
		ParticipationRepo: participationRepo,
		InstructorRepo:    instructorRepo,
	}
}

func (s *CourseService) Create(course *model.Course, createdBy uint) error {
	if course.IsPaid == model.PricingPaid && course.Price <= 0 {
		return util.ErrPriceRequired
	}

	if course.URLName == "" {
		course.URLName = util.Slugify(course.Title)
	}

	// url_name 冲突时追加序号
	base := course.URLName
	for i := 2; ; i++ {
		_, err := s.CourseRepo.FindByURLName(course.URLName)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return err
		}
		course.URLName = fmt.Sprintf("%s-%d", base, i)
	}

	if course.State == "" {
		course.State = model.CourseDraft
	}
	course.CreatedByID = createdBy
	return s.CourseRepo.Create(course)
}

func (s *CourseService) Update(course *model.Course) error {
	if course.IsPaid == model.PricingPaid && course.Price <= 0 {
		return util.ErrPriceRequired
	}
	return s.CourseRepo.Update(course)
}

func (s *CourseService) Delete(id uint) error {
	return s.CourseRepo.Delete(id)
}

func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// List 内部员工看全部状态，其他访问者只看已发布课程
func (s *CourseService) List(actor *access.Actor, state model.CourseState, categoryID uint, page, pageSize int) ([]model.Course, int64, error) {
	if !access.IsInternal(actor) {
		state = model.CoursePublished
	}
	return s.CourseRepo.FindAll(state, categoryID, page, pageSize)
}

// GetView 课程详情接口，按访问者身份返回不同的内容投影
func (s *CourseService) GetView(urlName string, actor *access.Actor) (*CourseView, error) {
	course, err := s.CourseRepo.FindByURLName(urlName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	// 未发布课程仅内部员工可见
	if course.State != model.CoursePublished && !access.IsInternal(actor) {
		return nil, util.ErrCourseNotFound
	}

	enrolled := false
	if access.IsClient(actor) {
		p, err := s.ParticipationRepo.FindByClientAndCourse(actor.ID, course.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			enrolled = EnrolledIn(course, p)
		}
	}

	sections, err := course.DecodeSections()
	if err != nil {
		return nil, err
	}

	level := resolveAccessLevel(actor, enrolled)
	return &CourseView{
		Course:      course,
		Sections:    ProjectSections(sections, level),
		AccessLevel: level,
		Enrolled:    enrolled,
	}, nil
}

func resolveAccessLevel(actor *access.Actor, enrolled bool) CourseAccessLevel {
	switch {
	case access.IsInternal(actor):
		return AccessFull
	case enrolled:
		return AccessFull
	case access.IsAuthenticated(actor):
		return AccessLimited
	default:
		return AccessPreview
	}
}

// ProjectSections 按展示级别裁剪章节内容。
// preview 只保留目录结构，limited 保留公开章节的内容块，full 完整返回。
// 章节与课时按 order 字段排序，与存储顺序无关。
// 对同一输入重复调用结果不变。
func ProjectSections(sections []model.CourseSection, level CourseAccessLevel) []model.CourseSection {
	out := make([]model.CourseSection, len(sections))
	for i, section := range sections {
		projected := section
		projected.Lessons = make([]model.CourseLesson, len(section.Lessons))
		keepContent := level == AccessFull || (level == AccessLimited && section.IsPublic)
		for j, lesson := range section.Lessons {
			pl := lesson
			if !keepContent {
				pl.ContentItems = nil
			}
			projected.Lessons[j] = pl
		}
		sort.SliceStable(projected.Lessons, func(a, b int) bool {
			return projected.Lessons[a].Order < projected.Lessons[b].Order
		})
		out[i] = projected
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Order < out[b].Order
	})
	return out
}
