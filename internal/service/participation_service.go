package service

import (
	"academy_backend/internal/access"
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type ParticipationService struct {
	ParticipationRepo *repository.ParticipationRepository
	CourseRepo        *repository.CourseRepository
	AccountRepo       *repository.AccountRepository
	Email             *EmailService
}

func NewParticipationService(participationRepo *repository.ParticipationRepository, courseRepo *repository.CourseRepository, accountRepo *repository.AccountRepository, email *EmailService) *ParticipationService {
	return &ParticipationService{
		ParticipationRepo: participationRepo,
		CourseRepo:        courseRepo,
		AccountRepo:       accountRepo,
		Email:             email,
	}
}

// EnrolledIn 判定参与记录是否赋予课程内容访问权：
// 免费课程有参与记录即算已报名（与参与状态无关），
// 付费课程还要求支付完成。
func EnrolledIn(course *model.Course, p *model.Participation) bool {
	if course == nil || p == nil {
		return false
	}
	if course.IsPaid != model.PricingPaid {
		return true
	}
	return p.PaymentStatus == model.PaymentPaid
}

// Enroll 学员报名课程。
// 免费公开课直接进入 enrolled，付费课进入 pending 等待支付，
// 私享课进入 pending 等待后台审核。
func (s *ParticipationService) Enroll(clientID, courseID uint) (*model.Participation, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if course.State != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.ParticipationRepo.FindByClientAndCourse(clientID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Participation{
		ClientID:      clientID,
		CourseID:      courseID,
		Status:        model.ParticipationEnrolled,
		PaymentStatus: model.PaymentUnpaid,
	}

	if course.IsPaid == model.PricingPaid || course.EnrollmentType == model.EnrollmentPrivate {
		p.Status = model.ParticipationPending
	}

	if err := s.ParticipationRepo.Create(p); err != nil {
		return nil, err
	}

	if s.Email != nil && p.Status == model.ParticipationEnrolled {
		if account, err := s.AccountRepo.FindByID(clientID); err == nil {
			go s.Email.SendEnrollmentEmail(account.Email, account.FullName, course.Title)
		}
	}
	return p, nil
}

// ConfirmPayment 后台确认收款，付费课转入 paid
func (s *ParticipationService) ConfirmPayment(participationID uint) (*model.Participation, error) {
	p, err := s.ParticipationRepo.FindByID(participationID)
	if err != nil {
		return nil, err
	}

	p.PaymentStatus = model.PaymentPaid
	if p.Status == model.ParticipationPending {
		p.Status = model.ParticipationPaid
	}
	if err := s.ParticipationRepo.Update(p); err != nil {
		return nil, err
	}

	if s.Email != nil && p.Course.ID != 0 && p.Client.ID != 0 {
		go s.Email.SendEnrollmentEmail(p.Client.Email, p.Client.FullName, p.Course.Title)
	}
	return p, nil
}

// Approve 私享课报名审核通过
func (s *ParticipationService) Approve(participationID uint) (*model.Participation, error) {
	p, err := s.ParticipationRepo.FindByID(participationID)
	if err != nil {
		return nil, err
	}

	if p.Status == model.ParticipationPending {
		p.Status = model.ParticipationEnrolled
		if err := s.ParticipationRepo.Update(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ListOwn 学员查询报名记录，行级范围由策略表给出
func (s *ParticipationService) ListOwn(actor *access.Actor) ([]model.Participation, error) {
	d := access.Can(actor, access.Participants, access.Read)
	if !d.Allowed {
		return nil, util.ErrPermissionDenied
	}
	return s.ParticipationRepo.FindScoped(d, actor)
}

func (s *ParticipationService) List(courseID uint, page, pageSize int) ([]model.Participation, int64, error) {
	return s.ParticipationRepo.FindAll(courseID, page, pageSize)
}

func (s *ParticipationService) GetOwn(clientID, participationID uint) (*model.Participation, error) {
	p, err := s.ParticipationRepo.FindByID(participationID)
	if err != nil {
		return nil, err
	}
	if p.ClientID != clientID {
		return nil, util.ErrPermissionDenied
	}
	return p, nil
}

func (s *ParticipationService) Delete(id uint) error {
	return s.ParticipationRepo.Delete(id)
}
