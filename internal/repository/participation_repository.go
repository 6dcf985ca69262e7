package repository

import (
	"academy_backend/internal/access"
	"academy_backend/internal/model"

	"gorm.io/gorm"
)

type ParticipationRepository struct {
	DB *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) *ParticipationRepository {
	return &ParticipationRepository{DB: db}
}

func (r *ParticipationRepository) Create(p *model.Participation) error {
	return r.DB.Create(p).Error
}

func (r *ParticipationRepository) FindByID(id uint) (*model.Participation, error) {
	var p model.Participation
	err := r.DB.Preload("Course").Preload("Client").First(&p, id).Error
	return &p, err
}

func (r *ParticipationRepository) FindByClientAndCourse(clientID, courseID uint) (*model.Participation, error) {
	var p model.Participation
	err := r.DB.Where("client_id = ? AND course_id = ?", clientID, courseID).First(&p).Error
	return &p, err
}

// FindScoped 按授权结果过滤参与记录（行级范围归属当前访问者）
func (r *ParticipationRepository) FindScoped(d access.Decision, a *access.Actor) ([]model.Participation, error) {
	var list []model.Participation
	q := d.Apply(r.DB.Preload("Course"), a)
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ParticipationRepository) FindAll(courseID uint, page, pageSize int) ([]model.Participation, int64, error) {
	var list []model.Participation
	var total int64

	query := r.DB.Model(&model.Participation{})
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Course").Preload("Client").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&list).Error
	return list, total, err
}

func (r *ParticipationRepository) Update(p *model.Participation) error {
	return r.DB.Save(p).Error
}

func (r *ParticipationRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Participation{}, id).Error
}

// IsEnrolled 判断学员是否已报名该课程：
// 存在参与记录，且课程免费或支付已完成（与 service.EnrolledIn 同一判定）
func (r *ParticipationRepository) IsEnrolled(clientID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Participation{}).
		Joins("JOIN courses ON courses.id = participations.course_id").
		Where("participations.client_id = ? AND participations.course_id = ?", clientID, courseID).
		Where("courses.is_paid <> ? OR participations.payment_status = ?", model.PricingPaid, model.PaymentPaid).
		Count(&count).Error
	return count > 0, err
}
