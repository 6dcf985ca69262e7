package service

import (
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

type ReviewService struct {
	ReviewRepo        *repository.ReviewRepository
	CourseRepo        *repository.CourseRepository
	ParticipationRepo *repository.ParticipationRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, courseRepo *repository.CourseRepository, participationRepo *repository.ParticipationRepository) *ReviewService {
	return &ReviewService{
		ReviewRepo:        reviewRepo,
		CourseRepo:        courseRepo,
		ParticipationRepo: participationRepo,
	}
}

// SubmitReview 学员提交课程评价。每门课一个汇总文档，首次评价时创建。
// 新评价进入待审核状态，不立即影响总评分。
func (s *ReviewService) SubmitReview(clientID, courseID uint, rating int, comment string) (*model.CourseReview, error) {
	if rating < 1 || rating > 5 {
		return nil, util.ErrInvalidRating
	}

	enrolled, err := s.ParticipationRepo.IsEnrolled(clientID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	doc, err := s.ReviewRepo.FindByCourse(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		course, cerr := s.CourseRepo.FindByID(courseID)
		if errors.Is(cerr, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		if cerr != nil {
			return nil, cerr
		}
		doc = &model.CourseReview{
			CourseID:    courseID,
			CourseTitle: course.Title,
		}
		if err := s.ReviewRepo.Create(doc); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	reviews, err := doc.DecodeReviews()
	if err != nil {
		return nil, err
	}

	// 同一学员重复提交时覆盖旧评价
	replaced := false
	for i := range reviews {
		if reviews[i].ClientID == clientID {
			reviews[i] = model.Review{
				ClientID:  clientID,
				Rating:    rating,
				Comment:   comment,
				Status:    model.ReviewPending,
				CreatedAt: time.Now(),
			}
			replaced = true
			break
		}
	}
	if !replaced {
		reviews = append(reviews, model.Review{
			ClientID:  clientID,
			Rating:    rating,
			Comment:   comment,
			Status:    model.ReviewPending,
			CreatedAt: time.Now(),
		})
	}

	if err := s.saveWithRecompute(doc, reviews); err != nil {
		return nil, err
	}
	return doc, nil
}

// Moderate 审核某条评价，审核结果会触发总评分重算
func (s *ReviewService) Moderate(courseID, clientID uint, status model.ReviewStatus) (*model.CourseReview, error) {
	doc, err := s.ReviewRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	reviews, err := doc.DecodeReviews()
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		if reviews[i].ClientID == clientID {
			reviews[i].Status = status
			break
		}
	}

	if err := s.saveWithRecompute(doc, reviews); err != nil {
		return nil, err
	}
	return doc, nil
}

// MarkHelpful 点赞计数
func (s *ReviewService) MarkHelpful(courseID, clientID uint) (*model.CourseReview, error) {
	doc, err := s.ReviewRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	reviews, err := doc.DecodeReviews()
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		if reviews[i].ClientID == clientID {
			reviews[i].Helpful++
			break
		}
	}

	if err := doc.SetReviews(reviews); err != nil {
		return nil, err
	}
	if err := s.ReviewRepo.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *ReviewService) GetByCourse(courseID uint) (*model.CourseReview, error) {
	return s.ReviewRepo.FindByCourse(courseID)
}

func (s *ReviewService) List(page, pageSize int) ([]model.CourseReview, int64, error) {
	return s.ReviewRepo.FindAll(page, pageSize)
}

func (s *ReviewService) saveWithRecompute(doc *model.CourseReview, reviews []model.Review) error {
	doc.OverallRating, doc.ReviewCount = RecomputeRating(reviews)
	if err := doc.SetReviews(reviews); err != nil {
		return err
	}
	return s.ReviewRepo.Update(doc)
}

// RecomputeRating 只统计已通过审核的评价，均分保留一位小数
func RecomputeRating(reviews []model.Review) (float64, int) {
	sum := 0
	count := 0
	for _, r := range reviews {
		if r.Status != model.ReviewApproved {
			continue
		}
		sum += r.Rating
		count++
	}
	if count == 0 {
		return 0, 0
	}
	avg := float64(sum) / float64(count)
	return math.Round(avg*10) / 10, count
}
