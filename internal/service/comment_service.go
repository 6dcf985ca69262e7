package service

import (
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CommentService struct {
	CommentRepo       *repository.CommentRepository
	ParticipationRepo *repository.ParticipationRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, participationRepo *repository.ParticipationRepository) *CommentService {
	return &CommentService{
		CommentRepo:       commentRepo,
		ParticipationRepo: participationRepo,
	}
}

// Post 学员在课时下留言，仅限已报名学员，发布后进入待审核状态
func (s *CommentService) Post(clientID, courseID uint, lessonPath, content string) (*model.Comment, error) {
	enrolled, err := s.ParticipationRepo.IsEnrolled(clientID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	comment := &model.Comment{
		Content:    content,
		CourseID:   courseID,
		LessonPath: lessonPath,
		Status:     model.CommentPending,
		ClientID:   clientID,
		PostedAt:   time.Now(),
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForLesson 内部员工可见全部评论，学员和访客只见已审核的
func (s *CommentService) ListForLesson(courseID uint, lessonPath string, internal bool, page, pageSize int) ([]model.Comment, int64, error) {
	return s.CommentRepo.FindByLesson(courseID, lessonPath, !internal, page, pageSize)
}

func (s *CommentService) ListPending(page, pageSize int) ([]model.Comment, int64, error) {
	return s.CommentRepo.FindByStatus(model.CommentPending, page, pageSize)
}

func (s *CommentService) Approve(commentID uint) (*model.Comment, error) {
	comment, err := s.CommentRepo.FindByID(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	comment.Status = model.CommentApproved
	if err := s.CommentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteOwn 学员只能删除自己的评论
func (s *CommentService) DeleteOwn(clientID, commentID uint) error {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		return err
	}
	if comment.ClientID != clientID {
		return util.ErrPermissionDenied
	}
	return s.CommentRepo.Delete(commentID)
}

func (s *CommentService) Delete(commentID uint) error {
	return s.CommentRepo.Delete(commentID)
}
