package service

import (
	"academy_backend/internal/access"
	"academy_backend/internal/model"
	"academy_backend/internal/repository"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	DB                *gorm.DB
	SubmissionRepo    *repository.SubmissionRepository
	ExamRepo          *repository.ExamRepository
	CourseRepo        *repository.CourseRepository
	ParticipationRepo *repository.ParticipationRepository
	AccountRepo       *repository.AccountRepository
	Email             *EmailService
}

func NewSubmissionService(db *gorm.DB, submissionRepo *repository.SubmissionRepository, examRepo *repository.ExamRepository, courseRepo *repository.CourseRepository, participationRepo *repository.ParticipationRepository, accountRepo *repository.AccountRepository, email *EmailService) *SubmissionService {
	return &SubmissionService{
		DB:                db,
		SubmissionRepo:    submissionRepo,
		ExamRepo:          examRepo,
		CourseRepo:        courseRepo,
		ParticipationRepo: participationRepo,
		AccountRepo:       accountRepo,
		Email:             email,
	}
}

// Submit 学员交卷。校验报名状态和答题次数后落库，随即自动判分。
// 判分失败时提交停留在 pending，由后台定时任务重试。
func (s *SubmissionService) Submit(clientID, courseID, examID uint, answers []model.SubmissionAnswer, timeSpent int) (*model.ExamSubmission, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamPublished {
		return nil, util.ErrExamNotPublished
	}

	enrolled, err := s.ParticipationRepo.IsEnrolled(clientID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrNotEnrolled
	}

	attempts, err := s.SubmissionRepo.CountAttempts(clientID, examID)
	if err != nil {
		return nil, err
	}
	maxAttempts := 1
	if exam.AllowRetakes && exam.MaxAttempts > 0 {
		maxAttempts = exam.MaxAttempts
	}
	if attempts >= int64(maxAttempts) {
		return nil, util.ErrAttemptLimitReached
	}

	submission := &model.ExamSubmission{
		ClientID:       clientID,
		CourseID:       courseID,
		ExamID:         examID,
		SubmissionDate: time.Now(),
		TimeSpent:      timeSpent,
		Status:         model.SubmissionPending,
	}
	if err := submission.SetAnswers(answers); err != nil {
		return nil, err
	}

	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	if err := s.Grade(submission, exam); err != nil {
		logger.Log.Error("auto grading failed, submission left pending",
			zap.Uint("submission_id", submission.ID), zap.Error(err))
	}
	return submission, nil
}

// Grade 判分并在同一事务内写回提交记录和报名完成状态。
// 只处理 pending 状态的提交，判分后不可重复执行。
func (s *SubmissionService) Grade(submission *model.ExamSubmission, exam *model.Exam) error {
	if submission.Status != model.SubmissionPending {
		return util.ErrSubmissionNotPending
	}

	answers, err := submission.DecodeAnswers()
	if err != nil {
		return err
	}

	result, err := GradeSubmission(exam, answers)
	if err != nil {
		return err
	}

	// 判分结果先落到副本，事务成功后再回写，
	// 避免持久化失败时内存里的提交已经翻成终态
	graded := *submission
	if err := applyGradeResult(&graded, result); err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&graded).Error; err != nil {
			return err
		}
		if result.Passed {
			return s.completeParticipation(tx, &graded)
		}
		return nil
	})
	if err != nil {
		return err
	}
	*submission = graded

	label := "failed"
	if result.Passed {
		label = "passed"
	}
	monitoring.ExamGradedCounter.WithLabelValues(label).Inc()

	s.notifyResult(submission, exam, result.Passed)
	return nil
}

// applyGradeResult 把判分结果写入提交记录（分数、终态、逐题正误）
func applyGradeResult(submission *model.ExamSubmission, result *GradeResult) error {
	submission.Score = result.Score
	if result.Passed {
		submission.Status = model.SubmissionGraded
	} else {
		submission.Status = model.SubmissionFailed
	}
	return submission.SetAnswers(result.Answers)
}

// completeParticipation 考试通过后的联动：仅当该考试在本课程中被标记
// 为结业必修时，才把对应报名记录置为已完成
func (s *SubmissionService) completeParticipation(tx *gorm.DB, submission *model.ExamSubmission) error {
	var course model.Course
	if err := tx.First(&course, submission.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	cfg, err := course.ExamConfigFor(submission.ExamID)
	if err != nil {
		return err
	}
	if cfg == nil || !cfg.RequiredToComplete {
		return nil
	}

	return tx.Model(&model.Participation{}).
		Where("client_id = ? AND course_id = ?", submission.ClientID, submission.CourseID).
		Updates(map[string]interface{}{
			"exam_completed": true,
			"status":         model.ParticipationCompleted,
		}).Error
}

func (s *SubmissionService) notifyResult(submission *model.ExamSubmission, exam *model.Exam, passed bool) {
	if s.Email == nil {
		return
	}
	account, err := s.AccountRepo.FindByID(submission.ClientID)
	if err != nil {
		return
	}
	go s.Email.SendExamResultEmail(account.Email, account.FullName, exam.Title, submission.Score, passed)
}

// SweepPending 重试卡在 pending 的提交，由后台定时任务调用
func (s *SubmissionService) SweepPending(batchSize int) {
	pending, err := s.SubmissionRepo.FindPending(batchSize)
	if err != nil {
		logger.Log.Error("failed to load pending submissions", zap.Error(err))
		return
	}

	for i := range pending {
		submission := &pending[i]
		exam, err := s.ExamRepo.FindByID(submission.ExamID)
		if err != nil {
			logger.Log.Warn("pending submission references missing exam",
				zap.Uint("submission_id", submission.ID),
				zap.Uint("exam_id", submission.ExamID))
			continue
		}
		if err := s.Grade(submission, exam); err != nil {
			logger.Log.Error("retry grading failed",
				zap.Uint("submission_id", submission.ID), zap.Error(err))
		}
	}
}

func (s *SubmissionService) GetOwn(clientID, submissionID uint) (*model.ExamSubmission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if submission.ClientID != clientID {
		return nil, util.ErrPermissionDenied
	}
	return submission, nil
}

// ListOwn 学员查询答卷，行级范围由策略表给出
func (s *SubmissionService) ListOwn(actor *access.Actor) ([]model.ExamSubmission, error) {
	d := access.Can(actor, access.Submissions, access.Read)
	if !d.Allowed {
		return nil, util.ErrPermissionDenied
	}
	return s.SubmissionRepo.FindScoped(d, actor)
}

func (s *SubmissionService) List(examID, courseID uint, status model.SubmissionStatus, page, pageSize int) ([]model.ExamSubmission, int64, error) {
	return s.SubmissionRepo.FindAll(examID, courseID, status, page, pageSize)
}

// AddFeedback 管理端补充评语，不影响分数和状态
func (s *SubmissionService) AddFeedback(submissionID uint, feedback string) (*model.ExamSubmission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}

	submission.Feedback = feedback
	if err := s.SubmissionRepo.Update(submission); err != nil {
		return nil, err
	}
	return submission, nil
}
