package util

import "errors"

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrEmailRegistered        = errors.New("该邮箱已被注册")
	ErrAccountNotFound        = errors.New("账号不存在")
	ErrCourseNotFound         = errors.New("course not found")
	ErrExamNotFound           = errors.New("exam not found")
	ErrExamNotPublished       = errors.New("exam not published or not accessible")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrSubmissionNotPending   = errors.New("submission already graded")
	ErrAttemptLimitReached    = errors.New("maximum attempts reached")
	ErrNotEnrolled            = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled        = errors.New("already enrolled in this course")
	ErrPriceRequired          = errors.New("price is required for paid courses and must be greater than 0")
	ErrQuestionNeedsCorrect   = errors.New("multiple-choice question must have at least one correct answer")
	ErrInvalidRole            = errors.New("unknown staff role")
	ErrInvalidRating          = errors.New("rating must be between 1 and 5")
	ErrInvalidVideoExt        = errors.New("unsupported video extension")
	ErrInvalidStatusChange    = errors.New("invalid processing status transition")
	ErrUploadProgressNotFound = errors.New("upload progress not found")
)
