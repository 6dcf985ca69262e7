package service

import (
	"academy_backend/internal/config"
	"academy_backend/pkg/logger"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// EmailService 通过 Brevo 的事务邮件接口发送通知。
// 未配置 API Key 时降级为只记录日志，开发环境无需真实发信。
type EmailService struct {
	Cfg    *config.EmailConfig
	client *http.Client
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		Cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type emailRecipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type emailPayload struct {
	Sender      emailRecipient   `json:"sender"`
	To          []emailRecipient `json:"to"`
	Subject     string           `json:"subject"`
	HTMLContent string           `json:"htmlContent"`
}

func (s *EmailService) Send(ctx context.Context, toEmail, toName, subject, htmlContent string) error {
	if !s.Cfg.Active || s.Cfg.APIKey == "" {
		logger.Log.Info("email sending disabled, skipping",
			zap.String("to", toEmail),
			zap.String("subject", subject))
		return nil
	}

	payload := emailPayload{
		Sender: emailRecipient{
			Email: s.Cfg.SenderEmail,
			Name:  s.Cfg.SenderName,
		},
		To:          []emailRecipient{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.Cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("brevo responded with status %d", resp.StatusCode)
	}

	logger.Log.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

func (s *EmailService) SendWelcomeEmail(toEmail, toName string) {
	subject := "欢迎加入培训平台"
	html := fmt.Sprintf("<h1>Welcome, %s!</h1><p>您的学员账号已创建成功，现在可以浏览课程并报名学习。</p>", toName)
	if err := s.Send(context.Background(), toEmail, toName, subject, html); err != nil {
		logger.Log.Error("failed to send welcome email", zap.String("to", toEmail), zap.Error(err))
	}
}

func (s *EmailService) SendEnrollmentEmail(toEmail, toName, courseTitle string) {
	subject := fmt.Sprintf("报名成功：%s", courseTitle)
	html := fmt.Sprintf("<p>%s，您已成功报名课程《%s》，祝学习顺利！</p>", toName, courseTitle)
	if err := s.Send(context.Background(), toEmail, toName, subject, html); err != nil {
		logger.Log.Error("failed to send enrollment email", zap.String("to", toEmail), zap.Error(err))
	}
}

func (s *EmailService) SendExamResultEmail(toEmail, toName, examTitle string, score float64, passed bool) {
	result := "未通过"
	if passed {
		result = "已通过"
	}
	subject := fmt.Sprintf("考试结果：%s", examTitle)
	html := fmt.Sprintf("<p>%s，您在《%s》中的得分为 %.1f 分，%s。</p>", toName, examTitle, score, result)
	if err := s.Send(context.Background(), toEmail, toName, subject, html); err != nil {
		logger.Log.Error("failed to send exam result email", zap.String("to", toEmail), zap.Error(err))
	}
}
