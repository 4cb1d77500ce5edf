package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"vendor_hub_v1_202608/internal/config"
)

// MailService 通过 HTTP 邮件网关发通知
// 所有发送都是 best-effort：失败只记日志，绝不阻塞主流程
type MailService struct {
	client *resty.Client
	cfg    config.MailConfig
	logger *zap.Logger
}

func NewMailService(cfg config.MailConfig, logger *zap.Logger) *MailService {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(2)
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}

	return &MailService{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

type mailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send 同步发送一封邮件
func (s *MailService) Send(ctx context.Context, to, subject, body string) error {
	if s.cfg.GatewayURL == "" {
		s.logger.Debug("邮件网关未配置，跳过发送", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(mailPayload{
			From:    s.cfg.From,
			To:      to,
			Subject: subject,
			Body:    body,
		}).
		Post(s.cfg.GatewayURL + "/messages")
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("mail gateway error: %d", resp.StatusCode())
	}
	return nil
}

// SendAsync 异步发送，调用方不关心结果
func (s *MailService) SendAsync(to, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.Send(ctx, to, subject, body); err != nil {
			s.logger.Warn("通知邮件发送失败",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}
