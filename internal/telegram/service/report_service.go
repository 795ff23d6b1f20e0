package service

import (
	"context"
	"fmt"

	"spotted_bot/internal/logger"
	"spotted_bot/internal/telegram/models"
)

// ReportService 举报转发服务
// 举报是一次性事件：格式化后原样转发到审核群，不落库
type ReportService struct {
	transport    Transport
	adminGroupID int64
}

// NewReportService 创建举报服务
func NewReportService(transport Transport, adminGroupID int64) *ReportService {
	return &ReportService{
		transport:    transport,
		adminGroupID: adminGroupID,
	}
}

// FileReport 将举报转发给管理员
// 转发失败返回错误，调用方给举报人一条通用失败提示即可，不影响其他流程
func (s *ReportService) FileReport(ctx context.Context, report *models.Report) error {
	reporter := fmt.Sprintf("%d", report.ReporterID)
	if report.ReporterUsername != "" {
		reporter = "@" + report.ReporterUsername
	}

	switch report.Kind {
	case models.ReportPost:
		if _, err := s.transport.SendMessage(ctx, SendMessageParams{
			ChatID: s.adminGroupID,
			Text:   fmt.Sprintf("🚨 投稿被举报\n举报人: %s\n被举报的投稿见下一条消息", reporter),
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}

		if _, err := s.transport.CopyMessage(ctx, CopyMessageParams{
			ChatID:     s.adminGroupID,
			FromChatID: report.TargetChatID,
			MessageID:  report.TargetMessageID,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}

	case models.ReportUser:
		text := fmt.Sprintf("🚨 用户被举报\n举报人: %s\n被举报用户: %s\n理由: %s",
			reporter, report.TargetUser, report.Reason)
		if _, err := s.transport.SendMessage(ctx, SendMessageParams{
			ChatID: s.adminGroupID,
			Text:   text,
		}); err != nil {
			return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}

	default:
		return fmt.Errorf("unknown report kind: %q", report.Kind)
	}

	logger.L().Infof("Report forwarded to admins: kind=%s reporter=%d", report.Kind, report.ReporterID)
	return nil
}
