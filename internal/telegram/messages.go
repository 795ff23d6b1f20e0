package telegram

import (
	"context"
	"strings"

	"spotted_bot/internal/logger"
	"spotted_bot/internal/telegram/models"
	"spotted_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// handleDefault 处理所有非命令消息
// 两条路径：社区群里的频道自动转发钩子，以及私聊会话状态机
func (b *Bot) handleDefault(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	// comments 模式：频道新投稿被自动转发进社区群，在转发下挂署名与投票键盘
	if b.isChannelAutoForward(msg) {
		b.handleChannelForward(ctx, msg)
		return
	}

	if msg.Chat.Type != "private" || msg.From == nil {
		return
	}

	session, ok := b.sessions.Get(msg.From.ID)
	if !ok {
		return
	}

	switch session.State {
	case StatePosting:
		b.handlePostingMessage(ctx, msg)
	case StateConfirm:
		// 内容已缓冲，提醒用户用按钮定夺
		b.sendMessage(ctx, msg.Chat.ID, "☝️ 请先用上面的按钮确认或取消当前投稿")
	case StateReportingSpot:
		b.handleReportSpotMessage(ctx, msg)
	case StateReportingUser:
		b.handleReportUserTarget(ctx, msg, session)
	case StateReportingUserReason:
		b.handleReportUserReason(ctx, msg, session)
	default:
		logger.L().Warnf("Unknown session state %q for user %d", session.State, msg.From.ID)
		b.sessions.End(msg.From.ID)
	}
}

// isChannelAutoForward 判断消息是否为目标频道到社区群的自动转发
func (b *Bot) isChannelAutoForward(msg *botModels.Message) bool {
	if !b.cfg.Comments || msg.Chat.ID != b.cfg.CommunityGroupID {
		return false
	}
	if msg.ForwardOrigin == nil || msg.ForwardOrigin.MessageOriginChannel == nil {
		return false
	}
	return msg.ForwardOrigin.MessageOriginChannel.Chat.ID == b.cfg.ChannelID
}

// handleChannelForward 消费一次性署名凭证，为社区群里的转发挂署名与投票键盘
func (b *Bot) handleChannelForward(ctx context.Context, msg *botModels.Message) {
	origin := msg.ForwardOrigin.MessageOriginChannel

	err := b.registryService.AttachCredit(ctx,
		b.cfg.CommunityGroupID, msg.ID, origin.Chat.ID, origin.MessageID)
	if err != nil {
		logger.L().Errorf("Failed to attach credit for channel message %d: %v", origin.MessageID, err)
	}
}

// handlePostingMessage 投稿流程：摄取内容并请求确认
func (b *Bot) handlePostingMessage(ctx context.Context, msg *botModels.Message) {
	content, err := models.ContentFromMessage(msg)
	if err != nil {
		// 不支持的内容类型，留在 posting 状态等待下一条
		b.sendErrorMessage(ctx, msg.Chat.ID,
			"暂不支持这种内容\n\n支持：文字、图片、语音、音频、视频、动图、贴纸、投票")
		return
	}

	b.sessions.Put(msg.From.ID, Session{
		State:   StateConfirm,
		Content: content,
	})

	params := &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "👆 确认投稿这条内容吗？",
		ReplyMarkup: service.ConfirmKeyboard(),
		ReplyParameters: &botModels.ReplyParameters{
			MessageID: msg.ID,
		},
	}
	if _, err := b.bot.SendMessage(ctx, params); err != nil {
		logger.L().Errorf("Failed to send confirm prompt to chat %d: %v", msg.Chat.ID, err)
	}
}

// handleReportSpotMessage 频道投稿举报流程：校验转发来源后提交举报
func (b *Bot) handleReportSpotMessage(ctx context.Context, msg *botModels.Message) {
	if msg.ForwardOrigin == nil || msg.ForwardOrigin.MessageOriginChannel == nil ||
		msg.ForwardOrigin.MessageOriginChannel.Chat.ID != b.cfg.ChannelID {
		b.sendErrorMessage(ctx, msg.Chat.ID, "请转发目标频道里的投稿，而不是其他消息")
		return
	}

	origin := msg.ForwardOrigin.MessageOriginChannel
	b.sessions.End(msg.From.ID)

	report := &models.Report{
		Kind:             models.ReportPost,
		ReporterID:       msg.From.ID,
		ReporterUsername: msg.From.Username,
		TargetChatID:     origin.Chat.ID,
		TargetMessageID:  origin.MessageID,
	}

	if err := b.reportService.FileReport(ctx, report); err != nil {
		logger.L().Errorf("Failed to file post report from user %d: %v", msg.From.ID, err)
		b.sendErrorMessage(ctx, msg.Chat.ID, "举报发送失败，请稍后重试")
		return
	}

	b.sendSuccessMessage(ctx, msg.Chat.ID, "举报已提交，感谢你的反馈")
}

// handleReportUserTarget 用户举报流程：记录目标并询问理由
func (b *Bot) handleReportUserTarget(ctx context.Context, msg *botModels.Message, session Session) {
	target := strings.TrimSpace(msg.Text)
	if target == "" {
		b.sendErrorMessage(ctx, msg.Chat.ID, "请用文字发送被举报用户的 @用户名 或 ID")
		return
	}

	session.State = StateReportingUserReason
	session.ReportTarget = target
	b.sessions.Put(msg.From.ID, session)

	b.sendMessage(ctx, msg.Chat.ID, "✏️ 请描述举报理由")
}

// handleReportUserReason 用户举报流程：收到理由后提交举报
func (b *Bot) handleReportUserReason(ctx context.Context, msg *botModels.Message, session Session) {
	reason := strings.TrimSpace(msg.Text)
	if reason == "" {
		b.sendErrorMessage(ctx, msg.Chat.ID, "请用文字描述举报理由")
		return
	}

	b.sessions.End(msg.From.ID)

	report := &models.Report{
		Kind:             models.ReportUser,
		ReporterID:       msg.From.ID,
		ReporterUsername: msg.From.Username,
		TargetUser:       session.ReportTarget,
		Reason:           reason,
	}

	if err := b.reportService.FileReport(ctx, report); err != nil {
		logger.L().Errorf("Failed to file user report from user %d: %v", msg.From.ID, err)
		b.sendErrorMessage(ctx, msg.Chat.ID, "举报发送失败，请稍后重试")
		return
	}

	b.sendSuccessMessage(ctx, msg.Chat.ID, "举报已提交，感谢你的反馈")
}
