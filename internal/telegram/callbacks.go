package telegram

import (
	"context"
	"errors"
	"fmt"

	"spotted_bot/internal/logger"
	"spotted_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// handleCallback 处理所有内联键盘回调
func (b *Bot) handleCallback(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	action, args, err := service.ParseCallback(query.Data)
	if err != nil {
		// 畸形回调数据：记录后静默应答，不给任何反馈面
		logger.L().Warnf("Malformed callback data from user %d: %v", query.From.ID, err)
		b.answerCallback(ctx, query.ID, "")
		return
	}

	switch action {
	case service.CallbackActionNoop:
		b.answerCallback(ctx, query.ID, "")
	case service.CallbackActionConfirm:
		b.handleConfirmCallback(ctx, query, args)
	case service.CallbackActionVote:
		b.handleVoteCallback(ctx, query, args)
	case service.CallbackActionPubVote:
		b.handlePubVoteCallback(ctx, query, args)
	default:
		logger.L().Warnf("Unknown callback action %q from user %d", action, query.From.ID)
		b.answerCallback(ctx, query.ID, "")
	}
}

// handleConfirmCallback 投稿确认按钮：submit 提交审核，cancel 放弃
func (b *Bot) handleConfirmCallback(ctx context.Context, query *botModels.CallbackQuery, args []string) {
	if len(args) != 1 {
		b.answerCallback(ctx, query.ID, "")
		return
	}

	userID := query.From.ID
	session, ok := b.sessions.Get(userID)
	if !ok || session.State != StateConfirm || session.Content == nil {
		b.answerCallback(ctx, query.ID, "会话已过期，请重新 /spot")
		b.stripKeyboard(ctx, query)
		return
	}

	switch args[0] {
	case "cancel":
		b.sessions.End(userID)
		b.stripKeyboard(ctx, query)
		b.answerCallback(ctx, query.ID, "已取消")
		b.sendMessage(ctx, userID, "🗑 投稿已取消")

	case "submit":
		sign := query.From.Username
		if sign == "" {
			sign = query.From.FirstName
		}

		// 确认后会话一律结束，发送失败时用户需重新 /spot
		b.sessions.End(userID)
		b.stripKeyboard(ctx, query)

		if _, err := b.moderationService.Submit(ctx, session.Content, userID, sign); err != nil {
			logger.L().Errorf("Failed to submit post for user %d: %v", userID, err)
			b.answerCallback(ctx, query.ID, "发送失败")
			b.sendErrorMessage(ctx, userID, "投稿发送失败，请稍后重新 /spot")
			return
		}

		b.answerCallback(ctx, query.ID, "")
		b.sendSuccessMessage(ctx, userID, "投稿已提交审核，通过后会通知你")

	default:
		b.answerCallback(ctx, query.ID, "")
	}
}

// handleVoteCallback 审核群投票按钮
func (b *Bot) handleVoteCallback(ctx context.Context, query *botModels.CallbackQuery, args []string) {
	if len(args) != 2 {
		b.answerCallback(ctx, query.ID, "")
		return
	}
	vote, pendingID := args[0], args[1]

	outcome, err := b.moderationService.CastVote(ctx, pendingID, query.From.ID, vote, "")
	if err != nil {
		if errors.Is(err, service.ErrUnknownPendingPost) {
			b.answerCallback(ctx, query.ID, "该投稿已被处理")
			return
		}
		logger.L().Errorf("Failed to cast vote on %s by admin %d: %v", pendingID, query.From.ID, err)
		b.answerCallback(ctx, query.ID, "操作失败，请稍后重试")
		return
	}

	switch {
	case outcome.AlreadyFinalized:
		b.answerCallback(ctx, query.ID, "该投稿已被处理")
	case outcome.Finalized && outcome.Approved:
		b.answerCallback(ctx, query.ID, "✅ 已通过并发布")
	case outcome.Finalized:
		b.answerCallback(ctx, query.ID, "❌ 已拒绝")
	default:
		b.answerCallback(ctx, query.ID,
			fmt.Sprintf("已记录 🟢 %d / 🔴 %d", outcome.Tally.Approve, outcome.Tally.Reject))
	}
}

// handlePubVoteCallback 已发布投稿的社区投票按钮
func (b *Bot) handlePubVoteCallback(ctx context.Context, query *botModels.CallbackQuery, args []string) {
	if len(args) != 1 {
		b.answerCallback(ctx, query.ID, "")
		return
	}

	// 目标消息不可访问时无从定位投稿，直接应答
	if query.Message.Message == nil {
		b.answerCallback(ctx, query.ID, "")
		return
	}
	msg := query.Message.Message

	tally, err := b.registryService.RecordVote(ctx, msg.Chat.ID, msg.ID, query.From.ID, args[0])
	if err != nil {
		if errors.Is(err, service.ErrUnknownPublishedPost) {
			b.answerCallback(ctx, query.ID, "这条消息不支持投票")
			return
		}
		if errors.Is(err, service.ErrInvalidVote) {
			b.answerCallback(ctx, query.ID, "")
			return
		}
		logger.L().Errorf("Failed to record community vote on %d/%d: %v", msg.Chat.ID, msg.ID, err)
		b.answerCallback(ctx, query.ID, "操作失败，请稍后重试")
		return
	}

	b.answerCallback(ctx, query.ID, fmt.Sprintf("👍 %d · 👎 %d", tally.Up, tally.Down))
}

// stripKeyboard 摘除回调消息上的内联键盘，失败仅记日志
func (b *Bot) stripKeyboard(ctx context.Context, query *botModels.CallbackQuery) {
	msg := query.Message.Message
	if msg == nil {
		return
	}

	if _, err := b.bot.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	}); err != nil {
		logger.L().Debugf("Failed to strip keyboard on %d/%d: %v", msg.Chat.ID, msg.ID, err)
	}
}
