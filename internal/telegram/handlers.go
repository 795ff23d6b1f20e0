package telegram

import (
	"context"

	"spotted_bot/internal/logger"
	"spotted_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// registerHandlers 注册所有命令与回调处理器（异步执行）
func (b *Bot) registerHandlers() {
	// 普通命令
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact,
		b.asyncHandler(b.handleStart))
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact,
		b.asyncHandler(b.handleCancel))

	// 私聊流程入口
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/spot", bot.MatchTypeExact,
		b.asyncHandler(b.RequirePrivateChat(b.handleSpot)))
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/report_user", bot.MatchTypeExact,
		b.asyncHandler(b.RequirePrivateChat(b.handleReportUser)))
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/report", bot.MatchTypeExact,
		b.asyncHandler(b.RequirePrivateChat(b.handleReportSpot)))

	// 运维命令：仅在备份群内生效，其他来源静默忽略
	b.bot.RegisterHandler(bot.HandlerTypeMessageText, "/db_backup", bot.MatchTypeExact,
		b.asyncHandler(b.handleDBBackup))

	// 回调按钮
	for _, action := range []string{
		service.CallbackActionConfirm,
		service.CallbackActionVote,
		service.CallbackActionPubVote,
		service.CallbackActionNoop,
	} {
		b.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, action, bot.MatchTypePrefix,
			b.asyncHandler(b.handleCallback))
	}

	logger.L().Debug("All handlers registered with async execution")
}

// handleStart 处理 /start 命令
func (b *Bot) handleStart(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	welcomeText := "👋 你好, " + update.Message.From.FirstName + "!\n\n" +
		"这里是匿名投稿 Bot。\n\n" +
		"可用命令:\n" +
		"/spot - 匿名投稿\n" +
		"/report - 举报频道投稿\n" +
		"/report_user - 举报用户\n" +
		"/cancel - 取消当前操作"

	b.sendMessage(ctx, update.Message.Chat.ID, welcomeText)
}

// handleSpot 处理 /spot 命令，进入投稿流程
func (b *Bot) handleSpot(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if err := b.sessions.Begin(update.Message.From.ID, string(update.Message.Chat.Type), StatePosting); err != nil {
		b.sendErrorMessage(ctx, update.Message.Chat.ID, "此命令只能在私聊中使用，请私聊我")
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID,
		"📝 请发送你要投稿的内容\n\n支持：文字、图片、语音、音频、视频、动图、贴纸、投票\n随时可用 /cancel 取消")
}

// handleCancel 处理 /cancel 命令，结束当前会话
func (b *Bot) handleCancel(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if b.sessions.End(update.Message.From.ID) {
		b.sendSuccessMessage(ctx, update.Message.Chat.ID, "已取消当前操作")
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID, "当前没有进行中的操作")
}

// handleReportSpot 处理 /report 命令，进入频道投稿举报流程
func (b *Bot) handleReportSpot(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if err := b.sessions.Begin(update.Message.From.ID, string(update.Message.Chat.Type), StateReportingSpot); err != nil {
		b.sendErrorMessage(ctx, update.Message.Chat.ID, "此命令只能在私聊中使用，请私聊我")
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID,
		"🚨 请把你要举报的频道投稿转发给我\n随时可用 /cancel 取消")
}

// handleReportUser 处理 /report_user 命令，进入用户举报流程
func (b *Bot) handleReportUser(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if err := b.sessions.Begin(update.Message.From.ID, string(update.Message.Chat.Type), StateReportingUser); err != nil {
		b.sendErrorMessage(ctx, update.Message.Chat.ID, "此命令只能在私聊中使用，请私聊我")
		return
	}

	b.sendMessage(ctx, update.Message.Chat.ID,
		"🚨 请发送被举报用户的 @用户名 或 ID\n随时可用 /cancel 取消")
}

// handleDBBackup 处理 /db_backup 命令
// 只响应配置的备份群，其它来源一律静默忽略，不暴露命令存在
func (b *Bot) handleDBBackup(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
	if update.Message == nil {
		return
	}

	if b.cfg.BackupGroupID == 0 || update.Message.Chat.ID != b.cfg.BackupGroupID {
		logger.L().Debugf("Ignoring /db_backup from chat %d", update.Message.Chat.ID)
		return
	}

	if err := b.runBackup(ctx, update.Message.Chat.ID); err != nil {
		logger.L().Errorf("Database backup failed: %v", err)
		b.sendErrorMessage(ctx, update.Message.Chat.ID, "备份失败，请查看日志")
		return
	}
}
