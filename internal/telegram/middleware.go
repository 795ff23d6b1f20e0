package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"

	"spotted_bot/internal/logger"
)

// RequirePrivateChat 中间件：仅允许在私聊中执行
func (b *Bot) RequirePrivateChat(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}

		if update.Message.Chat.Type != "private" {
			logger.L().Debugf("Private-only command used in chat %d by user %d",
				update.Message.Chat.ID, update.Message.From.ID)
			b.sendErrorMessage(ctx, update.Message.Chat.ID, "此命令只能在私聊中使用，请私聊我")
			return
		}

		next(ctx, botInstance, update)
	}
}
