package telegram

import (
	"context"

	"spotted_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
)

// botTransport 基于 go-telegram/bot 的传输层实现
type botTransport struct {
	bot *bot.Bot
}

// newBotTransport 创建传输层实例
func newBotTransport(b *bot.Bot) service.Transport {
	return &botTransport{bot: b}
}

// SendMessage 发送文本消息
func (t *botTransport) SendMessage(ctx context.Context, p service.SendMessageParams) (int, error) {
	params := &bot.SendMessageParams{
		ChatID:      p.ChatID,
		Text:        p.Text,
		Entities:    p.Entities,
		ReplyMarkup: p.ReplyMarkup,
	}

	if p.ReplyToMessageID > 0 {
		params.ReplyParameters = &botModels.ReplyParameters{
			MessageID: p.ReplyToMessageID,
		}
	}

	if p.DisableLinkPreview {
		disabled := true
		params.LinkPreviewOptions = &botModels.LinkPreviewOptions{
			IsDisabled: &disabled,
		}
	}

	msg, err := t.bot.SendMessage(ctx, params)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// SendPoll 重建投票
// IsAnonymous 固定为 true：复制出的投票绝不暴露原投票人
func (t *botTransport) SendPoll(ctx context.Context, p service.SendPollParams) (int, error) {
	options := make([]botModels.InputPollOption, 0, len(p.Options))
	for _, option := range p.Options {
		options = append(options, botModels.InputPollOption{Text: option})
	}

	anonymous := true
	msg, err := t.bot.SendPoll(ctx, &bot.SendPollParams{
		ChatID:                p.ChatID,
		Question:              p.Question,
		Options:               options,
		IsAnonymous:           &anonymous,
		Type:                  p.Type,
		AllowsMultipleAnswers: p.AllowsMultipleAnswers,
		CorrectOptionID:       p.CorrectOptionID,
		ReplyMarkup:           p.ReplyMarkup,
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// CopyMessage 按引用复制消息
func (t *botTransport) CopyMessage(ctx context.Context, p service.CopyMessageParams) (int, error) {
	msgID, err := t.bot.CopyMessage(ctx, &bot.CopyMessageParams{
		ChatID:      p.ChatID,
		FromChatID:  p.FromChatID,
		MessageID:   p.MessageID,
		ReplyMarkup: p.ReplyMarkup,
	})
	if err != nil {
		return 0, err
	}
	return msgID.ID, nil
}

// EditReplyMarkup 替换消息的内联键盘
func (t *botTransport) EditReplyMarkup(ctx context.Context, chatID int64, messageID int, markup botModels.ReplyMarkup) error {
	_, err := t.bot.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: markup,
	})
	return err
}
