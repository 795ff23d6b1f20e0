package service

import (
	"context"
	"fmt"

	"spotted_bot/internal/telegram/models"

	botModels "github.com/go-telegram/bot/models"
)

// CopyContent 将投稿内容复制到目标会话，返回新消息 ID
// 各类型语义：
//   - poll: 从快照重建（SendPoll 强制匿名），原投票人数据不会到达目标会话
//   - text: 重新发送并保留富文本实体，链接预览由内容快照决定
//   - 其他: 按 (来源会话, 消息 ID) 引用复制
func CopyContent(ctx context.Context, transport Transport, content models.Content, chatID int64, markup botModels.ReplyMarkup) (int, error) {
	switch content.Kind {
	case models.ContentPoll:
		if content.Poll == nil {
			return 0, fmt.Errorf("poll content without snapshot")
		}
		return transport.SendPoll(ctx, SendPollParams{
			ChatID:                chatID,
			Question:              content.Poll.Question,
			Options:               content.Poll.Options,
			Type:                  content.Poll.Type,
			AllowsMultipleAnswers: content.Poll.AllowsMultipleAnswers,
			CorrectOptionID:       content.Poll.CorrectOptionID,
			ReplyMarkup:           markup,
		})

	case models.ContentText:
		return transport.SendMessage(ctx, SendMessageParams{
			ChatID:             chatID,
			Text:               content.Text,
			Entities:           content.Entities,
			ReplyMarkup:        markup,
			DisableLinkPreview: content.DisableLinkPreview,
		})

	default:
		return transport.CopyMessage(ctx, CopyMessageParams{
			ChatID:      chatID,
			FromChatID:  content.SrcChatID,
			MessageID:   content.SrcMessageID,
			ReplyMarkup: markup,
		})
	}
}
