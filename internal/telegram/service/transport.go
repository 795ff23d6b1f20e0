package service

import (
	"context"

	botModels "github.com/go-telegram/bot/models"
)

// SendMessageParams 文本消息发送参数
type SendMessageParams struct {
	ChatID             int64
	Text               string
	Entities           []botModels.MessageEntity
	ReplyMarkup        botModels.ReplyMarkup
	ReplyToMessageID   int  // 大于 0 时作为回复发送
	DisableLinkPreview bool // 是否关闭链接预览
}

// SendPollParams 投票发送参数
// 传输层实现必须强制匿名发送，绝不携带原投票的投票人信息
type SendPollParams struct {
	ChatID                int64
	Question              string
	Options               []string
	Type                  string
	AllowsMultipleAnswers bool
	CorrectOptionID       int
	ReplyMarkup           botModels.ReplyMarkup
}

// CopyMessageParams 消息复制参数
type CopyMessageParams struct {
	ChatID      int64
	FromChatID  int64
	MessageID   int
	ReplyMarkup botModels.ReplyMarkup
}

// Transport 聊天传输层
// 由 telegram 包基于 go-telegram/bot 实现；所有方法返回可恢复错误而不是崩溃
type Transport interface {
	// SendMessage 发送文本消息，返回目标会话中的消息 ID
	SendMessage(ctx context.Context, params SendMessageParams) (int, error)

	// SendPoll 重建一个匿名投票，返回目标会话中的消息 ID
	SendPoll(ctx context.Context, params SendPollParams) (int, error)

	// CopyMessage 按引用复制消息（不带转发来源），返回目标会话中的消息 ID
	CopyMessage(ctx context.Context, params CopyMessageParams) (int, error)

	// EditReplyMarkup 替换消息的内联键盘
	EditReplyMarkup(ctx context.Context, chatID int64, messageID int, markup botModels.ReplyMarkup) error
}
