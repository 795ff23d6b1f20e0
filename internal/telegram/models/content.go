package models

import (
	"errors"

	botModels "github.com/go-telegram/bot/models"
)

// ErrUnsupportedContent 消息不属于任何受支持的投稿类型
var ErrUnsupportedContent = errors.New("unsupported content type")

// ContentKind 投稿内容类型
type ContentKind string

const (
	ContentText      ContentKind = "text"
	ContentPhoto     ContentKind = "photo"
	ContentVoice     ContentKind = "voice"
	ContentAudio     ContentKind = "audio"
	ContentVideo     ContentKind = "video"
	ContentAnimation ContentKind = "animation"
	ContentSticker   ContentKind = "sticker"
	ContentPoll      ContentKind = "poll"
)

// PollSnapshot 投票内容快照
// 只保留重建投票所需的字段，绝不保留原始投票人数据
type PollSnapshot struct {
	Question              string   `bson:"question"`
	Options               []string `bson:"options"`
	Type                  string   `bson:"type"`
	AllowsMultipleAnswers bool     `bson:"allows_multiple_answers"`
	CorrectOptionID       int      `bson:"correct_option_id"`
}

// Content 投稿内容（tagged union，类型在接收时一次性确定）
type Content struct {
	Kind               ContentKind                `bson:"kind"`
	SrcChatID          int64                      `bson:"src_chat_id"`    // 原始消息所在会话
	SrcMessageID       int                        `bson:"src_message_id"` // 原始消息 ID
	Text               string                     `bson:"text,omitempty"`
	Entities           []botModels.MessageEntity  `bson:"entities,omitempty"`
	DisableLinkPreview bool                       `bson:"disable_link_preview,omitempty"`
	Poll               *PollSnapshot              `bson:"poll,omitempty"`
}

// ContentFromMessage 将入站消息归类为受支持的投稿类型之一
// 无法归类时返回 ErrUnsupportedContent
func ContentFromMessage(msg *botModels.Message) (*Content, error) {
	if msg == nil {
		return nil, ErrUnsupportedContent
	}

	content := &Content{
		SrcChatID:    msg.Chat.ID,
		SrcMessageID: msg.ID,
	}

	switch {
	case msg.Poll != nil:
		content.Kind = ContentPoll
		options := make([]string, 0, len(msg.Poll.Options))
		for _, option := range msg.Poll.Options {
			options = append(options, option.Text)
		}
		content.Poll = &PollSnapshot{
			Question:              msg.Poll.Question,
			Options:               options,
			Type:                  msg.Poll.Type,
			AllowsMultipleAnswers: msg.Poll.AllowsMultipleAnswers,
			CorrectOptionID:       msg.Poll.CorrectOptionID,
		}
	case msg.Text != "":
		content.Kind = ContentText
		content.Text = msg.Text
		content.Entities = msg.Entities
	case len(msg.Photo) > 0:
		content.Kind = ContentPhoto
	case msg.Voice != nil:
		content.Kind = ContentVoice
	case msg.Audio != nil:
		content.Kind = ContentAudio
	case msg.Video != nil:
		content.Kind = ContentVideo
	case msg.Animation != nil:
		content.Kind = ContentAnimation
	case msg.Sticker != nil:
		content.Kind = ContentSticker
	default:
		return nil, ErrUnsupportedContent
	}

	return content, nil
}
