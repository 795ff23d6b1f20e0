package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 社区投票值
const (
	CommunityVoteUp   = "up"
	CommunityVoteDown = "down"
)

// PublishedPost 已发布投稿
// 每个 (chat_id, message_id) 至多一条记录
type PublishedPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ChatID    int64              `bson:"chat_id"`    // 发布目标（频道或社区群）ID
	MessageID int                `bson:"message_id"` // 发布消息 ID
	Votes     map[string]string  `bson:"votes"`      // 用户 ID -> up/down，每人至多一票
	CreatedAt time.Time          `bson:"created_at"`
}

// CommunityTally 社区投票计数
type CommunityTally struct {
	Up   int
	Down int
}

// Tally 统计当前社区投票
func (p *PublishedPost) Tally() CommunityTally {
	var tally CommunityTally
	for _, vote := range p.Votes {
		switch vote {
		case CommunityVoteUp:
			tally.Up++
		case CommunityVoteDown:
			tally.Down++
		}
	}
	return tally
}
