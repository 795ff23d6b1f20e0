package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 管理员投票值
const (
	VoteApprove = "approve"
	VoteReject  = "reject"
)

// PendingPost 待审核投稿
// 审核定案（通过或拒绝）后记录即被删除，不保留历史
type PendingPost struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	SubmitterID    int64              `bson:"submitter_id"`             // 投稿人 Telegram ID
	SubmitterSign  string             `bson:"submitter_sign,omitempty"` // 投稿人署名（comments 模式下用于社区群署名）
	Content        Content            `bson:"content"`                  // 投稿内容快照
	AdminGroupID   int64              `bson:"admin_group_id"`           // 审核群 ID
	AdminMessageID int                `bson:"admin_message_id"`         // 审核群中的副本消息 ID
	Votes          map[string]string  `bson:"votes"`                    // 管理员 ID -> approve/reject，每人至多一票
	CreatedAt      time.Time          `bson:"created_at"`
}

// VoteTally 管理员投票计数
type VoteTally struct {
	Approve int
	Reject  int
}

// Total 去重后的总投票人数
func (t VoteTally) Total() int {
	return t.Approve + t.Reject
}

// Tally 统计当前投票
// votes 是按管理员 ID 去重的 map，同一管理员改票不会重复计数
func (p *PendingPost) Tally() VoteTally {
	var tally VoteTally
	for _, vote := range p.Votes {
		switch vote {
		case VoteApprove:
			tally.Approve++
		case VoteReject:
			tally.Reject++
		}
	}
	return tally
}
