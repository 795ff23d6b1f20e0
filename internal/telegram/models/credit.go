package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreditRecord 投稿署名记录
// 仅在 comments 模式下创建，按 (chat_id, message_id) 定位，消费一次后即删除
// comments 关闭时不会创建任何署名记录，投稿人身份不落库
type CreditRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ChatID        int64              `bson:"chat_id"`    // 频道 ID
	MessageID     int                `bson:"message_id"` // 频道消息 ID
	SubmitterID   int64              `bson:"submitter_id"`
	SubmitterSign string             `bson:"submitter_sign"` // 发布时刻的署名文本
	CreatedAt     time.Time          `bson:"created_at"`
}
