package repository

import (
	"context"
	"errors"

	"spotted_bot/internal/telegram/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound 目标文档不存在
// 审核定案竞争的失败方、重复消费署名记录等场景都会命中，属于预期错误
var ErrNotFound = errors.New("document not found")

// PendingPostRepository 待审核投稿数据访问接口
type PendingPostRepository interface {
	// Create 创建待审核投稿
	Create(ctx context.Context, post *models.PendingPost) error

	// UpsertVote 写入或覆盖某管理员的投票，返回更新后的快照
	UpsertVote(ctx context.Context, id primitive.ObjectID, adminID int64, vote string) (*models.PendingPost, error)

	// Take 原子摘取投稿（定案/撤回时调用，竞争中只有一个调用者能拿到文档）
	Take(ctx context.Context, id primitive.ObjectID) (*models.PendingPost, error)

	// ListByAdminGroup 按审核群列出待审核投稿，按审核消息 ID 升序
	ListByAdminGroup(ctx context.Context, adminGroupID int64) ([]*models.PendingPost, error)

	// EnsureIndexes 确保索引存在
	EnsureIndexes(ctx context.Context) error
}

// PublishedPostRepository 已发布投稿数据访问接口
type PublishedPostRepository interface {
	// Create 创建已发布投稿记录（同一 (chat, message) 重复创建是幂等的）
	Create(ctx context.Context, post *models.PublishedPost) error

	// UpsertVote 写入或覆盖某用户的社区投票，返回更新后的快照
	UpsertVote(ctx context.Context, chatID int64, messageID int, voterID int64, vote string) (*models.PublishedPost, error)

	// EnsureIndexes 确保索引存在
	EnsureIndexes(ctx context.Context) error
}

// CreditRepository 投稿署名数据访问接口
type CreditRepository interface {
	// Create 创建署名记录
	Create(ctx context.Context, credit *models.CreditRecord) error

	// Take 原子消费署名记录（单次有效，二次调用返回 ErrNotFound）
	Take(ctx context.Context, chatID int64, messageID int) (*models.CreditRecord, error)

	// EnsureIndexes 确保索引存在
	EnsureIndexes(ctx context.Context) error
}
