package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spotted_bot/internal/telegram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCreditRepository 投稿署名数据访问层（MongoDB 实现）
type MongoCreditRepository struct {
	collection *mongo.Collection
}

// NewMongoCreditRepository 创建署名 Repository
func NewMongoCreditRepository(db *mongo.Database) CreditRepository {
	return &MongoCreditRepository{
		collection: db.Collection("credits"),
	}
}

// Create 创建署名记录
func (r *MongoCreditRepository) Create(ctx context.Context, credit *models.CreditRecord) error {
	credit.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, credit)
	if err != nil {
		return fmt.Errorf("failed to create credit record: %w", err)
	}

	return nil
}

// Take 原子消费署名记录
// FindOneAndDelete 保证每条记录只能被解析一次，二次调用返回 ErrNotFound
func (r *MongoCreditRepository) Take(ctx context.Context, chatID int64, messageID int) (*models.CreditRecord, error) {
	filter := bson.M{
		"chat_id":    chatID,
		"message_id": messageID,
	}

	var credit models.CreditRecord
	err := r.collection.FindOneAndDelete(ctx, filter).Decode(&credit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to take credit record: %w", err)
	}

	return &credit, nil
}

// EnsureIndexes 确保索引存在
func (r *MongoCreditRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "chat_id", Value: 1},
				{Key: "message_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create credit indexes: %w", err)
	}

	return nil
}
