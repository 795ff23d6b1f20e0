package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"spotted_bot/internal/telegram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPublishedPostRepository 已发布投稿数据访问层（MongoDB 实现）
type MongoPublishedPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPublishedPostRepository 创建已发布投稿 Repository
func NewMongoPublishedPostRepository(db *mongo.Database) PublishedPostRepository {
	return &MongoPublishedPostRepository{
		collection: db.Collection("published_posts"),
	}
}

// Create 创建已发布投稿记录
// 使用 Upsert + $setOnInsert，同一 (chat_id, message_id) 重复创建是幂等的
func (r *MongoPublishedPostRepository) Create(ctx context.Context, post *models.PublishedPost) error {
	filter := bson.M{
		"chat_id":    post.ChatID,
		"message_id": post.MessageID,
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"chat_id":    post.ChatID,
			"message_id": post.MessageID,
			"votes":      map[string]string{},
			"created_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to create published post: %w", err)
	}

	return nil
}

// UpsertVote 写入或覆盖某用户的社区投票
// 每个用户一票，改票是覆盖而不是追加
func (r *MongoPublishedPostRepository) UpsertVote(ctx context.Context, chatID int64, messageID int, voterID int64, vote string) (*models.PublishedPost, error) {
	filter := bson.M{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	update := bson.M{
		"$set": bson.M{
			"votes." + strconv.FormatInt(voterID, 10): vote,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.PublishedPost
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to upsert community vote: %w", err)
	}

	return &post, nil
}

// EnsureIndexes 确保索引存在
func (r *MongoPublishedPostRepository) EnsureIndexes(ctx context.Context) error {
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
		return fmt.Errorf("failed to create published post indexes: %w", err)
	}

	return nil
}
