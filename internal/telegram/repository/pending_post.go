package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"spotted_bot/internal/telegram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPendingPostRepository 待审核投稿数据访问层（MongoDB 实现）
type MongoPendingPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPendingPostRepository 创建待审核投稿 Repository
func NewMongoPendingPostRepository(db *mongo.Database) PendingPostRepository {
	return &MongoPendingPostRepository{
		collection: db.Collection("pending_posts"),
	}
}

// Create 创建待审核投稿
func (r *MongoPendingPostRepository) Create(ctx context.Context, post *models.PendingPost) error {
	post.CreatedAt = time.Now()
	if post.Votes == nil {
		post.Votes = map[string]string{}
	}

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to create pending post: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

// UpsertVote 写入或覆盖某管理员的投票
// map 覆盖语义保证同一管理员改票不重复计数，重复相同投票也不会报错
func (r *MongoPendingPostRepository) UpsertVote(ctx context.Context, id primitive.ObjectID, adminID int64, vote string) (*models.PendingPost, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"votes." + strconv.FormatInt(adminID, 10): vote,
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.PendingPost
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to upsert vote: %w", err)
	}

	return &post, nil
}

// Take 原子摘取投稿
// FindOneAndDelete 保证并发定案时只有一个调用者能拿到文档
func (r *MongoPendingPostRepository) Take(ctx context.Context, id primitive.ObjectID) (*models.PendingPost, error) {
	var post models.PendingPost
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to take pending post: %w", err)
	}

	return &post, nil
}

// ListByAdminGroup 按审核群列出待审核投稿
// 按审核消息 ID 升序，最旧的投稿在前
func (r *MongoPendingPostRepository) ListByAdminGroup(ctx context.Context, adminGroupID int64) ([]*models.PendingPost, error) {
	filter := bson.M{"admin_group_id": adminGroupID}
	opts := options.Find().SetSort(bson.D{{Key: "admin_message_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*models.PendingPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode pending posts: %w", err)
	}

	return posts, nil
}

// EnsureIndexes 确保索引存在
func (r *MongoPendingPostRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "admin_group_id", Value: 1},
				{Key: "admin_message_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create pending post indexes: %w", err)
	}

	return nil
}
