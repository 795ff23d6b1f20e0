package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"spotted_bot/internal/telegram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoPendingPostRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &models.PendingPost{
			ID:             primitive.NewObjectID(),
			SubmitterID:    1001,
			Content:        models.Content{Kind: models.ContentText, Text: "hello"},
			AdminGroupID:   -2001,
			AdminMessageID: 55,
		}

		if err := repo.Create(context.Background(), post); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if post.CreatedAt.IsZero() {
			t.Fatalf("expected created_at to be set")
		}
		if post.Votes == nil {
			t.Fatalf("expected votes map to be initialized")
		}
	})

	mt.Run("insert error", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key",
		}))

		err := repo.Create(context.Background(), &models.PendingPost{
			ID:             primitive.NewObjectID(),
			AdminGroupID:   -2001,
			AdminMessageID: 55,
		})
		if err == nil {
			t.Fatalf("expected error but got nil")
		}
		if !strings.Contains(err.Error(), "failed to create pending post") {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMongoPendingPostRepositoryUpsertVote(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		id := primitive.NewObjectID()
		now := time.Now().UTC().Truncate(time.Second)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{
				Key: "value",
				Value: bson.D{
					{Key: "_id", Value: id},
					{Key: "submitter_id", Value: int64(1001)},
					{Key: "admin_group_id", Value: int64(-2001)},
					{Key: "admin_message_id", Value: 55},
					{Key: "votes", Value: bson.D{
						{Key: "3001", Value: models.VoteApprove},
					}},
					{Key: "created_at", Value: now},
				},
			},
		))

		post, err := repo.UpsertVote(context.Background(), id, 3001, models.VoteApprove)
		if err != nil {
			t.Fatalf("UpsertVote failed: %v", err)
		}
		if post.Votes["3001"] != models.VoteApprove {
			t.Fatalf("unexpected votes: %v", post.Votes)
		}
		if post.AdminMessageID != 55 {
			t.Fatalf("unexpected admin message id: %d", post.AdminMessageID)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: nil},
		))

		_, err := repo.UpsertVote(context.Background(), primitive.NewObjectID(), 3001, models.VoteApprove)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("find and modify error", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "mock findAndModify error",
		}))

		_, err := repo.UpsertVote(context.Background(), primitive.NewObjectID(), 3001, models.VoteApprove)
		if err == nil {
			t.Fatalf("expected error but got nil")
		}
		if !strings.Contains(err.Error(), "failed to upsert vote") {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestMongoPendingPostRepositoryTake(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		id := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{
				Key: "value",
				Value: bson.D{
					{Key: "_id", Value: id},
					{Key: "submitter_id", Value: int64(1001)},
					{Key: "admin_group_id", Value: int64(-2001)},
					{Key: "admin_message_id", Value: 56},
					{Key: "votes", Value: bson.D{}},
				},
			},
		))

		post, err := repo.Take(context.Background(), id)
		if err != nil {
			t.Fatalf("Take failed: %v", err)
		}
		if post.ID != id {
			t.Fatalf("unexpected id: got %s, want %s", post.ID.Hex(), id.Hex())
		}
	})

	mt.Run("already taken", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: nil},
		))

		_, err := repo.Take(context.Background(), primitive.NewObjectID())
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMongoPendingPostRepositoryListByAdminGroup(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		first := mtest.CreateCursorResponse(
			1,
			pendingPostNamespace(mt),
			mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "admin_group_id", Value: int64(-2001)},
				{Key: "admin_message_id", Value: 10},
			},
		)
		second := mtest.CreateCursorResponse(
			0,
			pendingPostNamespace(mt),
			mtest.NextBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "admin_group_id", Value: int64(-2001)},
				{Key: "admin_message_id", Value: 20},
			},
		)
		mt.AddMockResponses(first, second)

		posts, err := repo.ListByAdminGroup(context.Background(), -2001)
		if err != nil {
			t.Fatalf("ListByAdminGroup failed: %v", err)
		}
		if len(posts) != 2 {
			t.Fatalf("unexpected post count: got %d, want 2", len(posts))
		}
		if posts[0].AdminMessageID != 10 || posts[1].AdminMessageID != 20 {
			t.Fatalf("unexpected order: %d, %d", posts[0].AdminMessageID, posts[1].AdminMessageID)
		}
	})

	mt.Run("empty", func(mt *mtest.T) {
		repo := &MongoPendingPostRepository{collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(
			0,
			pendingPostNamespace(mt),
			mtest.FirstBatch,
		))

		posts, err := repo.ListByAdminGroup(context.Background(), -2001)
		if err != nil {
			t.Fatalf("ListByAdminGroup failed: %v", err)
		}
		if len(posts) != 0 {
			t.Fatalf("expected no posts, got %d", len(posts))
		}
	})
}

func pendingPostNamespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}
