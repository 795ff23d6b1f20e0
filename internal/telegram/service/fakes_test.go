package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"spotted_bot/internal/telegram/models"
	"spotted_bot/internal/telegram/repository"

	botModels "github.com/go-telegram/bot/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePendingRepo 内存版待审核投稿存储，模拟 Mongo 实现的快照语义
type fakePendingRepo struct {
	posts map[primitive.ObjectID]*models.PendingPost

	// takeMissing 模拟定案竞争失败：Take 永远返回 ErrNotFound
	takeMissing bool
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{posts: make(map[primitive.ObjectID]*models.PendingPost)}
}

func clonePendingPost(post *models.PendingPost) *models.PendingPost {
	clone := *post
	clone.Votes = make(map[string]string, len(post.Votes))
	for k, v := range post.Votes {
		clone.Votes[k] = v
	}
	return &clone
}

func (f *fakePendingRepo) Create(ctx context.Context, post *models.PendingPost) error {
	post.CreatedAt = time.Now()
	if post.Votes == nil {
		post.Votes = map[string]string{}
	}
	f.posts[post.ID] = clonePendingPost(post)
	return nil
}

func (f *fakePendingRepo) UpsertVote(ctx context.Context, id primitive.ObjectID, adminID int64, vote string) (*models.PendingPost, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post.Votes[strconv.FormatInt(adminID, 10)] = vote
	return clonePendingPost(post), nil
}

func (f *fakePendingRepo) Take(ctx context.Context, id primitive.ObjectID) (*models.PendingPost, error) {
	post, ok := f.posts[id]
	if !ok || f.takeMissing {
		return nil, repository.ErrNotFound
	}
	delete(f.posts, id)
	return post, nil
}

func (f *fakePendingRepo) ListByAdminGroup(ctx context.Context, adminGroupID int64) ([]*models.PendingPost, error) {
	var posts []*models.PendingPost
	for _, post := range f.posts {
		if post.AdminGroupID == adminGroupID {
			posts = append(posts, clonePendingPost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].AdminMessageID < posts[j].AdminMessageID
	})
	return posts, nil
}

func (f *fakePendingRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakePublishedRepo 内存版已发布投稿存储
type fakePublishedRepo struct {
	posts map[string]*models.PublishedPost
}

func newFakePublishedRepo() *fakePublishedRepo {
	return &fakePublishedRepo{posts: make(map[string]*models.PublishedPost)}
}

func publishedKey(chatID int64, messageID int) string {
	return fmt.Sprintf("%d/%d", chatID, messageID)
}

func (f *fakePublishedRepo) Create(ctx context.Context, post *models.PublishedPost) error {
	key := publishedKey(post.ChatID, post.MessageID)
	if _, ok := f.posts[key]; ok {
		return nil
	}
	clone := *post
	clone.Votes = map[string]string{}
	clone.CreatedAt = time.Now()
	f.posts[key] = &clone
	return nil
}

func (f *fakePublishedRepo) UpsertVote(ctx context.Context, chatID int64, messageID int, voterID int64, vote string) (*models.PublishedPost, error) {
	post, ok := f.posts[publishedKey(chatID, messageID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post.Votes[strconv.FormatInt(voterID, 10)] = vote

	clone := *post
	clone.Votes = make(map[string]string, len(post.Votes))
	for k, v := range post.Votes {
		clone.Votes[k] = v
	}
	return &clone, nil
}

func (f *fakePublishedRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeCreditRepo 内存版署名存储
type fakeCreditRepo struct {
	credits map[string]*models.CreditRecord
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{credits: make(map[string]*models.CreditRecord)}
}

func (f *fakeCreditRepo) Create(ctx context.Context, credit *models.CreditRecord) error {
	credit.CreatedAt = time.Now()
	clone := *credit
	f.credits[publishedKey(credit.ChatID, credit.MessageID)] = &clone
	return nil
}

func (f *fakeCreditRepo) Take(ctx context.Context, chatID int64, messageID int) (*models.CreditRecord, error) {
	key := publishedKey(chatID, messageID)
	credit, ok := f.credits[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.credits, key)
	return credit, nil
}

func (f *fakeCreditRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeTransport 记录所有出站调用，按调用顺序分配递增消息 ID
type fakeEdit struct {
	chatID    int64
	messageID int
	markup    botModels.ReplyMarkup
}

type fakeTransport struct {
	nextID int

	messages []SendMessageParams
	polls    []SendPollParams
	copies   []CopyMessageParams
	edits    []fakeEdit

	sendErr error
	pollErr error
	copyErr error
	editErr error
}

func (f *fakeTransport) allocID() int {
	f.nextID++
	return f.nextID
}

func (f *fakeTransport) SendMessage(ctx context.Context, params SendMessageParams) (int, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.messages = append(f.messages, params)
	return f.allocID(), nil
}

func (f *fakeTransport) SendPoll(ctx context.Context, params SendPollParams) (int, error) {
	if f.pollErr != nil {
		return 0, f.pollErr
	}
	f.polls = append(f.polls, params)
	return f.allocID(), nil
}

func (f *fakeTransport) CopyMessage(ctx context.Context, params CopyMessageParams) (int, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.copies = append(f.copies, params)
	return f.allocID(), nil
}

func (f *fakeTransport) EditReplyMarkup(ctx context.Context, chatID int64, messageID int, markup botModels.ReplyMarkup) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, fakeEdit{chatID: chatID, messageID: messageID, markup: markup})
	return nil
}
