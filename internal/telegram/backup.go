package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spotted_bot/internal/logger"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
	"go.mongodb.org/mongo-driver/bson"
)

// backupCollections 备份覆盖的集合
var backupCollections = []string{"pending_posts", "published_posts", "credits"}

// runBackup 导出数据库内容为 JSON 文件并发送到备份群
func (b *Bot) runBackup(ctx context.Context, chatID int64) error {
	dump := make(map[string][]bson.M, len(backupCollections))

	for _, name := range backupCollections {
		docs, err := b.dumpCollection(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to dump collection %s: %w", name, err)
		}
		dump[name] = docs
	}

	payload, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	filename := fmt.Sprintf("spotted_backup_%s.json", time.Now().Format("20060102_150405"))

	if _, err := b.bot.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &botModels.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(payload),
		},
		Caption: fmt.Sprintf("🗄 数据库备份 · %d 个集合", len(dump)),
	}); err != nil {
		return fmt.Errorf("failed to send backup document: %w", err)
	}

	logger.L().Infof("Database backup sent: %s (%d bytes)", filename, len(payload))
	return nil
}

// dumpCollection 读取单个集合的全部文档
func (b *Bot) dumpCollection(ctx context.Context, name string) ([]bson.M, error) {
	cursor, err := b.db.Collection(name).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
