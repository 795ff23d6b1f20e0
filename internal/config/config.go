package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 应用程序配置
type Config struct {
	TelegramToken    string        // Telegram Bot API Token
	MongoURI         string        // MongoDB 连接 URI
	MongoDBName      string        // MongoDB 数据库名称
	AdminGroupID     int64         // 管理员审核群 ID
	ChannelID        int64         // 发布频道 ID
	CommunityGroupID int64         // 频道关联的社区群 ID（comments 开启时使用）
	Comments         bool          // 是否开启评论模式（开启后投稿在社区群被署名并投票）
	BackupGroupID    int64         // 允许触发 /db_backup 的群 ID
	ApproveThreshold int           // 通过所需的赞成票数
	RejectThreshold  int           // 拒绝所需的反对票数
	SessionTTL       time.Duration // 投稿会话的不活跃过期时间
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "spotted_bot"
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDBName:   mongoDBName,
		SessionTTL:    30 * time.Minute,
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	var err error
	if cfg.AdminGroupID, err = parseChatID("ADMIN_GROUP_ID", true); err != nil {
		return nil, err
	}
	if cfg.ChannelID, err = parseChatID("CHANNEL_ID", true); err != nil {
		return nil, err
	}
	if cfg.CommunityGroupID, err = parseChatID("COMMUNITY_GROUP_ID", false); err != nil {
		return nil, err
	}
	if cfg.BackupGroupID, err = parseChatID("GROUP_ID", false); err != nil {
		return nil, err
	}

	// 解析 COMMENTS 开关
	if commentsStr := strings.TrimSpace(os.Getenv("COMMENTS")); commentsStr != "" {
		value, err := strconv.ParseBool(commentsStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse COMMENTS: %w", err)
		}
		cfg.Comments = value
	}
	if cfg.Comments && cfg.CommunityGroupID == 0 {
		return nil, fmt.Errorf("COMMUNITY_GROUP_ID is required when COMMENTS is enabled")
	}

	// 解析审核阈值（默认单票定案）
	if cfg.ApproveThreshold, err = parseThreshold("APPROVE_THRESHOLD", 1); err != nil {
		return nil, err
	}
	if cfg.RejectThreshold, err = parseThreshold("REJECT_THRESHOLD", 1); err != nil {
		return nil, err
	}

	// 解析会话过期时间（默认 30 分钟）
	if ttlStr := strings.TrimSpace(os.Getenv("SESSION_TTL_MINUTES")); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SESSION_TTL_MINUTES: %w", err)
		}
		if minutes < 1 {
			return nil, fmt.Errorf("SESSION_TTL_MINUTES must be >= 1, got %d", minutes)
		}
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

// parseChatID 解析群/频道 ID 环境变量
func parseChatID(key string, required bool) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s is required", key)
		}
		return 0, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return id, nil
}

// parseThreshold 解析票数阈值环境变量
func parseThreshold(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be >= 1, got %d", key, n)
	}
	return n, nil
}
