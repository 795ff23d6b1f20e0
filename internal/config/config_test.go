package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("ADMIN_GROUP_ID", "-1002001")
	t.Setenv("CHANNEL_ID", "-1003001")
	t.Setenv("MONGO_DB_NAME", "")
	t.Setenv("COMMUNITY_GROUP_ID", "")
	t.Setenv("COMMENTS", "")
	t.Setenv("GROUP_ID", "")
	t.Setenv("APPROVE_THRESHOLD", "")
	t.Setenv("REJECT_THRESHOLD", "")
	t.Setenv("SESSION_TTL_MINUTES", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MongoDBName != "spotted_bot" {
		t.Fatalf("unexpected db name: %q", cfg.MongoDBName)
	}
	if cfg.AdminGroupID != -1002001 || cfg.ChannelID != -1003001 {
		t.Fatalf("unexpected chat ids: %d, %d", cfg.AdminGroupID, cfg.ChannelID)
	}
	if cfg.ApproveThreshold != 1 || cfg.RejectThreshold != 1 {
		t.Fatalf("unexpected thresholds: %d, %d", cfg.ApproveThreshold, cfg.RejectThreshold)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("unexpected session ttl: %v", cfg.SessionTTL)
	}
	if cfg.Comments {
		t.Fatalf("expected comments to default to false")
	}
}

func TestLoadMissingToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "TELEGRAM_TOKEN") {
		t.Fatalf("expected token error, got %v", err)
	}
}

func TestLoadMissingAdminGroup(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_GROUP_ID", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "ADMIN_GROUP_ID") {
		t.Fatalf("expected admin group error, got %v", err)
	}
}

func TestLoadCommentsRequiresCommunityGroup(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMENTS", "true")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "COMMUNITY_GROUP_ID") {
		t.Fatalf("expected community group error, got %v", err)
	}

	t.Setenv("COMMUNITY_GROUP_ID", "-1005001")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Comments || cfg.CommunityGroupID != -1005001 {
		t.Fatalf("unexpected comments config: %+v", cfg)
	}
}

func TestLoadThresholds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APPROVE_THRESHOLD", "3")
	t.Setenv("REJECT_THRESHOLD", "2")
	t.Setenv("SESSION_TTL_MINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ApproveThreshold != 3 || cfg.RejectThreshold != 2 {
		t.Fatalf("unexpected thresholds: %d, %d", cfg.ApproveThreshold, cfg.RejectThreshold)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("unexpected session ttl: %v", cfg.SessionTTL)
	}
}

func TestLoadRejectsInvalidThreshold(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APPROVE_THRESHOLD", "0")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "APPROVE_THRESHOLD") {
		t.Fatalf("expected threshold error, got %v", err)
	}
}
