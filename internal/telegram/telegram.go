package telegram

import (
	"context"
	"fmt"
	"time"

	"spotted_bot/internal/config"
	"spotted_bot/internal/logger"
	"spotted_bot/internal/telegram/repository"
	"spotted_bot/internal/telegram/service"

	"github.com/go-telegram/bot"
	botModels "github.com/go-telegram/bot/models"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	workerCount     = 10
	workerQueueSize = 100
	sessionSweepGap = 5 * time.Minute
)

// Bot Telegram Bot 服务
type Bot struct {
	bot *bot.Bot
	db  *mongo.Database
	cfg *config.Config

	pendingRepo   repository.PendingPostRepository
	publishedRepo repository.PublishedPostRepository
	creditRepo    repository.CreditRepository

	moderationService *service.ModerationService
	registryService   *service.RegistryService
	reportService     *service.ReportService

	sessions   *sessionStore
	workerPool *WorkerPool
}

// New 创建 Telegram Bot 实例
func New(cfg *config.Config, db *mongo.Database) (*Bot, error) {
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("telegram token cannot be empty")
	}

	telegramBot := &Bot{
		db:            db,
		cfg:           cfg,
		pendingRepo:   repository.NewMongoPendingPostRepository(db),
		publishedRepo: repository.NewMongoPublishedPostRepository(db),
		creditRepo:    repository.NewMongoCreditRepository(db),
		sessions:      newSessionStore(cfg.SessionTTL),
		workerPool:    NewWorkerPool(workerCount, workerQueueSize),
	}

	// 默认 handler 承载非命令消息：会话状态机 + 频道转发钩子
	opts := []bot.Option{
		bot.WithDefaultHandler(telegramBot.asyncHandler(telegramBot.handleDefault)),
	}

	b, err := bot.New(cfg.TelegramToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	telegramBot.bot = b

	transport := newBotTransport(b)
	telegramBot.moderationService = service.NewModerationService(
		telegramBot.pendingRepo,
		telegramBot.publishedRepo,
		telegramBot.creditRepo,
		transport,
		service.ModerationConfig{
			AdminGroupID:     cfg.AdminGroupID,
			ChannelID:        cfg.ChannelID,
			Comments:         cfg.Comments,
			ApproveThreshold: cfg.ApproveThreshold,
			RejectThreshold:  cfg.RejectThreshold,
		},
	)
	telegramBot.registryService = service.NewRegistryService(
		telegramBot.publishedRepo,
		telegramBot.creditRepo,
		transport,
	)
	telegramBot.reportService = service.NewReportService(transport, cfg.AdminGroupID)

	// 注册 handlers
	telegramBot.registerHandlers()

	// 初始化数据库索引
	if err := telegramBot.ensureIndexes(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	logger.L().Info("Telegram bot initialized successfully")
	return telegramBot, nil
}

// Start 启动 Bot（阻塞式，应在 goroutine 中运行）
func (b *Bot) Start(ctx context.Context) error {
	logger.L().Info("Starting Telegram bot...")

	go b.sessionSweeper(ctx)

	b.bot.Start(ctx)
	logger.L().Info("Telegram bot stopped")
	return nil
}

// Stop 停止 Bot
// bot 本体通过 context 取消停止，这里只回收工作池
func (b *Bot) Stop(ctx context.Context) error {
	logger.L().Info("Stopping Telegram bot...")
	b.workerPool.Shutdown()
	return nil
}

// asyncHandler 将 handler 包装为异步任务提交到工作池
func (b *Bot) asyncHandler(handler bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, botInstance *bot.Bot, update *botModels.Update) {
		b.workerPool.Submit(HandlerTask{
			Ctx:         ctx,
			BotInstance: botInstance,
			Update:      update,
			Handler:     handler,
		})
	}
}

// sessionSweeper 周期清理过期会话
func (b *Bot) sessionSweeper(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepGap)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.sessions.Sweep()
		}
	}
}

// ensureIndexes 确保所有数据库索引存在
func (b *Bot) ensureIndexes(ctx context.Context) error {
	if err := b.pendingRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure pending post indexes: %w", err)
	}
	logger.L().Debug("Pending post indexes ensured")

	if err := b.publishedRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure published post indexes: %w", err)
	}
	logger.L().Debug("Published post indexes ensured")

	if err := b.creditRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure credit indexes: %w", err)
	}
	logger.L().Debug("Credit indexes ensured")

	return nil
}
