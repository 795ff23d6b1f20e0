package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"spotted_bot/internal/app"
	"spotted_bot/internal/config"
	"spotted_bot/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// 本地开发时从 .env 读取环境变量，文件不存在则忽略
	_ = godotenv.Load()

	// 初始化 logger
	logger.Init()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("配置加载失败: %v", err)
	}

	// 初始化应用
	application, err := app.New(cfg)
	if err != nil {
		logger.L().Fatalf("应用初始化失败: %v", err)
	}

	// 监听退出信号
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 运行（阻塞直到收到退出信号）
	if err := application.Run(ctx); err != nil {
		logger.L().Errorf("应用运行出错: %v", err)
	}

	// 优雅关闭
	if err := application.Close(context.Background()); err != nil {
		logger.L().Errorf("应用关闭出错: %v", err)
	}

	logger.L().Info("Bye")
}
