package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/palemoky/uno-online/internal/config"
	"github.com/palemoky/uno-online/internal/logger"
	"github.com/palemoky/uno-online/internal/server"
	"github.com/palemoky/uno-online/internal/server/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("配置文件 %s 不存在，使用默认配置", *configPath)
		cfg, err = config.Load("")
	}
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.File); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []server.Option
	if cfg.Redis.Enabled {
		feed, err := storage.Connect(ctx, cfg.Redis)
		if err != nil {
			// 事件流不影响对局
			logger.LogWarn("⚠️ %v，事件流已禁用", err)
		} else {
			defer func() { _ = feed.Close() }()
			opts = append(opts, server.WithFeed(feed))
			logger.LogInfo("📡 事件流已连接 %s (%s)", cfg.Redis.Addr, cfg.Redis.Channel)
		}
	}

	srv, err := server.NewServer(cfg, opts...)
	if err != nil {
		logger.LogError("创建服务器失败: %v", err)
		os.Exit(1)
	}

	logger.LogInfo("🎮 UNO 服务器启动中...")
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.LogError("服务器异常退出: %v", err)
		os.Exit(1)
	}
}
