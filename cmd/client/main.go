package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/palemoky/uno-online/internal/client"
	"github.com/palemoky/uno-online/internal/config"
	"github.com/palemoky/uno-online/internal/logger"
	"github.com/palemoky/uno-online/internal/protocol/codec"
	"github.com/palemoky/uno-online/internal/server"
	"github.com/palemoky/uno-online/internal/sound"
	"github.com/palemoky/uno-online/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:8080", "服务器地址 (ws:// 前缀使用 WebSocket)")
	name := flag.String("name", "", "昵称，留空则在界面中输入")
	ticks := flag.Int("ticks", 0, "轮询间隔 (毫秒)，0 使用配置文件")
	host := flag.Bool("host", false, "同时在该地址启动内嵌服务器")
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *ticks > 0 {
		cfg.Client.Ticks = *ticks
	}

	// 日志只写文件，避免破坏界面
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = "logs/client.log"
	}
	if err := logger.InitFileOnly(cfg.Log.Level, logFile); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Close()

	if *host {
		srv, err := startEmbedded(cfg, *serverAddr)
		if err != nil {
			log.Fatalf("启动内嵌服务器失败: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	c, err := codec.ByName(cfg.Protocol.Codec)
	if err != nil {
		log.Fatalf("%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	conn, err := client.Dial(ctx, *serverAddr,
		client.WithCodec(c),
		client.WithMaxFrameSize(cfg.Server.MaxFrameSize),
	)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接到服务器 %s: %v\n", *serverAddr, err)
		os.Exit(1)
	}

	opts := []ui.Option{ui.WithName(*name)}
	if cfg.Client.Sound {
		sm := sound.NewSoundManager()
		go func() {
			if err := sm.Init(); err != nil {
				logger.LogWarn("音效初始化失败: %v", err)
			}
		}()
		defer sm.Close()
		opts = append(opts, ui.WithSound(sm))
	}

	if err := ui.Run(ui.NewModel(conn, cfg.Client.TickDuration(), opts...)); err != nil {
		logger.LogError("客户端退出: %v", err)
		fmt.Fprintf(os.Stderr, "启动客户端时出错: %v\n", err)
		os.Exit(1)
	}
}

// startEmbedded serves a fresh game on addr, over WebSocket when addr has a
// ws:// prefix.
func startEmbedded(cfg *config.Config, addr string) (*server.Server, error) {
	srv, err := server.NewServer(cfg)
	if err != nil {
		return nil, err
	}

	listenAddr, ws := addr, false
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		u, err := url.Parse(addr)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", addr, err)
		}
		listenAddr, ws = u.Host, true
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, err
	}
	go func() {
		serve := srv.Serve
		if ws {
			serve = srv.ServeWS
		}
		if err := serve(ln); err != nil && !errors.Is(err, server.ErrServerClosed) {
			logger.LogError("内嵌服务器错误: %v", err)
		}
	}()
	logger.LogInfo("🏠 内嵌服务器已启动 %s", listenAddr)
	return srv, nil
}
