package server

import (
	"context"
	"runtime"
	"time"

	"github.com/palemoky/uno-online/internal/game"
	"github.com/palemoky/uno-online/internal/logger"
)

// monitorStats 定期记录服务器状态
func (s *Server) monitorStats(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.limiter.Prune()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		var players, deck, pending int
		s.table.View(func(g *game.Game) {
			players = len(g.Players())
			deck = g.DeckLen()
			pending = g.Pending()
		})

		logger.LogInfo("📊 [监控] 连接: %d | 玩家: %d | 牌堆: %d | 罚牌: %d | Goroutines: %d | 内存: %.2f MB",
			s.ConnCount(), players, deck, pending, runtime.NumGoroutine(), float64(m.Alloc)/1024/1024)
	}
}
