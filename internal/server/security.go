package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/palemoky/uno-online/internal/logger"
)

// ConnLimiter 连接频率限制器: counts connection attempts per IP in a
// one-minute window and bans an IP that goes over the limit.
type ConnLimiter struct {
	mu      sync.Mutex
	clients map[string]*connRate

	perMinute   int
	banDuration time.Duration
	now         func() time.Time
}

type connRate struct {
	count       int
	windowStart time.Time
	bannedUntil time.Time
}

// NewConnLimiter creates a limiter. perMinute <= 0 disables it and returns nil;
// a nil limiter allows everything.
func NewConnLimiter(perMinute int, ban time.Duration) *ConnLimiter {
	if perMinute <= 0 {
		return nil
	}
	return &ConnLimiter{
		clients:     make(map[string]*connRate),
		perMinute:   perMinute,
		banDuration: ban,
		now:         time.Now,
	}
}

// Allow records one connection attempt from ip.
func (l *ConnLimiter) Allow(ip string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	r, ok := l.clients[ip]
	if !ok {
		l.clients[ip] = &connRate{count: 1, windowStart: now}
		return true
	}
	if now.Before(r.bannedUntil) {
		return false
	}
	if now.Sub(r.windowStart) >= time.Minute {
		r.count = 0
		r.windowStart = now
	}

	r.count++
	if r.count > l.perMinute {
		r.bannedUntil = now.Add(l.banDuration)
		logger.LogWarn("⚠️ IP %s 连接过于频繁，暂时封禁 %v", ip, l.banDuration)
		return false
	}
	return true
}

// IsBanned 检查 IP 是否被封禁
func (l *ConnLimiter) IsBanned(ip string) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.clients[ip]
	return ok && l.now().Before(r.bannedUntil)
}

// Prune drops records idle for ten minutes whose ban has expired.
func (l *ConnLimiter) Prune() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for ip, r := range l.clients {
		if now.Sub(r.windowStart) > 10*time.Minute && now.After(r.bannedUntil) {
			delete(l.clients, ip)
		}
	}
}

// Len is the number of tracked IPs.
func (l *ConnLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// --- 来源验证 ---

// OriginChecker 来源验证器 for the WebSocket upgrade.
type OriginChecker struct {
	allowed  map[string]bool
	allowAll bool
}

// NewOriginChecker 创建来源验证器. "*" allows every origin.
func NewOriginChecker(origins []string) *OriginChecker {
	oc := &OriginChecker{allowed: make(map[string]bool)}
	for _, o := range origins {
		if o == "*" {
			oc.allowAll = true
			return oc
		}
		oc.allowed[strings.ToLower(o)] = true
	}
	return oc
}

// Check 检查来源是否允许
func (oc *OriginChecker) Check(r *http.Request) bool {
	if oc.allowAll {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		// 终端客户端不带 Origin
		return true
	}
	return oc.allowed[strings.ToLower(origin)]
}

// --- 辅助函数 ---

// hostOf strips the port from a remote address.
func hostOf(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// clientIP 获取客户端真实 IP, preferring proxy headers.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return hostOf(r.RemoteAddr)
}
