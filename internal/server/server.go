package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/palemoky/uno-online/internal/config"
	"github.com/palemoky/uno-online/internal/game"
	"github.com/palemoky/uno-online/internal/logger"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/protocol/codec"
	"github.com/palemoky/uno-online/internal/server/storage"
)

// ErrServerClosed is returned by Serve and ServeWS after Shutdown.
var ErrServerClosed = errors.New("server closed")

// Publisher receives the events produced by successful mutations.
type Publisher interface {
	Publish(ctx context.Context, events ...storage.Event) error
}

// Server 会话服务器: one shared game, one worker per connection.
type Server struct {
	config *config.Config
	codec  codec.Codec
	game   *game.Game
	table  *Table
	feed   Publisher

	// 连接控制, nil when unbounded
	semaphore chan struct{}
	limiter   *ConnLimiter
	upgrader  websocket.Upgrader

	mu          sync.Mutex
	closed      bool
	listeners   map[net.Listener]struct{}
	httpServers []*http.Server
	conns       map[string]transport
	wg          sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithGame serves g instead of a freshly dealt game.
func WithGame(g *game.Game) Option {
	return func(s *Server) { s.game = g }
}

// WithFeed publishes events to p.
func WithFeed(p Publisher) Option {
	return func(s *Server) { s.feed = p }
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	c, err := codec.ByName(cfg.Protocol.Codec)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:    cfg,
		codec:     c,
		feed:      storage.NopFeed{},
		listeners: make(map[net.Listener]struct{}),
		conns:     make(map[string]transport),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.game == nil {
		s.game, err = game.New(
			game.WithHandSize(cfg.Game.HandSize),
			game.WithMaxPlayers(cfg.Game.MaxPlayers),
		)
		if err != nil {
			return nil, fmt.Errorf("create game: %w", err)
		}
	}
	s.table = NewTable(s.game, c, cfg.Game.StrictColorCycle)

	if cfg.Server.MaxConnections > 0 {
		s.semaphore = make(chan struct{}, cfg.Server.MaxConnections)
	}
	s.limiter = NewConnLimiter(cfg.Security.ConnsPerMinute, cfg.Security.BanDuration())
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     NewOriginChecker(cfg.Security.AllowedOrigins).Check,
	}
	return s, nil
}

// Table returns the shared game table.
func (s *Server) Table() *Table { return s.table }

// ListenAndServe listens on the configured TCP address and, when ws_port is
// set, the WebSocket address. It blocks until ctx is done or a listener fails,
// then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen tcp: %w", err)
	}

	errCh := make(chan error, 2)
	go func() { errCh <- s.Serve(ln) }()

	if s.config.Server.WSPort > 0 {
		wsLn, err := net.Listen("tcp", s.config.Server.WSAddr())
		if err != nil {
			_ = s.Shutdown(context.Background())
			return fmt.Errorf("listen websocket: %w", err)
		}
		go func() { errCh <- s.ServeWS(wsLn) }()
	}

	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	go s.monitorStats(statsCtx, 30*time.Second)

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

// Serve accepts stream connections on l until l is closed or Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	if !s.trackListener(l) {
		_ = l.Close()
		return ErrServerClosed
	}
	defer s.untrackListener(l)

	logger.LogInfo("🚀 TCP 服务启动在 %s", l.Addr())
	for {
		conn, err := l.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		if ip := hostOf(conn.RemoteAddr().String()); !s.limiter.Allow(ip) {
			_ = conn.Close()
			continue
		}
		if !s.acquire() {
			logger.LogWarn("🚫 达到最大连接数限制 (%d), 拒绝 %s", s.config.Server.MaxConnections, conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		if !s.addWorker() {
			s.release()
			_ = conn.Close()
			return nil
		}

		t := newTCPTransport(conn, s.config.Server.MaxFrameSize,
			s.config.Server.ReadTimeoutDuration(), s.config.Server.WriteTimeoutDuration())
		go func() {
			defer s.wg.Done()
			defer s.release()
			s.serveConn(t)
		}()
	}
}

// Handler serves /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ServeWS serves WebSocket connections on l until Shutdown is called.
func (s *Server) ServeWS(l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = l.Close()
		return ErrServerClosed
	}
	s.httpServers = append(s.httpServers, srv)
	s.mu.Unlock()

	logger.LogInfo("🚀 WebSocket 服务启动在 ws://%s/ws", l.Addr())
	if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow(clientIP(r)) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}
	if !s.acquire() {
		logger.LogWarn("🚫 达到最大连接数限制 (%d), IP: %s", s.config.Server.MaxConnections, r.RemoteAddr)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}
	defer s.release()

	if !s.addWorker() {
		http.Error(w, "Server Closed", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.LogWarn("WebSocket 升级失败: %v", err)
		return
	}

	s.serveConn(newWSTransport(conn, s.config.Server.MaxFrameSize,
		s.config.Server.ReadTimeoutDuration(), s.config.Server.WriteTimeoutDuration()))
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// serveConn runs the request loop of one connection.
func (s *Server) serveConn(t transport) {
	id := uuid.NewString()
	log := logger.WithConn(id, t.RemoteAddr())

	s.mu.Lock()
	if s.closed {
		// Shutdown already swept the connections
		s.mu.Unlock()
		_ = t.Close()
		return
	}
	s.conns[id] = t
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, id)
		s.mu.Unlock()
		_ = t.Close()
		log.Info("❌ 连接已断开")
	}()

	log.Info("✅ 连接已建立")
	for {
		payload, err := t.ReadPayload()
		if err != nil {
			logReadError(log, err)
			return
		}

		res := s.process(log, payload)
		if err := t.WritePayload(res.Payload); err != nil {
			log.WithError(err).Warn("写入响应失败")
			return
		}
		s.publish(log, res.Events)
	}
}

// process decodes and applies one request. A panic is contained to the
// request and answered with a server error.
func (s *Server) process(log *logrus.Entry, payload []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			res = Result{Payload: protocol.StatusServerError.Bytes()}
		}
	}()

	req, err := s.codec.DecodeRequest(payload)
	if err != nil {
		log.WithError(err).Warn("⚠️ 请求解析失败")
		return Result{Payload: protocol.StatusMalformed.Bytes(), Err: err}
	}

	res = s.table.Apply(req)
	if res.Err != nil {
		log.WithError(res.Err).WithField("request", req.Kind()).Debug("请求被拒绝")
	}
	return res
}

// publish runs after the table lock is released. Failures only get logged.
func (s *Server) publish(log *logrus.Entry, events []storage.Event) {
	if len(events) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.feed.Publish(ctx, events...); err != nil {
		log.WithError(err).Warn("事件发布失败")
	}
}

func logReadError(log *logrus.Entry, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed),
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
		log.Debug("客户端关闭连接")
	case errors.Is(err, codec.ErrFrameTooLarge), errors.Is(err, websocket.ErrReadLimit):
		log.WithError(err).Warn("🚫 请求过大，关闭连接")
	case errors.As(err, &netErr) && netErr.Timeout():
		log.Info("⏱️ 连接空闲超时")
	default:
		log.WithError(err).Warn("读取错误")
	}
}

// Shutdown stops the listeners, closes every connection and waits for the
// workers to return or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for l := range s.listeners {
		_ = l.Close()
	}
	servers := s.httpServers
	conns := make([]transport, 0, len(s.conns))
	for _, t := range s.conns {
		conns = append(conns, t)
	}
	s.mu.Unlock()

	for _, srv := range servers {
		_ = srv.Shutdown(ctx)
	}
	for _, t := range conns {
		_ = t.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.LogInfo("👋 服务器已关闭")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// --- bookkeeping ---

func (s *Server) trackListener(l net.Listener) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.listeners[l] = struct{}{}
	return true
}

func (s *Server) untrackListener(l net.Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, l)
}

// addWorker registers a connection worker unless the server is shutting down.
func (s *Server) addWorker() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) acquire() bool {
	if s.semaphore == nil {
		return true
	}
	select {
	case s.semaphore <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Server) release() {
	if s.semaphore != nil {
		<-s.semaphore
	}
}

// ConnCount is the number of open connections.
func (s *Server) ConnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}
