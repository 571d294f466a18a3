// Package client is the typed request builder for the session server. One
// Client holds one persistent connection and issues one request at a time.
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/protocol/codec"
)

// ErrConnection marks transport failures, as opposed to rejected requests.
var ErrConnection = errors.New("connection failed")

// StatusError is a request the server answered with a non-OK status.
type StatusError struct {
	Kind   protocol.Kind
	Status protocol.Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Status)
}

// IsStatus reports whether err is a StatusError carrying status.
func IsStatus(err error, status protocol.Status) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

const (
	defaultTimeout   = 5 * time.Second
	handshakeTimeout = 10 * time.Second
)

type options struct {
	codec    codec.Codec
	timeout  time.Duration
	maxFrame int
}

// Option configures Dial.
type Option func(*options)

// WithCodec selects the payload codec. It must match the server's.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithTimeout bounds each request round trip. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMaxFrameSize bounds response payloads.
func WithMaxFrameSize(n int) Option {
	return func(o *options) { o.maxFrame = n }
}

// Client 会话客户端
type Client struct {
	mu      sync.Mutex
	conn    stream
	codec   codec.Codec
	timeout time.Duration
	closed  bool
}

// Dial connects to addr. A ws:// or wss:// address uses WebSocket (path /ws
// when none is given); anything else is a TCP host:port.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	o := options{
		codec:    codec.JSON{},
		timeout:  defaultTimeout,
		maxFrame: codec.DefaultMaxFrameSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		conn stream
		err  error
	)
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		conn, err = dialWS(ctx, addr, o.maxFrame)
	} else {
		conn, err = dialTCP(ctx, addr, o.maxFrame)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return &Client{conn: conn, codec: o.codec, timeout: o.timeout}, nil
}

func dialTCP(ctx context.Context, addr string, maxFrame int) (stream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &tcpStream{conn: conn, maxFrame: maxFrame}, nil
}

func dialWS(ctx context.Context, addr string, maxFrame int) (stream, error) {
	if !strings.Contains(strings.SplitN(addr, "://", 2)[1], "/") {
		addr += "/ws"
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(int64(maxFrame))
	return &wsStream{conn: conn}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.close()
}

// roundTrip sends req and waits for its response. Any transport failure
// closes the client.
func (c *Client) roundTrip(req protocol.Request) ([]byte, error) {
	data, err := c.codec.EncodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", req.Kind(), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, fmt.Errorf("%w: client closed", ErrConnection)
	}

	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	resp, err := c.conn.exchange(data, deadline)
	if err != nil {
		c.closed = true
		_ = c.conn.close()
		return nil, fmt.Errorf("%w: %s: %v", ErrConnection, req.Kind(), err)
	}
	return resp, nil
}

// status sends a request answered by a single status byte.
func (c *Client) status(req protocol.Request) error {
	resp, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if len(resp) != 1 {
		return fmt.Errorf("%s: unexpected %d byte response", req.Kind(), len(resp))
	}
	if s := protocol.Status(resp[0]); s != protocol.StatusOK {
		return &StatusError{Kind: req.Kind(), Status: s}
	}
	return nil
}

// count sends a request answered by a single count byte.
func (c *Client) count(req protocol.Request) (int, error) {
	resp, err := c.roundTrip(req)
	if err != nil {
		return 0, err
	}
	if len(resp) != 1 {
		return 0, fmt.Errorf("%s: unexpected %d byte response", req.Kind(), len(resp))
	}
	return int(resp[0]), nil
}

// value sends a request answered by an encoded value.
func (c *Client) value(req protocol.Request, v any) error {
	resp, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if err := c.codec.DecodeValue(resp, v); err != nil {
		if len(resp) == 1 {
			return &StatusError{Kind: req.Kind(), Status: protocol.Status(resp[0])}
		}
		return fmt.Errorf("decode %s response: %w", req.Kind(), err)
	}
	return nil
}
