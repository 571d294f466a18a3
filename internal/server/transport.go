package server

import (
	"bufio"
	"net"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/uno-online/internal/protocol/codec"
)

// transport carries one request payload in and one response payload out at a time.
type transport interface {
	ReadPayload() ([]byte, error)
	WritePayload(payload []byte) error
	RemoteAddr() string
	Close() error
}

// tcpTransport frames payloads with a 4-byte length prefix.
type tcpTransport struct {
	conn         net.Conn
	r            *bufio.Reader
	maxFrame     int
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func newTCPTransport(conn net.Conn, maxFrame int, readTimeout, writeTimeout time.Duration) *tcpTransport {
	return &tcpTransport{
		conn:         conn,
		r:            bufio.NewReader(conn),
		maxFrame:     maxFrame,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (t *tcpTransport) ReadPayload() ([]byte, error) {
	if t.readTimeout > 0 {
		_ = t.conn.SetReadDeadline(time.Now().Add(t.readTimeout))
	}
	return codec.ReadFrame(t.r, t.maxFrame)
}

func (t *tcpTransport) WritePayload(payload []byte) error {
	if t.writeTimeout > 0 {
		_ = t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	}
	return codec.WriteFrame(t.conn, payload)
}

func (t *tcpTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }
func (t *tcpTransport) Close() error       { return t.conn.Close() }

// wsTransport carries one payload per binary WebSocket message.
type wsTransport struct {
	conn         *websocket.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func newWSTransport(conn *websocket.Conn, maxFrame int, readTimeout, writeTimeout time.Duration) *wsTransport {
	conn.SetReadLimit(int64(maxFrame))
	return &wsTransport{
		conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (t *wsTransport) ReadPayload() ([]byte, error) {
	if t.readTimeout > 0 {
		_ = t.conn.SetReadDeadline(time.Now().Add(t.readTimeout))
	}
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WritePayload(payload []byte) error {
	if t.writeTimeout > 0 {
		_ = t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	}
	return t.conn.WriteMessage(websocket.BinaryMessage, payload)
}

func (t *wsTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }
func (t *wsTransport) Close() error       { return t.conn.Close() }
