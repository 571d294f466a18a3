package client

import (
	"net"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/uno-online/internal/protocol/codec"
)

// stream exchanges one request payload for one response payload.
type stream interface {
	exchange(payload []byte, deadline time.Time) ([]byte, error)
	close() error
}

type tcpStream struct {
	conn     net.Conn
	maxFrame int
}

func (s *tcpStream) exchange(payload []byte, deadline time.Time) ([]byte, error) {
	if err := s.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	if err := codec.WriteFrame(s.conn, payload); err != nil {
		return nil, err
	}
	return codec.ReadFrame(s.conn, s.maxFrame)
}

func (s *tcpStream) close() error { return s.conn.Close() }

type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) exchange(payload []byte, deadline time.Time) ([]byte, error) {
	_ = s.conn.SetWriteDeadline(deadline)
	if err := s.conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		return nil, err
	}
	_ = s.conn.SetReadDeadline(deadline)
	_, data, err := s.conn.ReadMessage()
	return data, err
}

func (s *wsStream) close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return s.conn.Close()
}
