package client_test

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno-online/internal/client"
	"github.com/palemoky/uno-online/internal/config"
	"github.com/palemoky/uno-online/internal/game"
	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/protocol/codec"
	"github.com/palemoky/uno-online/internal/server"
	"github.com/palemoky/uno-online/internal/testutil"
)

// Two players on a red 5. A: red 7, red +2, wild, blue 1. B: blue +2, green 7, yellow 7, red 1.
func testGame(t *testing.T) *game.Game {
	t.Helper()
	deck := testutil.ArrangedDeck(
		card.Number(5, card.Red),
		card.Number(7, card.Red), card.New(card.PlusTwo, card.Red), card.NewWild(), card.Number(1, card.Blue),
		card.New(card.PlusTwo, card.Blue), card.Number(7, card.Green), card.Number(7, card.Yellow), card.Number(1, card.Red),
	)
	g, err := game.New(game.WithDeck(deck), game.WithHandSize(4))
	require.NoError(t, err)
	return g
}

func testConfig(codecName string) *config.Config {
	cfg := config.Default()
	cfg.Protocol.Codec = codecName
	return cfg
}

func startTCP(t *testing.T, cfg *config.Config) string {
	t.Helper()
	s, err := server.NewServer(cfg, server.WithGame(testGame(t)))
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.Serve(ln) }()
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return ln.Addr().String()
}

func startWS(t *testing.T, cfg *config.Config) string {
	t.Helper()
	s, err := server.NewServer(cfg, server.WithGame(testGame(t)))
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		_ = s.Shutdown(context.Background())
		ts.Close()
	})
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, addr string, c codec.Codec) *client.Client {
	t.Helper()
	cl, err := client.Dial(context.Background(), addr, client.WithCodec(c), client.WithTimeout(5*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cl.Close() })
	return cl
}

func TestClient_FullMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		codec codec.Codec
		start func(*testing.T, *config.Config) string
	}{
		{"tcp json", codec.JSON{}, startTCP},
		{"tcp proto", codec.Proto{}, startTCP},
		{"websocket json", codec.JSON{}, startWS},
		{"websocket proto", codec.Proto{}, startWS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			addr := tt.start(t, testConfig(tt.codec.Name()))
			a := dial(t, addr, tt.codec)
			b := dial(t, addr, tt.codec)

			turn, err := a.CurrentTurn()
			require.NoError(t, err)
			assert.Empty(t, turn)

			require.NoError(t, a.Join("A"))
			require.NoError(t, b.Join("B"))
			assert.True(t, client.IsStatus(b.Join("A"), protocol.StatusNameTaken))

			players, err := b.GetPlayers()
			require.NoError(t, err)
			assert.Equal(t, []protocol.PlayerInfo{
				{Seat: 0, Name: "A", HandSize: 4},
				{Seat: 1, Name: "B", HandSize: 4},
			}, players)

			hand, err := a.GetCards("A")
			require.NoError(t, err)
			assert.Equal(t, card.Number(7, card.Red), hand[0])
			assert.Equal(t, card.NewWild(), hand[2])

			top, err := a.TopCard()
			require.NoError(t, err)
			assert.Equal(t, card.Number(5, card.Red), top)

			// out of turn
			assert.True(t, client.IsStatus(b.UseCard("B", 0), protocol.StatusRejected))

			require.NoError(t, a.UseCard("A", 0))
			turn, err = b.CurrentTurn()
			require.NoError(t, err)
			assert.Equal(t, "B", turn)

			require.NoError(t, b.Draw("B"))
			n, err := a.GetCardNum("B")
			require.NoError(t, err)
			assert.Equal(t, 5, n)

			require.NoError(t, a.UseCard("A", 0)) // red +2
			plus, err := b.GetPlus()
			require.NoError(t, err)
			assert.Equal(t, 2, plus)

			require.NoError(t, b.UseCard("B", 0)) // blue +2 stacks
			plus, err = a.GetPlus()
			require.NoError(t, err)
			assert.Equal(t, 4, plus)

			require.NoError(t, a.Draw("A"))
			n, err = a.GetCardNum("A")
			require.NoError(t, err)
			assert.Equal(t, 6, n)

			require.NoError(t, b.ResetPlus())
			require.NoError(t, b.TakeCards("B", 1))

			// A colors the wild green and plays it
			require.NoError(t, a.CycleColorUp("A", 0))
			require.NoError(t, a.CycleColorUp("A", 0))
			require.NoError(t, a.CycleColorDown("A", 0))
			require.NoError(t, a.CycleColorUp("A", 0))
			hand, err = a.GetCards("A")
			require.NoError(t, err)
			assert.Equal(t, card.New(card.Wild, card.Green), hand[0])
			require.NoError(t, a.UseCard("A", 0))

			gs, err := b.Refresh("B")
			require.NoError(t, err)
			assert.True(t, gs.IsMyTurn())
			assert.Equal(t, card.New(card.Wild, card.Green), gs.TopCard)
			assert.Len(t, gs.Hand, 5)
			assert.Len(t, gs.Players, 2)
			_, won := gs.Winner()
			assert.False(t, won)
		})
	}
}

func TestClient_Rejections(t *testing.T) {
	t.Parallel()
	addr := startTCP(t, testConfig(codec.NameJSON))
	c := dial(t, addr, codec.JSON{})

	err := c.TakeCards("ghost", 1)
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, protocol.StatusNotSeated, se.Status)
	assert.Equal(t, protocol.KindTakeCards, se.Kind)
	assert.NotErrorIs(t, err, client.ErrConnection)

	// client-side validation never reaches the wire as a crash
	assert.True(t, client.IsStatus(c.Join("   "), protocol.StatusMalformed))

	hand, err := c.GetCards("ghost")
	require.NoError(t, err)
	assert.Empty(t, hand)

	n, err := c.GetCardNum("ghost")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDial_ConnectionFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = client.Dial(context.Background(), addr)
	assert.ErrorIs(t, err, client.ErrConnection)

	_, err = client.Dial(context.Background(), "ws://"+addr)
	assert.ErrorIs(t, err, client.ErrConnection)
}

func TestClient_ServerGoneIsConnectionError(t *testing.T) {
	t.Parallel()

	s, err := server.NewServer(testConfig(codec.NameJSON))
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.Serve(ln) }()

	c := dial(t, ln.Addr().String(), codec.JSON{})
	require.NoError(t, c.Join("Z"))
	require.NoError(t, s.Shutdown(context.Background()))

	_, err = c.GetPlus()
	assert.ErrorIs(t, err, client.ErrConnection)
	// the client stays closed
	_, err = c.TopCard()
	assert.ErrorIs(t, err, client.ErrConnection)
	assert.NoError(t, c.Close())
}
