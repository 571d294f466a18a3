package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno-online/internal/config"
	"github.com/palemoky/uno-online/internal/protocol"
)

func newTestFeed(t *testing.T, history int) (*RedisFeed, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisFeed(client, "uno:events", history), mr
}

func TestRedisFeed_PublishKeepsCappedHistory(t *testing.T) {
	t.Parallel()

	feed, _ := newTestFeed(t, 3)
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, feed.Publish(ctx, Event{Type: EventTake, Player: "alice", Count: i, At: int64(i)}))
	}

	events, err := feed.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	// 最新的在前
	assert.Equal(t, 4, events[0].Count)
	assert.Equal(t, 3, events[1].Count)
	assert.Equal(t, 2, events[2].Count)

	events, err = feed.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 4, events[0].Count)
}

func TestRedisFeed_PublishBatchOrder(t *testing.T) {
	t.Parallel()

	feed, _ := newTestFeed(t, 10)
	ctx := context.Background()

	top := protocol.CardInfo{Value: "7", Color: "red"}
	require.NoError(t, feed.Publish(ctx,
		Event{Type: EventPlay, Player: "bob", Card: &top, Turn: "alice"},
		Event{Type: EventWinner, Player: "bob"},
	))
	require.NoError(t, feed.Publish(ctx))

	events, err := feed.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventWinner, events[0].Type)
	assert.Equal(t, EventPlay, events[1].Type)
	assert.Equal(t, &top, events[1].Card)
	assert.Equal(t, "alice", events[1].Turn)
}

func TestRedisFeed_NoHistory(t *testing.T) {
	t.Parallel()

	feed, mr := newTestFeed(t, 0)
	require.NoError(t, feed.Publish(context.Background(), Event{Type: EventJoin, Player: "a"}))
	assert.False(t, mr.Exists("uno:events:history"))

	events, err := feed.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRedisFeed_Subscribe(t *testing.T) {
	t.Parallel()

	feed, _ := newTestFeed(t, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := feed.Subscribe(ctx)
	defer sub.Close()
	_, err := sub.Receive(ctx) // subscription confirmation
	require.NoError(t, err)

	require.NoError(t, feed.Publish(ctx, Event{Type: EventReset, Pending: 0}))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, EventReset, ev.Type)
}

func TestRedisFeed_RecentCorrupt(t *testing.T) {
	t.Parallel()

	feed, mr := newTestFeed(t, 5)
	_, err := mr.Lpush("uno:events:history", "not json")
	require.NoError(t, err)

	_, err = feed.Recent(context.Background(), 5)
	assert.Error(t, err)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	feed, err := Connect(context.Background(), config.RedisConfig{Addr: mr.Addr(), Channel: "c", History: 2})
	require.NoError(t, err)
	defer feed.Close()
	require.NoError(t, feed.Publish(context.Background(), Event{Type: EventJoin}))

	mr.Close()
	_, err = Connect(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}

func TestNopFeed(t *testing.T) {
	t.Parallel()
	assert.NoError(t, NopFeed{}.Publish(context.Background(), Event{Type: EventJoin}))
}
