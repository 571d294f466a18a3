package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/uno-online/internal/config"
	"github.com/palemoky/uno-online/internal/protocol"
)

// Event types
const (
	EventJoin   = "join"
	EventPlay   = "play"
	EventTake   = "take"
	EventDraw   = "draw"
	EventReset  = "reset"
	EventWinner = "winner"
)

// Event 游戏事件，发布到 Redis 频道并保存最近的记录
type Event struct {
	Type    string             `json:"type"`
	Player  string             `json:"player,omitempty"`
	Card    *protocol.CardInfo `json:"card,omitempty"`
	Count   int                `json:"count,omitempty"` // cards dealt by take/draw
	Pending int                `json:"pending"`
	Turn    string             `json:"turn,omitempty"` // player holding the turn afterwards
	At      int64              `json:"at"`             // unix millis
}

// RedisFeed publishes events to a channel and keeps a capped history list.
type RedisFeed struct {
	client     *redis.Client
	channel    string
	historyKey string
	history    int
}

// NewRedisFeed 创建事件流
func NewRedisFeed(client *redis.Client, channel string, history int) *RedisFeed {
	return &RedisFeed{
		client:     client,
		channel:    channel,
		historyKey: channel + ":history",
		history:    history,
	}
}

// Connect dials Redis and checks it answers before returning a feed.
func Connect(ctx context.Context, cfg config.RedisConfig) (*RedisFeed, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}
	return NewRedisFeed(rdb, cfg.Channel, cfg.History), nil
}

// Publish sends events in order in one pipeline.
func (f *RedisFeed) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := f.client.Pipeline()
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("序列化事件失败: %w", err)
		}
		pipe.Publish(ctx, f.channel, data)
		if f.history > 0 {
			pipe.LPush(ctx, f.historyKey, data)
		}
	}
	if f.history > 0 {
		pipe.LTrim(ctx, f.historyKey, 0, int64(f.history-1))
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns up to n events, newest first.
func (f *RedisFeed) Recent(ctx context.Context, n int) ([]Event, error) {
	if n <= 0 {
		return nil, nil
	}
	items, err := f.client.LRange(ctx, f.historyKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for _, item := range items {
		var ev Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			return nil, fmt.Errorf("反序列化事件失败: %w", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// Subscribe listens on the event channel.
func (f *RedisFeed) Subscribe(ctx context.Context) *redis.PubSub {
	return f.client.Subscribe(ctx, f.channel)
}

// Close closes the Redis client.
func (f *RedisFeed) Close() error {
	return f.client.Close()
}

// NopFeed drops every event. Used when Redis is disabled.
type NopFeed struct{}

func (NopFeed) Publish(context.Context, ...Event) error { return nil }
