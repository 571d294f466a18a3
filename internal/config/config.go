package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 服务端与客户端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Game     GameConfig     `yaml:"game"`
	Protocol ProtocolConfig `yaml:"protocol"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Client   ClientConfig   `yaml:"client"`
}

// ServerConfig TCP 与 WebSocket 监听配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`            // TCP
	WSPort         int    `yaml:"ws_port"`         // 0 disables WebSocket
	MaxConnections int    `yaml:"max_connections"` // 0 = unbounded
	ReadTimeout    int    `yaml:"read_timeout"`    // seconds, 0 = none
	WriteTimeout   int    `yaml:"write_timeout"`   // seconds, 0 = none
	MaxFrameSize   int    `yaml:"max_frame_size"`  // bytes
}

// Addr is the TCP listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WSAddr is the WebSocket listen address.
func (c *ServerConfig) WSAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.WSPort)
}

// ReadTimeoutDuration 返回读超时时长
func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration 返回写超时时长
func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`  // WebSocket origins, "*" allows all
	ConnsPerMinute int      `yaml:"conns_per_minute"` // per IP, 0 = unlimited
	BanSeconds     int      `yaml:"ban_seconds"`
}

// BanDuration 返回封禁时长
func (c *SecurityConfig) BanDuration() time.Duration {
	return time.Duration(c.BanSeconds) * time.Second
}

// GameConfig 游戏配置
type GameConfig struct {
	HandSize         int  `yaml:"hand_size"`
	MaxPlayers       int  `yaml:"max_players"`
	StrictColorCycle bool `yaml:"strict_color_cycle"` // color cycling requires the turn
}

// ProtocolConfig selects the payload codec.
type ProtocolConfig struct {
	Codec string `yaml:"codec"` // json | proto
}

// RedisConfig Redis 事件流配置
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
	History  int    `yaml:"history"` // recent events kept in a capped list
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
	File   string `yaml:"file"`
}

// ClientConfig 客户端配置
type ClientConfig struct {
	Ticks int  `yaml:"ticks"` // polling interval, milliseconds
	Sound bool `yaml:"sound"`
}

// TickDuration 返回轮询间隔
func (c *ClientConfig) TickDuration() time.Duration {
	return time.Duration(c.Ticks) * time.Millisecond
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			WSPort:       8081,
			ReadTimeout:  300,
			WriteTimeout: 10,
			MaxFrameSize: 64 * 1024,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"*"},
			BanSeconds:     60,
		},
		Game: GameConfig{
			HandSize:         7,
			MaxPlayers:       10,
			StrictColorCycle: true,
		},
		Protocol: ProtocolConfig{
			Codec: "json",
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: "uno:events",
			History: 100,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Client: ClientConfig{
			Ticks: 100,
		},
	}
}

// Load 加载配置文件. An empty path yields the defaults. A .env file in the
// working directory and UNO_* environment variables are applied on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		// 未出现的字段保留默认值
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("UNO_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if err := envInt("UNO_SERVER_PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := envInt("UNO_WS_PORT", &c.Server.WSPort); err != nil {
		return err
	}
	if v := os.Getenv("UNO_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}
	if v := os.Getenv("UNO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("UNO_CODEC"); v != "" {
		c.Protocol.Codec = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// universeSize mirrors the deck size; kept local so config has no game imports.
const universeSize = 108

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 0 || c.Server.WSPort < 0:
		return errors.New("server: ports must not be negative")
	case c.Server.MaxConnections < 0:
		return errors.New("server: max_connections must not be negative")
	case c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0:
		return errors.New("server: timeouts must not be negative")
	case c.Server.MaxFrameSize <= 0:
		return errors.New("server: max_frame_size must be positive")
	case c.Security.ConnsPerMinute < 0 || c.Security.BanSeconds < 0:
		return errors.New("security: limits must not be negative")
	case c.Game.HandSize < 1:
		return errors.New("game: hand_size must be at least 1")
	case c.Game.MaxPlayers < 0:
		return errors.New("game: max_players must not be negative")
	case c.Game.MaxPlayers > 0 && c.Game.HandSize*c.Game.MaxPlayers+1 > universeSize:
		return fmt.Errorf("game: %d players with %d cards each do not fit a %d card deck",
			c.Game.MaxPlayers, c.Game.HandSize, universeSize)
	case c.Redis.History < 0:
		return errors.New("redis: history must not be negative")
	case c.Client.Ticks < 0:
		return errors.New("client: ticks must not be negative")
	}

	switch c.Protocol.Codec {
	case "json", "proto":
	default:
		return fmt.Errorf("protocol: unknown codec %q", c.Protocol.Codec)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}
