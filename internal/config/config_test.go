package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 9000
  ws_port: 0
  max_connections: 50
  read_timeout: 60

security:
  allowed_origins: ["http://localhost:3000"]
  conns_per_minute: 30

game:
  hand_size: 5
  max_players: 4
  strict_color_cycle: false

protocol:
  codec: proto

redis:
  enabled: true
  addr: "redis:6379"
  password: "secret"
  db: 1
  channel: "uno:test"
  history: 20

log:
  level: debug
  format: json

client:
  ticks: 250
  sound: true
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 0, cfg.Server.WSPort)
	assert.Equal(t, 50, cfg.Server.MaxConnections)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 30, cfg.Security.ConnsPerMinute)
	assert.Equal(t, time.Minute, cfg.Security.BanDuration())
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeoutDuration())
	assert.Equal(t, 64*1024, cfg.Server.MaxFrameSize)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())

	assert.Equal(t, 5, cfg.Game.HandSize)
	assert.Equal(t, 4, cfg.Game.MaxPlayers)
	assert.False(t, cfg.Game.StrictColorCycle)

	assert.Equal(t, "proto", cfg.Protocol.Codec)

	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "uno:test", cfg.Redis.Channel)
	assert.Equal(t, 20, cfg.Redis.History)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.Equal(t, 250*time.Millisecond, cfg.Client.TickDuration())
	assert.True(t, cfg.Client.Sound)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 7000\n"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 8081, cfg.Server.WSPort)
	assert.Equal(t, 300, cfg.Server.ReadTimeout)
	assert.Equal(t, 7, cfg.Game.HandSize)
	assert.Equal(t, 10, cfg.Game.MaxPlayers)
	assert.True(t, cfg.Game.StrictColorCycle)
	assert.Equal(t, "json", cfg.Protocol.Codec)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "uno:events", cfg.Redis.Channel)
	assert.Equal(t, 100, cfg.Client.Ticks)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Game, cfg.Game)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: [1, 2\n"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("UNO_SERVER_HOST", "10.0.0.1")
	t.Setenv("UNO_SERVER_PORT", "9100")
	t.Setenv("UNO_WS_PORT", "9101")
	t.Setenv("UNO_REDIS_ADDR", "cache:6379")
	t.Setenv("UNO_LOG_LEVEL", "warn")
	t.Setenv("UNO_CODEC", "proto")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 9101, cfg.Server.WSPort)
	assert.Equal(t, "10.0.0.1:9101", cfg.Server.WSAddr())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "proto", cfg.Protocol.Codec)
}

func TestLoad_EnvBadPort(t *testing.T) {
	t.Setenv("UNO_SERVER_PORT", "eighty")

	_, err := Load("")
	assert.ErrorContains(t, err, "UNO_SERVER_PORT")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unbounded players", func(c *Config) { c.Game.MaxPlayers = 0 }, false},
		{"deck too small", func(c *Config) { c.Game.MaxPlayers = 16 }, true},
		{"exact fit", func(c *Config) { c.Game.MaxPlayers = 15 }, false},
		{"negative hand", func(c *Config) { c.Game.HandSize = -1 }, true},
		{"empty hand", func(c *Config) { c.Game.HandSize = 0 }, true},
		{"unknown codec", func(c *Config) { c.Protocol.Codec = "xml" }, true},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, true},
		{"negative connections", func(c *Config) { c.Server.MaxConnections = -5 }, true},
		{"zero frame size", func(c *Config) { c.Server.MaxFrameSize = 0 }, true},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -1 }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative conn limit", func(c *Config) { c.Security.ConnsPerMinute = -1 }, true},
		{"negative history", func(c *Config) { c.Redis.History = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
