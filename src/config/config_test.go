package config

import (
	"os"
	"path/filepath"
	"testing"

	"progress-report-bot/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{MConfig: Defaults()}
	cfg.Discord.Token = "token"
	cfg.Discord.ChannelID = "123"
	cfg.StatsAPI.BaseURL = "https://stats.example.com/exec"
	return cfg
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewConfig_FileAndEnv(t *testing.T) {
	path := writeFile(t, `
name: rok-bot
port: 8080
log_level: DEBUG
discord:
  token: from-file
  channel_id: "111"
  guild_id: "222"
stats_api:
  base_url: https://stats.example.com/exec
  timeout_seconds: 4
  render_mode: delta
`)
	t.Setenv("DISCORD_TOKEN", "from-env")
	t.Setenv("PORT", "9090")

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "rok-bot", cfg.Name)
	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "222", cfg.Discord.GuildID)
	assert.Equal(t, 4, cfg.StatsAPI.TimeoutSeconds)
	assert.Equal(t, models.RenderDelta, cfg.RenderMode())
	assert.Equal(t, defaultFooter, cfg.Discord.Footer, "unset fields keep defaults")
}

func TestNewConfig_MissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewConfig_BadYAML(t *testing.T) {
	_, err := NewConfig(writeFile(t, "port: [not, a, number"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CLIENT_ID":    " 42 ",
		"API_BASE_URL": "https://other.example.com",
		"GUILD_ID":     "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := validConfig()
	cfg.Discord.GuildID = "keep"
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "42", cfg.Discord.ApplicationID)
	assert.Equal(t, "https://other.example.com", cfg.StatsAPI.BaseURL)
	assert.Equal(t, "keep", cfg.Discord.GuildID, "blank env values are ignored")
}

func TestApplyEnv_BadPort(t *testing.T) {
	cfg := validConfig()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == "PORT" {
			return "eighty", true
		}
		return "", false
	})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := map[string]func(c *Config){
		"no token":        func(c *Config) { c.Discord.Token = "" },
		"no channel":      func(c *Config) { c.Discord.ChannelID = "" },
		"no base url":     func(c *Config) { c.StatsAPI.BaseURL = "" },
		"relative url":    func(c *Config) { c.StatsAPI.BaseURL = "/exec" },
		"bad scheme":      func(c *Config) { c.StatsAPI.BaseURL = "ftp://x.example.com" },
		"zero timeout":    func(c *Config) { c.StatsAPI.TimeoutSeconds = 0 },
		"bad render mode": func(c *Config) { c.StatsAPI.RenderMode = "sum" },
		"bad port":        func(c *Config) { c.Port = 70000 },
		"bad color":       func(c *Config) { c.Discord.EmbedColor = 0x1000000 },
		"no name":         func(c *Config) { c.Name = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
