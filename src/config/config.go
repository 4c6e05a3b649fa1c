package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"progress-report-bot/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeoutSeconds = 10
	defaultColor          = 0x0099ff
	defaultFooter         = "Progress Report Bot"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig loads the YAML file at configPath, applies environment overrides
// (a .env file in the working directory is loaded first if present) and
// validates the result. An empty configPath skips the file.
func NewConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// 1. Defaults, then the YAML file on top
	modelConfig := Defaults()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, modelConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
		}
	}

	config := &Config{MConfig: modelConfig}

	// 2. Environment wins over the file
	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Defaults returns the configuration used for anything the file leaves unset.
func Defaults() *models.MConfig {
	return &models.MConfig{
		Name:     "progress-report-bot",
		Host:     "0.0.0.0",
		Port:     10000,
		LogLevel: "INFO",
		Discord: models.MDiscordConfig{
			Footer:     defaultFooter,
			EmbedColor: defaultColor,
		},
		StatsAPI: models.MStatsAPIConfig{
			TimeoutSeconds: defaultTimeoutSeconds,
			RenderMode:     string(models.RenderCombined),
		},
	}
}

// -----------------------------------------------------------------------------

// ApplyEnv overrides fields from the process environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strVars := map[string]*string{
		"DISCORD_TOKEN": &c.Discord.Token,
		"CLIENT_ID":     &c.Discord.ApplicationID,
		"GUILD_ID":      &c.Discord.GuildID,
		"CHANNEL_ID":    &c.Discord.ChannelID,
		"API_BASE_URL":  &c.StatsAPI.BaseURL,
		"RENDER_MODE":   &c.StatsAPI.RenderMode,
		"LOG_LEVEL":     &c.LogLevel,
	}
	for key, dst := range strVars {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("PORT"); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}

	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Server
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1 and 65535)", c.Port)
	}

	// Discord
	if c.Discord.Token == "" {
		return fmt.Errorf("discord token cannot be empty (DISCORD_TOKEN)")
	}
	if c.Discord.ChannelID == "" {
		return fmt.Errorf("discord channel id cannot be empty (CHANNEL_ID)")
	}
	if c.Discord.EmbedColor < 0 || c.Discord.EmbedColor > 0xffffff {
		return fmt.Errorf("embed color out of range: %#x", c.Discord.EmbedColor)
	}

	// Stats API
	if c.StatsAPI.BaseURL == "" {
		return fmt.Errorf("stats api base url cannot be empty (API_BASE_URL)")
	}
	u, err := url.Parse(c.StatsAPI.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid stats api base url: %q", c.StatsAPI.BaseURL)
	}
	if c.StatsAPI.TimeoutSeconds <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	switch models.MRenderMode(c.StatsAPI.RenderMode) {
	case models.RenderCombined, models.RenderDelta:
	default:
		return fmt.Errorf("unknown render mode %q (want %q or %q)", c.StatsAPI.RenderMode, models.RenderCombined, models.RenderDelta)
	}

	return nil
}

// -----------------------------------------------------------------------------

// RenderMode returns the validated render mode.
func (c *Config) RenderMode() models.MRenderMode {
	return models.MRenderMode(c.StatsAPI.RenderMode)
}
