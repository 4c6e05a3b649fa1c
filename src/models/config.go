package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Discord  MDiscordConfig  `yaml:"discord"`
	StatsAPI MStatsAPIConfig `yaml:"stats_api"`
	Network  MNetworkConfig  `yaml:"network"`
}

type MDiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"`
	ChannelID     string `yaml:"channel_id"`
	Footer        string `yaml:"footer"`
	EmbedColor    int    `yaml:"embed_color"`
}

type MStatsAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RenderMode     string `yaml:"render_mode"` // "combined" or "delta"
}

type MNetworkConfig struct {
	Proxies   []string `yaml:"proxies"`
	UserAgent string   `yaml:"user_agent"`
}
