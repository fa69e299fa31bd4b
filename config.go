package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Eula    EulaConfig    `yaml:"eula"`
	Discord DiscordConfig `yaml:"discord"`
	RCON    RCONConfig    `yaml:"rcon"`
	OTel    OTelConfig    `yaml:"otel"`
}

// ServerConfig describes how to launch the server process. It is immutable
// once handed to a StartServer command; the supervisor keeps the last
// successfully started config for config-less restarts.
type ServerConfig struct {
	JarPath      string   `yaml:"jar_path"`
	MemoryMB     int      `yaml:"memory_mb"`
	ExtraFlags   []string `yaml:"extra_flags"`
	InheritStdin bool     `yaml:"inherit_stdin"`
}

// Validate checks the jar path. Called lazily, at start time only.
func (c *ServerConfig) Validate() error {
	info, err := os.Stat(c.JarPath)
	if err != nil {
		return fmt.Errorf("server jar: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("server jar %s is a directory", c.JarPath)
	}
	return nil
}

type EulaConfig struct {
	// AutoAgree accepts the EULA and restarts once when a run ends with the
	// EULA warning. Off by default: accepting is a legal act.
	AutoAgree bool `yaml:"auto_agree"`
}

type DiscordConfig struct {
	Enabled   bool     `yaml:"enabled"`
	BotToken  string   `yaml:"-"`      // from env only
	ChannelID string   `yaml:"-"`      // from env only
	Events    []string `yaml:"events"` // list of event names, or ["all"]
}

// RCONConfig is the fallback command path for servers run with
// inherit_stdin, where stdin-directed commands are no-ops.
type RCONConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"-"` // from env only
}

type OTelConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ServiceName    string        `yaml:"service_name"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			JarPath:  "server.jar",
			MemoryMB: 1024,
		},
		Discord: DiscordConfig{
			Enabled: true,
			Events:  []string{"all"},
		},
		RCON: RCONConfig{
			Host: "localhost",
			Port: "25575",
		},
		OTel: OTelConfig{
			ServiceName:    "mc-server-wrapper",
			MetricInterval: 15 * time.Second,
		},
	}
}

func loadConfig() (Config, error) {
	cfg := defaultConfig()

	configPath := envOr("CONFIG_PATH", "wrapper.yaml")
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}
	// missing config file is not an error, defaults apply

	// Env overrides (secrets + runtime values)
	if v := os.Getenv("SERVER_JAR"); v != "" {
		cfg.Server.JarPath = v
	}
	cfg.Discord.BotToken = os.Getenv("DISCORD_BOT_TOKEN")
	cfg.Discord.ChannelID = os.Getenv("DISCORD_CHANNEL_ID")
	cfg.RCON.Password = os.Getenv("RCON_PASSWORD")

	if cfg.Server.MemoryMB <= 0 {
		return cfg, fmt.Errorf("server.memory_mb must be positive, got %d", cfg.Server.MemoryMB)
	}
	if cfg.Discord.BotToken != "" && cfg.Discord.ChannelID == "" {
		return cfg, fmt.Errorf("DISCORD_CHANNEL_ID is required when DISCORD_BOT_TOKEN is set")
	}
	if cfg.Discord.BotToken == "" {
		cfg.Discord.Enabled = false
	}
	if cfg.RCON.Enabled && cfg.RCON.Password == "" {
		return cfg, fmt.Errorf("RCON_PASSWORD env is required when rcon is enabled")
	}

	return cfg, nil
}

// discordEventAllowed returns whether a given event type should be sent to Discord.
func (c *Config) discordEventAllowed(eventType string) bool {
	if !c.Discord.Enabled {
		return false
	}
	for _, e := range c.Discord.Events {
		if e == "all" || e == eventType {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
