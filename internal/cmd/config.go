package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cmaddox5/holderbot/internal/game"
)

type Config struct {
	Discord struct {
		GuildID   string `yaml:"guild_id"`
		ChannelID string `yaml:"channel_id"`
	} `yaml:"discord"`

	Indexer struct {
		BaseURL  string `yaml:"base_url"`
		Contract string `yaml:"contract"`
	} `yaml:"indexer"`

	Gateway struct {
		Addr string `yaml:"addr"`
	} `yaml:"gateway"`

	Game struct {
		RoundID         string `yaml:"round_id"`
		DurationSeconds int    `yaml:"duration_seconds"`
		ReminderSeconds []int  `yaml:"reminder_seconds"`
		DomainSize      int    `yaml:"domain_size"`
		PointAward      int    `yaml:"point_award"`
	} `yaml:"game"`
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Discord.GuildID == "" || config.Discord.ChannelID == "" {
		return nil, fmt.Errorf("config must set discord.guild_id and discord.channel_id")
	}

	return &config, nil
}

// gameConfig converts the YAML knobs into round settings. Unset knobs are
// left zero so the round engine applies its own defaults.
func (c *Config) gameConfig() game.Config {
	cfg := game.Config{
		RoundID:    c.Game.RoundID,
		Duration:   time.Duration(c.Game.DurationSeconds) * time.Second,
		DomainSize: c.Game.DomainSize,
		PointAward: c.Game.PointAward,
	}
	if c.Game.RoundID == "" {
		cfg.RoundID = "daily"
	}
	if c.Game.ReminderSeconds != nil {
		offsets := make([]time.Duration, 0, len(c.Game.ReminderSeconds))
		for _, sec := range c.Game.ReminderSeconds {
			offsets = append(offsets, time.Duration(sec)*time.Second)
		}
		cfg.ReminderOffsets = offsets
	}
	return cfg
}
