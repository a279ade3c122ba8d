package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything the bot needs at startup. Secrets come from
// the environment (optionally via .env); everything else from a yaml
// settings file.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	Debug         bool

	Bot BotConfig
}

// BotConfig is the non-secret part of the configuration.
type BotConfig struct {
	AnalyzerEndpoint string  `yaml:"analyzer_endpoint"`
	CPUDBPath        string  `yaml:"cpu_db_path"`
	GPUDBPath        string  `yaml:"gpu_db_path"`
	StateFilePath    string  `yaml:"state_file_path"`
	StatsTable       string  `yaml:"stats_table"`
	CooldownSeconds  float64 `yaml:"cooldown_seconds"`
	HWCheckEnabled   bool    `yaml:"hw_check_enabled"`
	ChannelBlacklist []int64 `yaml:"channel_blacklist"`
	Admins           []int64 `yaml:"admins"`
	Supporters       []int64 `yaml:"supporters"`
}

func defaultBotConfig() BotConfig {
	return BotConfig{
		AnalyzerEndpoint: "https://obsproject.com/analyzer-api/",
		CPUDBPath:        "data/cpu_db.json",
		GPUDBPath:        "data/gpu_db.json",
		StateFilePath:    "data/state.json",
		StatsTable:       "hardware_stats",
		CooldownSeconds:  20,
	}
}

// Load reads the environment and the optional bot settings file.
func Load() (*Config, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Debug:         getEnvBool("DEBUG", false),
		Bot:           defaultBotConfig(),
	}

	path := os.Getenv("BOT_CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg.Bot); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is empty")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is empty")
	}
	if cfg.Bot.StatsTable == "" {
		return nil, fmt.Errorf("stats_table must not be empty")
	}

	return cfg, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}
