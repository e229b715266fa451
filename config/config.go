package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Mode     Mode           `toml:"-"`
	Service  ServiceConfig  `toml:"service"`
	Frontend FrontendConfig `toml:"frontend"`
	Sessions SessionsConfig `toml:"sessions"`
}

type ServiceConfig struct {
	Mode           string   `toml:"mode"`
	ListenAddr     string   `toml:"listen_addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type FrontendConfig struct {
	// WidgetURL is the validation widget script embedded into rendered
	// content; DIBaseURL is the digital identity frontend the token is
	// appended to. Empty values fall back to the production frontend.
	WidgetURL string `toml:"widget_url"`
	DIBaseURL string `toml:"di_base_url"`
	ElementID string `toml:"element_id"`

	// Channel name overrides, for frontends deployed with non-default
	// handler names.
	ValidationChannel string `toml:"validation_channel"`
	DIChannel         string `toml:"di_channel"`
}

type SessionsConfig struct {
	// CacheSize bounds the number of concurrently hosted sessions;
	// TTLSeconds expires abandoned ones.
	CacheSize  int `toml:"cache_size"`
	TTLSeconds int `toml:"ttl_seconds"`
}

func New() (*Config, error) {
	fileName := os.Getenv("CONFIG")
	var cfg Config
	if _, err := toml.DecodeFile(fileName, &cfg); err != nil {
		return nil, err
	}

	var mode Mode
	switch cfg.Service.Mode {
	case "local":
		mode = LocalMode
	case "dev", "development":
		mode = DevelopmentMode
	case "prod", "production":
		mode = ProductionMode
	default:
		return nil, fmt.Errorf("config service.mode value is invalid, must be one of \"development\", \"dev\", \"production\" or \"prod\"")
	}
	cfg.Mode = mode
	cfg.Service.Mode = mode.String()

	if cfg.Service.ListenAddr == "" {
		cfg.Service.ListenAddr = ":8787"
	}
	if cfg.Sessions.CacheSize == 0 {
		cfg.Sessions.CacheSize = 512
	}
	if cfg.Sessions.TTLSeconds == 0 {
		cfg.Sessions.TTLSeconds = 900
	}

	return &cfg, nil
}

type Mode uint32

const (
	LocalMode Mode = iota
	DevelopmentMode
	ProductionMode
)

func (m Mode) String() string {
	switch m {
	case LocalMode:
		return "local"
	case DevelopmentMode:
		return "development"
	case ProductionMode:
		return "production"
	default:
		return ""
	}
}
