package config

import (
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the server configuration, corresponding to portfolio.yaml.
type Config struct {
	Port          int    `koanf:"port"`
	Mode          string `koanf:"mode"`
	StaticDir     string `koanf:"static_dir"`
	PhotoDir      string `koanf:"photo_dir"`
	ContentFile   string `koanf:"content_file"`
	WatchContent  bool   `koanf:"watch_content"`
	ResumePath    string `koanf:"resume_path"`
	ResumeName    string `koanf:"resume_name"`
	MailTo        string `koanf:"mail_to"`
	DBPath        string `koanf:"db_path"`
	TrackVisitors bool   `koanf:"track_visitors"`
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
}

// Default returns a Config with the values used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:          8080,
		Mode:          gin.ReleaseMode,
		StaticDir:     "public",
		PhotoDir:      "public/photography",
		ResumePath:    "public/Sameer-Kadi-Resume.pdf",
		ResumeName:    "Sameer-Kadi-Resume.pdf",
		MailTo:        "skadi@asu.edu",
		DBPath:        "data/portfolio.db",
		TrackVisitors: true,
	}
}

// Load reads .env (if present), the optional YAML file at path, then overlays
// PORTFOLIO_* environment variables. A bare PORT variable is honoured last.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if _, err := mail.ParseAddress(c.MailTo); err != nil {
		return fmt.Errorf("invalid mail_to %q: %w", c.MailTo, err)
	}
	if c.ResumeName == "" {
		return fmt.Errorf("resume_name is required")
	}
	if c.AdminPassword != "" && c.AdminUsername == "" {
		return fmt.Errorf("admin_username is required when admin_password is set")
	}
	return nil
}

// AdminEnabled reports whether admin credentials were configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
