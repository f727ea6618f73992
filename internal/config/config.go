package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings bookrecs needs at startup.
type Config struct {
	APIURL            string `validate:"required,url"`
	LogFile           string `validate:"required"`
	LogLevel          string `validate:"oneof=trace debug info warn error disabled"`
	StatusPollSeconds int    `validate:"gte=0,lte=3600"`
}

const (
	// EnvAPIURL overrides the configured API base URL.
	EnvAPIURL = "BOOKRECS_API_URL"

	defaultConfigPath   = "~/.config/bookrecs/config.toml"
	defaultAPIURL       = "http://localhost:5000"
	defaultLogFile      = "~/.local/state/bookrecs/bookrecs.log"
	defaultLogLevel     = "info"
	defaultStatusPoll   = 15
	defaultEnvFile      = ".env"
	defaultLocalEnvFile = ".env.local"
)

var validate = validator.New()

// Load reads the config file (falling back to defaults when it is missing),
// applies the environment override and validates the result.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:            defaultAPIURL,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		StatusPollSeconds: defaultStatusPoll,
	}

	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	loadEnvFiles()
	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.APIURL = env
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string `toml:"api_url"`
		LogFile           string `toml:"log_file"`
		LogLevel          string `toml:"log_level"`
		StatusPollSeconds *int   `toml:"status_poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if raw.StatusPollSeconds != nil {
		cfg.StatusPollSeconds = *raw.StatusPollSeconds
	}
	return nil
}

// loadEnvFiles populates the environment from .env files in the working
// directory. Existing variables win; missing files are ignored.
func loadEnvFiles() {
	_ = godotenv.Load(defaultLocalEnvFile)
	_ = godotenv.Load(defaultEnvFile)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
