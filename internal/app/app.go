package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/config"
	"github.com/five82/bookrecs/internal/logging"
	"github.com/five82/bookrecs/internal/prefs"
	"github.com/five82/bookrecs/internal/state"
	"github.com/five82/bookrecs/internal/ui"
)

// Options configure the bookrecs application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/bookrecs/prefs.toml
	APIURL     string // overrides config and environment when set
	LogLevel   string // overrides config when set
}

// Run boots the bookrecs TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}

	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Path: cfg.LogFile}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logging.Close() }()

	logger := logging.With("app")
	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := bookapi.NewClient(cfg.APIURL, bookapi.WithLogger(logging.With("bookapi")))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	logger.Info().
		Str("api_url", client.BaseURL()).
		Int("status_poll_seconds", cfg.StatusPollSeconds).
		Str("theme", userPrefs.Theme).
		Msg("bookrecs starting")

	store := &state.StatusStore{}
	interval := time.Duration(cfg.StatusPollSeconds) * time.Second
	if interval > 0 {
		StartPoller(ctx, store, client, interval, logging.With("poller"))
	}

	err = ui.Run(ui.Options{
		Context:       ctx,
		API:           client,
		APIURL:        client.BaseURL(),
		Store:         store,
		StatusPolling: interval > 0,
		LogPath:       cfg.LogFile,
		Logger:        logging.With("ui"),
		ThemeName:     userPrefs.Theme,
		StartPage:     userPrefs.StartPage,
		PrefsPath:     opts.PrefsPath,
	})
	if err != nil {
		logger.Error().Err(err).Msg("ui exited with error")
		return err
	}
	logger.Info().Msg("bookrecs stopped")
	return nil
}

// applyOverrides layers command-line values over the loaded config.
func applyOverrides(cfg *config.Config, opts Options) error {
	changed := false
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
		changed = true
	}
	if v := strings.ToLower(strings.TrimSpace(opts.LogLevel)); v != "" {
		cfg.LogLevel = v
		changed = true
	}
	if !changed {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("command-line override: %w", err)
	}
	return nil
}
