package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/bookrecs/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/bookrecs/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	apiURL := flag.String("api", "", "recommendation API base URL (overrides config and BOOKRECS_API_URL)")
	logLevel := flag.String("log-level", "", "log level: trace, debug, info, warn, error (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIURL:     *apiURL,
		LogLevel:   *logLevel,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "bookrecs: %v\n", err)
		return 1
	}
	return 0
}
