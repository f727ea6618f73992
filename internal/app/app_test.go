package app

import (
	"strings"
	"testing"

	"github.com/five82/bookrecs/internal/config"
)

func baseConfig() config.Config {
	return config.Config{
		APIURL:            "http://localhost:5000",
		LogFile:           "/tmp/bookrecs.log",
		LogLevel:          "info",
		StatusPollSeconds: 15,
	}
}

func TestApplyOverrides_NoOverridesKeepsConfig(t *testing.T) {
	cfg := baseConfig()
	if err := applyOverrides(&cfg, Options{}); err != nil {
		t.Fatalf("applyOverrides returned error: %v", err)
	}
	if cfg != baseConfig() {
		t.Fatalf("cfg = %#v, want unchanged", cfg)
	}
}

func TestApplyOverrides_ReplacesURLAndLevel(t *testing.T) {
	cfg := baseConfig()
	err := applyOverrides(&cfg, Options{APIURL: " http://books.internal:8080 ", LogLevel: "DEBUG"})
	if err != nil {
		t.Fatalf("applyOverrides returned error: %v", err)
	}
	if cfg.APIURL != "http://books.internal:8080" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestApplyOverrides_RejectsInvalidLevel(t *testing.T) {
	cfg := baseConfig()
	err := applyOverrides(&cfg, Options{LogLevel: "loud"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "LogLevel") {
		t.Fatalf("error = %v, want it to name LogLevel", err)
	}
}
