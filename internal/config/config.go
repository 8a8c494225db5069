// Package config reads server settings from flags, falling back to CHESS_*
// environment variables and then to defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr          string
	AllowOrigins  string
	ComputerDelay time.Duration
	LogLevel      log.Level
	Seed          int64
}

var levels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// Load parses args (without the program name).
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	delay := fs.String("computer-delay", getenv("CHESS_COMPUTER_DELAY", "600ms"), "pause before the computer replies")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	seed := fs.String("seed", getenv("CHESS_SEED", "0"), "seed for the automated opponent (0 = random)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{Addr: *addr, AllowOrigins: *origins}

	d, err := time.ParseDuration(*delay)
	if err != nil || d < 0 {
		return Config{}, fmt.Errorf("invalid computer delay %q", *delay)
	}
	cfg.ComputerDelay = d

	lvl, ok := levels[strings.ToLower(strings.TrimSpace(*level))]
	if !ok {
		return Config{}, fmt.Errorf("invalid log level %q", *level)
	}
	cfg.LogLevel = lvl

	if cfg.Seed, err = strconv.ParseInt(*seed, 10, 64); err != nil {
		return Config{}, fmt.Errorf("invalid seed %q", *seed)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
