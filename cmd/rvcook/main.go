package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"rvcook/internal/config"
	"rvcook/internal/desktop"
	"rvcook/internal/logging"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: ./rvcook.{yaml,toml,json} if present)")
	flag.Parse()

	boot := logging.New("info", "console", os.Stderr)

	// Variables from .env feed the RVCOOK_* overrides.
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			boot.Debug().Msg("no .env file")
		} else {
			boot.Warn().Err(err).Msg("could not read .env")
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		boot.Fatal().Err(err).Msg("config")
	}

	var extra []io.Writer
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			boot.Fatal().Err(err).Str("path", cfg.Log.File).Msg("open log file")
		}
		defer f.Close()
		extra = append(extra, f)
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr, extra...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("config", configPath).Msg("starting rvcook")
	if err := desktop.Run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("rvcook exited with error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("bye")
}
