package main

import (
	"flag"
	"log/slog"
	"time"

	"github.com/PrahoLama/vine-annotate/app"
	"github.com/PrahoLama/vine-annotate/config"
	"github.com/PrahoLama/vine-annotate/debug"
)

func main() {
	cfgPath := flag.String("config", "vine-annotate.json", "path to the JSON config file")
	imagePath := flag.String("image", "", "orthophoto to open on startup")
	detectionsPath := flag.String("detections", "", "detector JSON to load with the image")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime sampling")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	if cfg.Debug {
		debug.StartRuntimeLogger(5*time.Second, logger)
	}

	container := app.BuildContainer(cfg, logger, *cfgPath)
	application := app.NewApp("Vine Annotate", 1200, 900, container)
	application.Start(*imagePath, *detectionsPath)
}
