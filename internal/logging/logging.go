package logging

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the global logrus logger. LOG_LEVEL takes precedence over the configured level.
func Setup(cfg config.Log) error {
	level := cfg.Level
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		level = envLevel
	}
	if level == "" {
		level = "info"
	}
	logrusLevel, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(logrusLevel)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(Writer(cfg))
	return nil
}

// Writer returns stdout, or stdout combined with a rotating file when cfg.File is set.
func Writer(cfg config.Log) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		log.Warnf("unable to create log directory for %s: %v, logging to stdout only", cfg.File, err)
		return os.Stdout
	}
	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, fileWriter)
}
