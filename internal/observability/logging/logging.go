package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	ServiceName string
	Environment string
	Level       string

	// File, when set, receives a copy of every record and is rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

func NewLogger(cfg Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(Writer(cfg), &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)
}

func ParseLevel(s string) *slog.LevelVar {
	level := new(slog.LevelVar)

	switch s {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
	return level
}

func Writer(cfg Config) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	size := cfg.MaxSizeMB
	if size <= 0 {
		size = 10
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    size,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	})
}
