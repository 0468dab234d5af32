package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDir      = "logs"
	logFileName = "tilecast.log"
	maxLogSize  = 10 << 20 // bytes before rotation
	maxBackups  = 3
)

// setupLogging routes slog to a rotating file in logDir when debug is set
// Otherwise all logs are discarded; the terminal belongs to the renderer
// Returns the file logger for closing, nil when discarding
func setupLogging(debug bool, level slog.Level) *lumberjack.Logger {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}
	lj := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    maxLogSize >> 20, // megabytes
		MaxBackups: maxBackups,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(lj, &slog.HandlerOptions{Level: level})))
	return lj
}
