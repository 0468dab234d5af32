package main

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l *logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.value = v
	return nil
}

// defined flags
var (
	levelFlag  logLevelFlag
	configFlag = flag.String("config", "", "Path to a TOML config file")
	urlFlag    = flag.String("url", "", "Sheet URL; overrides the config")
	fpsFlag    = flag.Int("fps", 0, "Frames per second; overrides the config")
	loadFlag   = flag.Bool("load", false, "Load the sheet on start")
	muteFlag   = flag.Bool("mute", false, "Disable sound cues")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir)
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "Log level name: debug, info, warn, error")
}
