package app

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

func newLogWriter(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 5,
		Compress:   true,
	}
}

func setLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
	slog.Debug("DEBUGGING ENABLED")
}
