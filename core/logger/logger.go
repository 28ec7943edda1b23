package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// Init configures the global logger. JSON output everywhere except local
// development, where text is easier to read.
func Init(env string) {
	once.Do(func() {
		var handler slog.Handler
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		if env == "production" {
			opts.Level = slog.LevelInfo
			handler = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
		instance = slog.New(handler)
	})
}

func get() *slog.Logger {
	if instance == nil {
		Init("development")
	}
	return instance
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}
