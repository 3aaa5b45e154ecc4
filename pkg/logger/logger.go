package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level, format and output destinations.
type Config struct {
	Level      string // debug, info, warn, error
	Console    bool   // write to stderr; off while the TUI owns the terminal
	OutputFile string // rotating file output; empty disables it
	MaxSize    int    // megabytes per file before rotation
	MaxBackups int    // rotated files to keep
	MaxAge     int    // days to keep rotated files
	Compress   bool
}

// Init configures the global logrus logger. Package-scoped entries
// created with logrus.WithField pick the configuration up as well.
// With neither console nor file output configured, logs are discarded.
func Init(config Config) error {
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	var writers []io.Writer
	if config.Console {
		writers = append(writers, os.Stderr)
	}
	if config.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0o755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.OutputFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	logrus.SetLevel(level)
	logrus.SetOutput(io.MultiWriter(writers...))
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})
	return nil
}

// InitDiscard routes all logging to io.Discard. Test helper.
func InitDiscard() {
	logrus.SetOutput(io.Discard)
}
