package observables

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxSizeMB is the default size of the log file before rotation
	DefaultMaxSizeMB = 10

	// DefaultLevel is used when LogConfig.Level is empty
	DefaultLevel = "info"
)

// LogConfig holds configuration for registry logging
type LogConfig struct {
	Enabled bool `env:"OBSERVABLES_LOG_ENABLED" envDefault:"false"`
	// FilePath is the log file; empty logs to stderr
	FilePath string `env:"OBSERVABLES_LOG_FILE"`
	// Level is any logrus level name
	Level string `env:"OBSERVABLES_LOG_LEVEL" envDefault:"info"`
	// Format is json or text
	Format string `env:"OBSERVABLES_LOG_FORMAT" envDefault:"json"`
	// MaxSizeMB is the file size that triggers rotation
	MaxSizeMB  int  `env:"OBSERVABLES_LOG_MAX_SIZE_MB" envDefault:"10"`
	MaxBackups int  `env:"OBSERVABLES_LOG_MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int  `env:"OBSERVABLES_LOG_MAX_AGE_DAYS" envDefault:"0"`
	Compress   bool `env:"OBSERVABLES_LOG_COMPRESS" envDefault:"false"`
}

// LoadLogConfig reads LogConfig from OBSERVABLES_LOG_* environment variables
func LoadLogConfig() (LogConfig, error) {
	var cfg LogConfig
	if err := env.Parse(&cfg); err != nil {
		return LogConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewLogger builds a logger from cfg. The returned closer releases the log
// file, if any, and must be closed once the logger is no longer used.
func NewLogger(cfg LogConfig) (*logrus.Logger, io.Closer, error) {
	if !cfg.Enabled {
		return discardLogger(), nopCloser{}, nil
	}

	levelName := cfg.Level
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		formatter = &logrus.JSONFormatter{}
	case "text":
		formatter = &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		}
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(formatter)

	if cfg.FilePath == "" {
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeMB
	}
	writer := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	logger.SetOutput(writer)

	return logger, writer, nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
