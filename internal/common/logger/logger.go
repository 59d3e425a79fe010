package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// Logger interface defines the logging methods
type Logger interface {
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
}

// logger implementation
type loggerImpl struct {
	zl zerolog.Logger
}

// Config holds configuration for the logger
type Config struct {
	Level      zerolog.Level
	Console    bool
	FilePath   string // empty disables the rotating file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig logs info and above to the console and to a rotating file.
func DefaultConfig(filePath string) Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Console:    true,
		FilePath:   filePath,
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 30,
		Compress:   true,
	}
}

// New creates a new logger instance writing to the given writers
func New(level zerolog.Level, writers ...io.Writer) Logger {
	multi := io.MultiWriter(writers...)
	zl := zerolog.New(multi).With().Timestamp().Logger().Level(level)
	return &loggerImpl{zl: zl}
}

// FromConfig builds a logger from cfg
func FromConfig(cfg Config) Logger {
	var writers []io.Writer
	if cfg.Console {
		writers = append(writers, ConsoleWriter())
	}
	if cfg.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}
	if len(writers) == 0 {
		return Nop()
	}
	return New(cfg.Level, writers...)
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return &loggerImpl{zl: zerolog.Nop()}
}

// ConsoleWriter returns a console writer
func ConsoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
}

// ParseLogLevel maps a level name to a zerolog level, defaulting to info.
func ParseLogLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Info logs an info message
func (l *loggerImpl) Info(msg string, fields ...interface{}) {
	logWithFields(l.zl.Info(), msg, fields...)
}

// Warn logs a warning message
func (l *loggerImpl) Warn(msg string, fields ...interface{}) {
	logWithFields(l.zl.Warn(), msg, fields...)
}

// Error logs an error message
func (l *loggerImpl) Error(msg string, fields ...interface{}) {
	logWithFields(l.zl.Error(), msg, fields...)
}

// Debug logs a debug message
func (l *loggerImpl) Debug(msg string, fields ...interface{}) {
	logWithFields(l.zl.Debug(), msg, fields...)
}

// Fatal logs a fatal message and exits
func (l *loggerImpl) Fatal(msg string, fields ...interface{}) {
	logWithFields(l.zl.Fatal(), msg, fields...)
}

// logWithFields adds structured fields to the event
func logWithFields(event *zerolog.Event, msg string, fields ...interface{}) {
	if event == nil {
		return
	}
	if len(fields) == 1 {
		if m, ok := fields[0].(map[string]interface{}); ok {
			event.Fields(m).Msg(msg)
			return
		}
	}
	// fallback: treat as key-value pairs
	if len(fields)%2 == 0 {
		for i := 0; i < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			if key == "error" {
				if err, ok := fields[i+1].(error); ok && err != nil {
					event = event.Err(err)
					continue
				}
			}
			event = event.Interface(key, fields[i+1])
		}
	}
	event.Msg(msg)
}
