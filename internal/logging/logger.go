// Package logging provides structured logging for the lgmp host, built
// on zerolog so call sites stay cheap on the hot post()/process() path.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel mirrors zerolog's levels under names that match the rest of
// this codebase's vocabulary.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Config holds logging configuration.
type Config struct {
	Level  LogLevel
	Output io.Writer
	// Pretty enables zerolog's human-readable console writer instead of
	// raw JSON lines. Useful for the demo binary's terminal output;
	// production hosts embedding this library will usually leave it off.
	Pretty bool
}

// DefaultConfig returns a sensible default configuration: info level,
// JSON lines on stderr.
func DefaultConfig() *Config {
	return &Config{Level: LevelInfo, Output: os.Stderr}
}

// Logger wraps a zerolog.Logger with the level-named methods the rest
// of this codebase calls.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger builds a Logger from config, using DefaultConfig if config
// is nil.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	var output io.Writer = config.Output
	if output == nil {
		output = os.Stderr
	}
	if config.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}
	zl := zerolog.New(output).Level(config.Level.zerologLevel()).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// With returns a Logger that attaches key to every subsequent event.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithQueue scopes a Logger to a single queue ID.
func (l *Logger) WithQueue(queueID uint32) *Logger {
	return l.With("queue_id", queueID)
}

// WithSession scopes a Logger to a session ID, so log lines survive
// across a host restart without ambiguity about which incarnation
// produced them.
func (l *Logger) WithSession(sessionID uint32) *Logger {
	return l.With("session_id", sessionID)
}

func (l *Logger) event(level LogLevel, msg string, args ...any) {
	ev := l.zl.WithLevel(level.zerologLevel())
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}

func (l *Logger) Debug(msg string, args ...any) { l.event(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.event(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.event(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.event(LevelError, msg, args...) }

var (
	defaultLogger *Logger
	mu            sync.RWMutex
)

// Default returns the process-wide default logger, creating one from
// DefaultConfig on first use.
func Default() *Logger {
	mu.RLock()
	if defaultLogger != nil {
		defer mu.RUnlock()
		return defaultLogger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(logger *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// Global convenience functions delegating to Default().
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { Default().Warn(msg, args...) }
func Error(msg string, args ...any) { Default().Error(msg, args...) }
