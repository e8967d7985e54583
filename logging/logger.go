// Package logging provides a tiny abstraction over slog so downstream code
// depends on a minimal interface (Logger) while allowing callers to plug in
// any structured logger. It also offers a contextual OrchestraLogger with
// session/task scoping helpers and domain specific helpers for tool calls,
// reasoning calls and orchestration runs.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled
// from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the minimal logging interface used throughout the engine.
// Callers may provide their own implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// Config configures construction of an OrchestraLogger.
type Config struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
	SessionID string
	TaskID    string
}

// DefaultConfig returns a baseline JSON info level configuration.
func DefaultConfig() *Config {
	return &Config{Level: LogLevelInfo, Format: "json", Output: os.Stdout, AddSource: true}
}

// OrchestraLogger wraps slog.Logger adding contextual cloning helpers and
// domain convenience methods. It is cheap to copy via With* methods.
type OrchestraLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	sessionID string
	taskID    string
}

// NewLogger builds an OrchestraLogger from a config (or defaults if nil).
func NewLogger(cfg *Config) *OrchestraLogger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &OrchestraLogger{
		logger:    slog.New(handler),
		level:     cfg.Level,
		component: cfg.Component,
		sessionID: cfg.SessionID,
		taskID:    cfg.TaskID,
	}
}

// NewSlogLogger is a convenience constructor for common cases.
func NewSlogLogger(level LogLevel, format string, addSource bool) *OrchestraLogger {
	cfg := DefaultConfig()
	cfg.Level = level
	if format != "" {
		cfg.Format = format
	}
	cfg.AddSource = addSource
	return NewLogger(cfg)
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent sets the logical component (orchestrator, agent, react, ...).
func (l *OrchestraLogger) WithComponent(c string) *OrchestraLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithSession attaches session and task identifiers.
func (l *OrchestraLogger) WithSession(sessionID, taskID string) *OrchestraLogger {
	nl := *l
	nl.sessionID = sessionID
	nl.taskID = taskID
	return &nl
}

func (l *OrchestraLogger) attrs(extra ...slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(extra)+3)
	if l.component != "" {
		out = append(out, slog.String("component", l.component))
	}
	if l.sessionID != "" {
		out = append(out, slog.String("session_id", l.sessionID))
	}
	if l.taskID != "" {
		out = append(out, slog.String("task_id", l.taskID))
	}
	return append(out, extra...)
}

// Debug logs at debug level.
func (l *OrchestraLogger) Debug(msg string, args ...any) {
	if l.level > LogLevelDebug {
		return
	}
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, l.attrs(argAttrs(args)...)...)
}

// Info logs at info level.
func (l *OrchestraLogger) Info(msg string, args ...any) {
	if l.level > LogLevelInfo {
		return
	}
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, l.attrs(argAttrs(args)...)...)
}

// Warn logs at warn level.
func (l *OrchestraLogger) Warn(msg string, args ...any) {
	if l.level > LogLevelWarn {
		return
	}
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, l.attrs(argAttrs(args)...)...)
}

// Error logs at error level.
func (l *OrchestraLogger) Error(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, l.attrs(argAttrs(args)...)...)
}

// argAttrs converts alternating key/value args into slog attributes.
func argAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}

// LogToolCall records execution details for a tool invocation.
func (l *OrchestraLogger) LogToolCall(tool string, dur time.Duration, success bool, err error) {
	attrs := []slog.Attr{
		slog.String("tool_name", tool),
		slog.Duration("duration", dur),
		slog.Bool("success", success),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	level, msg := slog.LevelInfo, "Tool execution completed"
	if !success {
		level, msg = slog.LevelWarn, "Tool execution failed"
	}
	l.logger.LogAttrs(context.Background(), level, msg, l.attrs(attrs...)...)
}

// LogReasoningCall records reasoning-provider latency and throughput.
func (l *OrchestraLogger) LogReasoningCall(provider string, dur time.Duration, tokensPerSecond float64, err error) {
	attrs := []slog.Attr{
		slog.String("provider", provider),
		slog.Duration("duration", dur),
		slog.Float64("tokens_per_second", tokensPerSecond),
	}
	level, msg := slog.LevelInfo, "Reasoning call completed"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level, msg = slog.LevelError, "Reasoning call failed"
	}
	l.logger.LogAttrs(context.Background(), level, msg, l.attrs(attrs...)...)
}

// LogOrchestration records aggregate metrics for a finished run.
func (l *OrchestraLogger) LogOrchestration(taskID string, subtasks, failed int, dur time.Duration, confidence float64) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Orchestration completed", l.attrs(
		slog.String("orchestration_task_id", taskID),
		slog.Int("subtasks", subtasks),
		slog.Int("failed", failed),
		slog.Duration("duration", dur),
		slog.Float64("confidence", confidence),
	)...)
}

// NoOpLogger discards all log messages. Useful for tests or when logging is
// disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
