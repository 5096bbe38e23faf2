// Package logger provides the zap logger used by the shell binaries. The
// logger doubles as the Telemetry sink of the shell, the commands and the
// export pipeline.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is debug, info, warn or error. Empty means info.
	Level string
	// File enables a rotated JSON log file next to the console output.
	File string
	// JSON switches the console encoder to JSON.
	JSON bool
	// Console receives console output; nil means stdout.
	Console io.Writer
}

// Logger wraps zap with module-scoped helpers.
type Logger struct {
	zap *zap.Logger
}

// New builds a logger writing to the console and, when opts.File is set,
// to a rotated JSON file.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	consoleEncoder := jsonEncoder
	if !opts.JSON {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	var console io.Writer = os.Stdout
	if opts.Console != nil {
		console = opts.Console
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(console)), level),
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(rotator), level))
	}

	return NewWithCore(zapcore.NewTee(cores...)), nil
}

// NewWithCore wraps an existing core.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// ParseLevel maps a level name onto a zap level.
func ParseLevel(value string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logger: unknown level %q", value)
	}
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}

func (l *Logger) Debug(module, message string, details map[string]any) {
	l.zap.Debug(message, fields(module, details)...)
}

func (l *Logger) Info(module, message string, details map[string]any) {
	l.zap.Info(message, fields(module, details)...)
}

func (l *Logger) Warn(module, message string, details map[string]any) {
	l.zap.Warn(message, fields(module, details)...)
}

func (l *Logger) Error(module, message string, details map[string]any) {
	l.zap.Error(message, fields(module, details)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// Record implements the Telemetry interfaces. The entry level comes from
// payload["level"] and defaults to debug; the module is the event prefix
// before the first dot.
func (l *Logger) Record(_ context.Context, event string, payload map[string]any) {
	module, _, _ := strings.Cut(event, ".")
	level := zapcore.DebugLevel
	details := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == "level" {
			if name, ok := v.(string); ok {
				if parsed, err := ParseLevel(name); err == nil {
					level = parsed
				}
			}
			continue
		}
		details[k] = v
	}
	if ce := l.zap.Check(level, event); ce != nil {
		ce.Write(fields(module, details)...)
	}
}

func fields(module string, details map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(details)+1)
	out = append(out, zap.String("module", module))
	for k, v := range details {
		out = append(out, zap.Any(k, v))
	}
	return out
}
