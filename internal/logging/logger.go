package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "FWTUI_LOG_LEVEL"

// LogFileEnvVar overrides the file log output is written to.
const LogFileEnvVar = "FWTUI_LOG_FILE"

// Initialize creates a new logger with the specified level writing to path.
// If level is empty, it checks FWTUI_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
//
// The dashboard owns the terminal, so output never goes to stdout. If path
// is empty, FWTUI_LOG_FILE is used, then stderr.
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	if path == "" {
		path = os.Getenv(LogFileEnvVar)
	}
	if path == "" {
		path = "stderr"
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{path},
		ErrorOutputPaths: []string{path},
	}

	// Plain levels: a log file should not carry ANSI escapes
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogPoll logs a completed hardware poll
func LogPoll(took time.Duration, pdPorts, fans int) {
	Debug("Hardware polled",
		zap.Duration("took", took),
		zap.Int("pd_ports", pdPorts),
		zap.Int("fans", fans),
	)
}

// LogCommand logs the outcome of a command sent to the hardware
func LogCommand(command string, value uint8, err error) {
	if err != nil {
		Warn("Hardware command failed",
			zap.String("command", command),
			zap.Uint8("value", value),
			zap.Error(err),
		)
		return
	}
	Info("Hardware command applied",
		zap.String("command", command),
		zap.Uint8("value", value),
	)
}

// LogTickInterval logs a refresh period change
func LogTickInterval(from, to time.Duration) {
	Info("Refresh interval changed",
		zap.Duration("from", from),
		zap.Duration("to", to),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
