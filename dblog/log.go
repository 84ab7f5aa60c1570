// Package dblog is the Logger collaborator from spec §6: log(level,
// fmt, ...) with five levels {DEBUG, INFO, WARN, ERROR, FATAL} and a
// level gate settable at process init. Backed by go.uber.org/zap,
// grounded on zoravur-postgres-spreadsheet-view's direct use of zap
// (internal/logutil).
package dblog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is one of the five levels spec §6 names.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case Debug:
		return zapcore.DebugLevel
	case Info:
		return zapcore.InfoLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	case Fatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is the collaborator interface the core depends on. The core
// never imports zap directly — only this interface — so a caller may
// substitute their own printer/suggestor-style collaborator.
type Logger interface {
	Log(level Level, format string, args ...any)
}

type zapLogger struct {
	atom zap.AtomicLevel
	sl   *zap.SugaredLogger
	exit func()
}

// New builds a Logger gated at level, writing structured logs to
// stderr. The unexported exit hook runs after a Fatal log (it is
// os.Exit(1) here); in-package tests replace it to assert on Fatal
// without killing the process.
func New(level Level) Logger {
	atom := zap.NewAtomicLevelAt(level.zapLevel())
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stderr), atom)
	l := zap.New(core)
	return &zapLogger{atom: atom, sl: l.Sugar(), exit: func() { os.Exit(1) }}
}

// SetLevel changes the gate on an existing Logger built by New.
func SetLevel(l Logger, level Level) {
	if z, ok := l.(*zapLogger); ok {
		z.atom.SetLevel(level.zapLevel())
	}
}

func (z *zapLogger) Log(level Level, format string, args ...any) {
	switch level {
	case Debug:
		z.sl.Debugf(format, args...)
	case Info:
		z.sl.Infof(format, args...)
	case Warn:
		z.sl.Warnf(format, args...)
	case Error:
		z.sl.Errorf(format, args...)
	case Fatal:
		z.sl.Errorf(format, args...)
		z.exit()
	}
}

// Nop is a Logger that discards everything, used where a caller wants
// the executor to run without logging overhead.
var Nop Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Log(Level, string, ...any) {}

// ParseLevel maps a config string (e.g. dbconfig.Config.LogLevel) to a
// Level, defaulting to Info for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG":
		return Debug
	case "INFO":
		return Info
	case "WARN":
		return Warn
	case "ERROR":
		return Error
	case "FATAL":
		return Fatal
	default:
		return Info
	}
}
