// Package logging builds the structured logger shared by the git-ai binaries.
// Diagnostics go to stderr through a console encoder; when a log file is
// configured, the same entries are also written as JSON to a rotating file.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sinataghva/git-ai/cli/internal/erruser"
)

// Rotation limits for the log file.
const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 28
)

// Options configures New.
type Options struct {
	// Level is a zap level name (debug, info, warn, error). Empty means warn.
	Level string
	// File, when set, adds a JSON core writing to a rotating file at this path.
	File string
	// Stderr receives console output. Nil means os.Stderr.
	Stderr io.Writer
	// Color enables coloured level names on the console.
	Color bool
}

// New returns a logger configured by opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		l, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, erruser.Newf(err, "Invalid log level %q; use debug, info, warn, or error.", s)
		}
		level = l
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(opts.Color)), zapcore.Lock(zapcore.AddSync(stderr)), level),
	}
	if opts.File != "" {
		jsonCfg := zap.NewProductionEncoderConfig()
		jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		// The file records everything at debug and above regardless of the console level.
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(file), zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

func consoleEncoderConfig(color bool) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}
