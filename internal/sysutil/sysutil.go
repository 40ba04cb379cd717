// Package sysutil builds the process-wide zerolog logger: level, console or
// JSON output and an optional rotated log file.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures NewLogger.
type LogOptions struct {
	Level   string // debug|info|warn|error|fatal|panic
	Pretty  bool   // console writer instead of JSON
	File    string // optional path, rotated by size
	Service string // added to every line as "service"

	// Stdout replaces os.Stdout. Tests use it to capture output.
	Stdout io.Writer
}

// Rotation limits of the file sink.
const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 5
	logFileMaxAgeDays = 14
)

// NewLogger sets the global level from opts.Level and returns a logger that
// writes to stdout and, when opts.File is set, to a rotated file. The file
// always receives JSON. The returned closer releases the file and is never
// nil.
func NewLogger(opts LogOptions) (zerolog.Logger, io.Closer) {
	SetLogLevel(opts.Level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	if opts.Stdout != nil {
		out = opts.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, file)
		closer = file
	}

	ctx := zerolog.New(out).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	return ctx.Logger(), closer
}

// SetLogLevel configures the global zerolog level based on a string value.
// Supported values (case-insensitive): debug, info, warn, error, fatal, panic.
func SetLogLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
