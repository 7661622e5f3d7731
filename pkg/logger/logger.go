package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	zl   zerolog.Logger
	file *lumberjack.Logger
}

type Options struct {
	Level string
	// File, when set, receives JSON lines in addition to the console output.
	File string
	// Out defaults to os.Stderr.
	Out io.Writer
}

func New() *Logger { return NewWithOptions(Options{}) }

func NewWithOptions(o Options) *Logger {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	var w io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	l := &Logger{}
	if o.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		w = zerolog.MultiLevelWriter(w, l.file)
	}
	lvl, err := zerolog.ParseLevel(o.Level)
	if err != nil || o.Level == "" {
		lvl = zerolog.InfoLevel
	}
	l.zl = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return l
}

// Nop discards everything; handy in tests.
func Nop() *Logger { return &Logger{zl: zerolog.Nop()} }

func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
