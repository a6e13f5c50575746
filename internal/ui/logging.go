package ui

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	Debug bool
	log   *logrus.Logger
	file  io.Closer
}

func NewLogger(debug bool) *Logger {
	return NewLoggerTo(os.Stdout, debug)
}

// NewLoggerTo writes plain "LEVEL message" lines to w.
func NewLoggerTo(w io.Writer, debug bool) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		DisableColors:          true,
	})

	l.SetLevel(logrus.InfoLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	return &Logger{Debug: debug, log: l}
}

// WithFile tees every entry into a size-rotated log file.
func (l *Logger) WithFile(path string) {
	if path == "" {
		return
	}

	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	l.file = rot
	l.log.SetOutput(io.MultiWriter(l.log.Out, rot))
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log.Errorf(format, args...)
}
