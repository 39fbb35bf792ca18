// Package logrus adapts sirupsen/logrus to the domain Logger interface.
package logrus

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ochairo/buildffs/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on a logrus logger
type Logger struct {
	log *logrus.Logger
}

// NewLogger creates a text logger writing to out at the given level
// ("debug", "info", "warn", "error").
func NewLogger(out io.Writer, level string) (*Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	return &Logger{log: l}, nil
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.entry(fields).Debug(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.entry(fields).Info(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.entry(fields).Warn(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.entry(fields).Error(msg)
}

func (l *Logger) entry(fields []interfaces.Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return l.log.WithFields(lf)
}
