// Package logging wraps github.com/baditaflorin/l behind the small Logger
// interface used throughout jnorm.
package logging

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// Logger is the structured key/value logger consumed by jnorm components.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// Config selects the output and format of a logger built by New.
type Config struct {
	Output    io.Writer // defaults to os.Stderr
	JSON      bool
	AddSource bool
}

type stdLogger struct {
	logger l.Logger
}

// New creates a logger backed by l's standard factory.
func New(cfg Config) (Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     out,
		JsonFormat: cfg.JSON,
		AddSource:  cfg.AddSource,
	})
	if err != nil {
		return nil, err
	}
	return &stdLogger{logger: logger}, nil
}

// FromExisting adapts an already configured l.Logger.
func FromExisting(logger l.Logger) Logger {
	return &stdLogger{logger: logger}
}

func (s *stdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *stdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *stdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *stdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

func (s *stdLogger) Close() error {
	return s.logger.Close()
}

type nopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }
