package lightrig

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gekko3d/lightrig/internal/logging"
)

type Logger interface {
	DebugEnabled() bool
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	log *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	return &SlogLogger{log: l}
}

func (l *SlogLogger) DebugEnabled() bool {
	return l.log.Enabled(context.Background(), slog.LevelDebug)
}

func (l *SlogLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Infof(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Warnf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *SlogLogger) Errorf(format string, args ...any) {
	l.log.Error(fmt.Sprintf(format, args...))
}

// LoggingModule installs a Logger resource. With a nil Slog it builds a tint
// logger on stderr at Level.
type LoggingModule struct {
	Slog  *slog.Logger
	Level logging.Level
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	l := m.Slog
	if l == nil {
		l = logging.NewLogger(os.Stderr, m.Level)
	}
	app.addResources(NewSlogLogger(l))
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// Logger returns the installed Logger resource, or a no-op logger.
// Never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
