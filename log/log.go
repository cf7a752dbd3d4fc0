// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the process logger. Records are structured key/value pairs on
// top of the go-ethereum slog handlers; packages declare their logger once with
// WithContext and it follows whatever root logger the binary installs.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

type Logger = gethlog.Logger

// Levels, from most to least verbose.
const (
	LevelTrace = gethlog.LevelTrace
	LevelDebug = gethlog.LevelDebug
	LevelInfo  = gethlog.LevelInfo
	LevelWarn  = gethlog.LevelWarn
	LevelError = gethlog.LevelError
	LevelCrit  = gethlog.LevelCrit
)

// Legacy verbosity values accepted by --verbosity. Values above
// LegacyLevelTrace are increasingly verbose.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

var levels = []slog.Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCrit}

// FromLegacyLevel maps a legacy verbosity to a level.
func FromLegacyLevel(verbosity int) slog.Level {
	return gethlog.FromLegacyLevel(verbosity)
}

// LevelString returns the lowercase name of a level.
func LevelString(l slog.Level) string {
	return gethlog.LevelString(l)
}

// ParseLevel is the inverse of LevelString.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range levels {
		if LevelString(l) == s {
			return l, nil
		}
	}
	return 0, errors.Errorf("unknown log level %q", s)
}

// NewHandler returns the JSON handler when json is set, the terminal handler
// otherwise. lvl may be changed while the handler is in use.
func NewHandler(w io.Writer, lvl *slog.LevelVar, json, color bool) slog.Handler {
	if json {
		return NewJSONHandler(w, lvl)
	}
	return NewTerminalHandler(w, lvl, color)
}

// NewLogger wraps a handler.
func NewLogger(h slog.Handler) Logger {
	return gethlog.NewLogger(h)
}

// SetDefault installs the root logger.
func SetDefault(l Logger) {
	gethlog.SetDefault(l)
}

// Root returns the root logger.
func Root() Logger {
	return gethlog.Root()
}

// WithContext returns a logger that prepends ctx to every record and resolves
// the root logger on each call.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

type contextLogger struct {
	ctx []any
}

func (l *contextLogger) root() Logger {
	return Root().With(l.ctx...)
}

func (l *contextLogger) With(ctx ...any) Logger {
	return &contextLogger{ctx: append(append([]any{}, l.ctx...), ctx...)}
}

func (l *contextLogger) New(ctx ...any) Logger { return l.With(ctx...) }

func (l *contextLogger) Log(level slog.Level, msg string, ctx ...any) {
	l.root().Log(level, msg, ctx...)
}

func (l *contextLogger) Write(level slog.Level, msg string, attrs ...any) {
	l.root().Write(level, msg, attrs...)
}

func (l *contextLogger) Trace(msg string, ctx ...any) { l.root().Trace(msg, ctx...) }
func (l *contextLogger) Debug(msg string, ctx ...any) { l.root().Debug(msg, ctx...) }
func (l *contextLogger) Info(msg string, ctx ...any)  { l.root().Info(msg, ctx...) }
func (l *contextLogger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, ctx...) }
func (l *contextLogger) Error(msg string, ctx ...any) { l.root().Error(msg, ctx...) }
func (l *contextLogger) Crit(msg string, ctx ...any)  { l.root().Crit(msg, ctx...) }

func (l *contextLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return Root().Enabled(ctx, level)
}

func (l *contextLogger) Handler() slog.Handler {
	return l.root().Handler()
}
