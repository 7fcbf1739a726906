// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logsink

import (
	"context"
	"io"

	"github.com/go-logr/logr"
	"golang.org/x/exp/slog"
)

type slogSink struct {
	l    *slog.Logger
	name string
}

var _ logr.LogSink = (*slogSink)(nil)

// NewSlog returns a Logger writing to l. Verbosity 0 maps to slog's info
// level and anything above to debug.
func NewSlog(l *slog.Logger) logr.Logger {
	return logr.New(&slogSink{l: l})
}

func newSlogText(w io.Writer, verbosity int) *slog.Logger {
	lvl := slog.LevelInfo
	if verbosity > 0 {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (s *slogSink) Init(logr.RuntimeInfo) {}

func (s *slogSink) Enabled(level int) bool {
	return s.l.Enabled(context.Background(), slogLevel(level))
}

func (s *slogSink) Info(level int, msg string, keysAndValues ...interface{}) {
	s.l.Log(context.Background(), slogLevel(level), msg, s.args(keysAndValues, nil)...)
}

func (s *slogSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.l.Log(context.Background(), slog.LevelError, msg, s.args(keysAndValues, err)...)
}

func (s *slogSink) args(kv []interface{}, err error) []any {
	args := make([]any, 0, len(kv)+4)
	if s.name != "" {
		args = append(args, "logger", s.name)
	}
	pairs(kv, func(k string, v interface{}) {
		args = append(args, k, v)
	})
	if err != nil {
		args = append(args, "err", err)
	}
	return args
}

func (s *slogSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	args := make([]any, 0, len(keysAndValues)+1)
	pairs(keysAndValues, func(k string, v interface{}) {
		args = append(args, k, v)
	})
	return &slogSink{l: s.l.With(args...), name: s.name}
}

func (s *slogSink) WithName(name string) logr.LogSink {
	return &slogSink{l: s.l, name: joinName(s.name, name)}
}

func slogLevel(level int) slog.Level {
	if level > 0 {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
