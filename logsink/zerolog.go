// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logsink

import (
	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
)

type zerologSink struct {
	l         zerolog.Logger
	verbosity int
	name      string
}

var _ logr.LogSink = (*zerologSink)(nil)

// NewZerolog returns a Logger writing to l, discarding messages above
// verbosity.
func NewZerolog(l zerolog.Logger, verbosity int) logr.Logger {
	return logr.New(&zerologSink{l: l, verbosity: verbosity})
}

func (s *zerologSink) Init(logr.RuntimeInfo) {}

func (s *zerologSink) Enabled(level int) bool {
	return level <= s.verbosity
}

func (s *zerologSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if !s.Enabled(level) {
		return
	}
	e := s.l.Info()
	if level > 0 {
		e = s.l.Debug()
	}
	s.send(e, msg, keysAndValues)
}

func (s *zerologSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.send(s.l.Error().Err(err), msg, keysAndValues)
}

func (s *zerologSink) send(e *zerolog.Event, msg string, kv []interface{}) {
	if e == nil {
		return
	}
	if s.name != "" {
		e = e.Str("logger", s.name)
	}
	pairs(kv, func(k string, v interface{}) {
		e = e.Interface(k, v)
	})
	e.Msg(msg)
}

func (s *zerologSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	ctx := s.l.With()
	pairs(keysAndValues, func(k string, v interface{}) {
		ctx = ctx.Interface(k, v)
	})
	s2 := *s
	s2.l = ctx.Logger()
	return &s2
}

func (s *zerologSink) WithName(name string) logr.LogSink {
	s2 := *s
	s2.name = joinName(s.name, name)
	return &s2
}
