// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logsink

import (
	"github.com/go-logr/logr"
	"github.com/kataras/golog"
)

type gologSink struct {
	l         *golog.Logger
	verbosity int
	name      string
	values    []interface{}
}

var _ logr.LogSink = (*gologSink)(nil)

// NewGolog returns a Logger writing to l, discarding messages above
// verbosity. Key/value pairs are appended to the message in logfmt form.
func NewGolog(l *golog.Logger, verbosity int) logr.Logger {
	return logr.New(&gologSink{l: l, verbosity: verbosity})
}

func (s *gologSink) Init(logr.RuntimeInfo) {}

func (s *gologSink) Enabled(level int) bool {
	return level <= s.verbosity
}

func (s *gologSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if !s.Enabled(level) {
		return
	}
	line := s.prefix() + msg + logfmt(s.values, keysAndValues)
	if level > 0 {
		s.l.Debug(line)
		return
	}
	s.l.Info(line)
}

func (s *gologSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.l.Error(s.prefix() + msg + logfmt(s.values, keysAndValues, []interface{}{"err", err}))
}

func (s *gologSink) prefix() string {
	if s.name == "" {
		return ""
	}
	return "[" + s.name + "] "
}

func (s *gologSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	s2 := *s
	s2.values = appendValues(s.values, keysAndValues)
	return &s2
}

func (s *gologSink) WithName(name string) logr.LogSink {
	s2 := *s
	s2.name = joinName(s.name, name)
	return &s2
}
