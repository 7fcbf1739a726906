// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logsink

import (
	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-logr/logr"
)

type gokitSink struct {
	l         kitlog.Logger
	verbosity int
	name      string
}

var _ logr.LogSink = (*gokitSink)(nil)

// NewGoKit returns a Logger writing to l, discarding messages above
// verbosity.
func NewGoKit(l kitlog.Logger, verbosity int) logr.Logger {
	return logr.New(&gokitSink{l: l, verbosity: verbosity})
}

func (s *gokitSink) Init(logr.RuntimeInfo) {}

func (s *gokitSink) Enabled(lvl int) bool {
	return lvl <= s.verbosity
}

func (s *gokitSink) Info(lvl int, msg string, keysAndValues ...interface{}) {
	if !s.Enabled(lvl) {
		return
	}
	l := level.Info(s.l)
	if lvl > 0 {
		l = level.Debug(s.l)
	}
	_ = l.Log(s.keyvals(msg, nil, keysAndValues)...)
}

func (s *gokitSink) Error(err error, msg string, keysAndValues ...interface{}) {
	_ = level.Error(s.l).Log(s.keyvals(msg, err, keysAndValues)...)
}

func (s *gokitSink) keyvals(msg string, err error, kv []interface{}) []interface{} {
	out := make([]interface{}, 0, len(kv)+6)
	if s.name != "" {
		out = append(out, "logger", s.name)
	}
	out = append(out, "msg", msg)
	if err != nil {
		out = append(out, "err", err)
	}
	pairs(kv, func(k string, v interface{}) {
		out = append(out, k, v)
	})
	return out
}

func (s *gokitSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	kv := make([]interface{}, 0, len(keysAndValues)+1)
	pairs(keysAndValues, func(k string, v interface{}) {
		kv = append(kv, k, v)
	})
	s2 := *s
	s2.l = kitlog.With(s.l, kv...)
	return &s2
}

func (s *gokitSink) WithName(name string) logr.LogSink {
	s2 := *s
	s2.name = joinName(s.name, name)
	return &s2
}
