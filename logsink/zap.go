// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logsink

import (
	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapSink struct {
	z *zap.Logger
}

var _ logr.LogSink = (*zapSink)(nil)

// NewZap returns a Logger writing to z. Verbosity 0 maps to zap's info
// level and anything above to debug.
func NewZap(z *zap.Logger) logr.Logger {
	return logr.New(&zapSink{z: z})
}

func (s *zapSink) Init(info logr.RuntimeInfo) {
	s.z = s.z.WithOptions(zap.AddCallerSkip(info.CallDepth))
}

func (s *zapSink) Enabled(level int) bool {
	return s.z.Core().Enabled(zapLevel(level))
}

func (s *zapSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if ce := s.z.Check(zapLevel(level), msg); ce != nil {
		ce.Write(zapFields(keysAndValues)...)
	}
}

func (s *zapSink) Error(err error, msg string, keysAndValues ...interface{}) {
	if ce := s.z.Check(zapcore.ErrorLevel, msg); ce != nil {
		ce.Write(append(zapFields(keysAndValues), zap.Error(err))...)
	}
}

func (s *zapSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	return &zapSink{z: s.z.With(zapFields(keysAndValues)...)}
}

func (s *zapSink) WithName(name string) logr.LogSink {
	return &zapSink{z: s.z.Named(name)}
}

func zapLevel(level int) zapcore.Level {
	if level > 0 {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func zapFields(kv []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, (len(kv)+1)/2)
	pairs(kv, func(k string, v interface{}) {
		fields = append(fields, zap.Any(k, v))
	})
	return fields
}
