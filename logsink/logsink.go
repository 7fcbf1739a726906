// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logsink provides logr.LogSink implementations backed by the
// common Go logging libraries.
//
// Components of this module log through a logr.Logger. Verbosity 0 is
// informational, verbosity 1 and above is debug output. Which library
// ends up writing the output is chosen once, at startup:
//
//	log, err := logsink.New("zap", os.Stderr, 1)
package logsink

import (
	"fmt"
	"io"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-logr/logr"
	"github.com/kataras/golog"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"
)

// Backend names accepted by New.
const (
	Zap     = "zap"
	Logrus  = "logrus"
	Zerolog = "zerolog"
	GoKit   = "gokit"
	Golog   = "golog"
	Slog    = "slog"
	Discard = "discard"
)

// ErrUnknownBackend is returned for a backend name New does not know.
var ErrUnknownBackend = xerrors.New("unknown log backend")

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{Zap, Logrus, Zerolog, GoKit, Golog, Slog, Discard}
}

// ValidBackend reports whether name is an accepted backend.
func ValidBackend(name string) bool {
	for _, b := range Backends() {
		if b == name {
			return true
		}
	}
	return false
}

// ParseLevel converts a level name to a logr verbosity.
func ParseLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return 0, nil
	case "debug":
		return 1, nil
	}
	return 0, xerrors.Errorf("logsink: unknown level %q", level)
}

// New returns a Logger writing to w through the named backend. Messages
// above verbosity are discarded.
func New(backend string, w io.Writer, verbosity int) (logr.Logger, error) {
	switch backend {
	case Zap:
		lvl := zapcore.InfoLevel
		if verbosity > 0 {
			lvl = zapcore.DebugLevel
		}
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = ""
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
		return NewZap(zap.New(core)), nil
	case Logrus:
		l := logrus.New()
		l.SetOutput(w)
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
		l.SetLevel(logrus.InfoLevel)
		if verbosity > 0 {
			l.SetLevel(logrus.DebugLevel)
		}
		return NewLogrus(l), nil
	case Zerolog:
		return NewZerolog(zerolog.New(w), verbosity), nil
	case GoKit:
		return NewGoKit(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w)), verbosity), nil
	case Golog:
		l := golog.New()
		l.SetOutput(w)
		l.SetLevel("debug")
		return NewGolog(l, verbosity), nil
	case Slog:
		return NewSlog(newSlogText(w, verbosity)), nil
	case Discard:
		return logr.Discard(), nil
	}
	return logr.Discard(), xerrors.Errorf("logsink: %q: %w", backend, ErrUnknownBackend)
}

// pairs calls fn for each key/value pair. Non-string keys are formatted
// with fmt; a missing final value is reported as such.
func pairs(kv []interface{}, fn func(k string, v interface{})) {
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			k = fmt.Sprint(kv[i])
		}
		var v interface{} = "(MISSING)"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		fn(k, v)
	}
}

// logfmt renders key/value pairs as " k=v k=v".
func logfmt(kvs ...[]interface{}) string {
	var b strings.Builder
	for _, kv := range kvs {
		pairs(kv, func(k string, v interface{}) {
			s := fmt.Sprint(v)
			if strings.ContainsAny(s, " \t\"=") {
				s = fmt.Sprintf("%q", s)
			}
			fmt.Fprintf(&b, " %s=%s", k, s)
		})
	}
	return b.String()
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func appendValues(values, kv []interface{}) []interface{} {
	out := make([]interface{}, 0, len(values)+len(kv))
	out = append(out, values...)
	return append(out, kv...)
}
