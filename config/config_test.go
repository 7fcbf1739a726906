// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/strokeworks/freehand/logsink"
	"go.uber.org/multierr"
	"golang.org/x/mobile/event/key"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	opts, err := c.SanitizerOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.PickModifiers != key.ModControl|key.ModAlt {
		t.Errorf("PickModifiers = %v", opts.PickModifiers)
	}
	if opts.StraightLineModifiers != key.ModShift {
		t.Errorf("StraightLineModifiers = %v", opts.StraightLineModifiers)
	}
	if opts.PressureCurve != nil {
		t.Error("default pressure curve is not nil")
	}
	if got := c.StaleWindow(); got != 100*time.Millisecond {
		t.Errorf("StaleWindow() = %v", got)
	}
	if c.Verbosity() != 0 {
		t.Errorf("Verbosity() = %d", c.Verbosity())
	}
}

func TestParse(t *testing.T) {
	const data = `
log:
  backend: zerolog
  level: debug
input:
  pick_modifiers: [ctrl]
  pressure_curve:
    - {in: 0, out: 0}
    - {in: 0.5, out: 0.25}
    - {in: 1, out: 1}
  stale_window_ms: 40
relay:
  addr: 127.0.0.1:9000
  origins: [https://paint.example]
`
	c, err := Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Log = Log{Backend: logsink.Zerolog, Level: "debug"}
	want.Input.PickModifiers = []string{"ctrl"}
	want.Input.PressureCurve = []CurvePoint{{0, 0}, {0.5, 0.25}, {1, 1}}
	want.Input.StaleWindowMS = 40
	want.Relay.Addr = "127.0.0.1:9000"
	want.Relay.Origins = []string{"https://paint.example"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	opts, err := c.SanitizerOptions()
	if err != nil {
		t.Fatal(err)
	}
	if got := opts.PressureCurve(0.5); got != 0.25 {
		t.Errorf("curve(0.5) = %g, want 0.25", got)
	}
	if opts.PickModifiers != key.ModControl {
		t.Errorf("PickModifiers = %v, want control", opts.PickModifiers)
	}
	if c.Verbosity() != 1 {
		t.Errorf("Verbosity() = %d, want 1", c.Verbosity())
	}
}

func TestValidateCollectsAll(t *testing.T) {
	const data = `
log:
  backend: syslog
input:
  pick_modifiers: [hyper]
  pressure_curve:
    - {in: 0, out: 2}
  stale_window_ms: -1
relay:
  path: input
`
	_, err := Parse([]byte(data))
	if err == nil {
		t.Fatal("Parse succeeded, want error")
	}
	if got := len(multierr.Errors(err)); got != 5 {
		t.Errorf("got %d errors, want 5:\n%v", got, err)
	}
	if !errors.Is(err, ErrUnknownModifier) {
		t.Errorf("error does not wrap ErrUnknownModifier: %v", err)
	}
	if !errors.Is(err, logsink.ErrUnknownBackend) {
		t.Errorf("error does not wrap ErrUnknownBackend: %v", err)
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse([]byte("log: [")); err == nil {
		t.Error("Parse of malformed YAML succeeded")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "freehand.yaml")
	if err := os.WriteFile(path, []byte("input:\n  cursor: pencil\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Input.Cursor != "pencil" {
		t.Errorf("Cursor = %q, want pencil", c.Input.Cursor)
	}

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("log:\n  level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("Load(bad) = %v, want error naming the file", err)
	}
}
