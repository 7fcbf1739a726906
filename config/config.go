// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration shared by the freehand
// commands.
//
// A configuration file looks like:
//
//	log:
//	  backend: zap
//	  level: debug
//	input:
//	  pick_modifiers: [control, alt]
//	  straight_line_modifiers: [shift]
//	  pressure_curve:
//	    - {in: 0, out: 0}
//	    - {in: 0.5, out: 0.3}
//	    - {in: 1, out: 1}
//	  stale_window_ms: 100
//	  cursor: crosshair
//	relay:
//	  addr: ":8090"
//	  path: /input
//
// Fields left out keep their Default values.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/strokeworks/freehand/logsink"
	"github.com/strokeworks/freehand/sample"
	"go.uber.org/multierr"
	"golang.org/x/mobile/event/key"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownModifier is reported for a modifier name that is not one of
// shift, control, alt or meta.
var ErrUnknownModifier = xerrors.New("unknown modifier")

type Config struct {
	Log   Log   `yaml:"log"`
	Input Input `yaml:"input"`
	Relay Relay `yaml:"relay"`
}

type Log struct {
	Backend string `yaml:"backend"`
	Level   string `yaml:"level"`
}

type Input struct {
	PickModifiers         []string     `yaml:"pick_modifiers"`
	StraightLineModifiers []string     `yaml:"straight_line_modifiers"`
	PressureCurve         []CurvePoint `yaml:"pressure_curve"`
	StaleWindowMS         int          `yaml:"stale_window_ms"`
	Cursor                string       `yaml:"cursor"`
}

// CurvePoint is one control point of the pressure curve.
type CurvePoint struct {
	In  float64 `yaml:"in"`
	Out float64 `yaml:"out"`
}

type Relay struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`

	// Origins lists the browser origins, such as "https://paint.example",
	// allowed to open input connections besides the relay's own. "*"
	// allows any.
	Origins []string `yaml:"origins"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: Log{Backend: logsink.Zap, Level: "info"},
		Input: Input{
			PickModifiers:         []string{"control", "alt"},
			StraightLineModifiers: []string{"shift"},
			StaleWindowMS:         100,
			Cursor:                "crosshair",
		},
		Relay: Relay{Addr: ":8090", Path: "/input"},
	}
}

// Parse decodes YAML data over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, xerrors.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports every problem in c, not just the first.
func (c *Config) Validate() error {
	var err error
	if !logsink.ValidBackend(c.Log.Backend) {
		err = multierr.Append(err, xerrors.Errorf("config: log.backend %q: %w (want one of %s)",
			c.Log.Backend, logsink.ErrUnknownBackend, strings.Join(logsink.Backends(), ", ")))
	}
	if _, lerr := logsink.ParseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, xerrors.Errorf("config: log.level: %w", lerr))
	}
	if _, merr := modifiers("input.pick_modifiers", c.Input.PickModifiers); merr != nil {
		err = multierr.Append(err, merr)
	}
	if _, merr := modifiers("input.straight_line_modifiers", c.Input.StraightLineModifiers); merr != nil {
		err = multierr.Append(err, merr)
	}
	if len(c.Input.PressureCurve) > 0 {
		if _, cerr := sample.NewCurve(c.curvePoints()); cerr != nil {
			err = multierr.Append(err, xerrors.Errorf("config: input.pressure_curve: %w", cerr))
		}
	}
	if c.Input.StaleWindowMS < 0 {
		err = multierr.Append(err, xerrors.Errorf("config: input.stale_window_ms is negative (%d)", c.Input.StaleWindowMS))
	}
	if c.Relay.Path != "" && !strings.HasPrefix(c.Relay.Path, "/") {
		err = multierr.Append(err, xerrors.Errorf("config: relay.path %q does not start with /", c.Relay.Path))
	}
	return err
}

// SanitizerOptions converts the input section to sample.Options.
// It assumes c has been validated.
func (c *Config) SanitizerOptions() (sample.Options, error) {
	var opts sample.Options
	var err error
	if opts.PickModifiers, err = modifiers("input.pick_modifiers", c.Input.PickModifiers); err != nil {
		return opts, err
	}
	if opts.StraightLineModifiers, err = modifiers("input.straight_line_modifiers", c.Input.StraightLineModifiers); err != nil {
		return opts, err
	}
	if len(c.Input.PressureCurve) > 0 {
		if opts.PressureCurve, err = sample.NewCurve(c.curvePoints()); err != nil {
			return opts, xerrors.Errorf("config: input.pressure_curve: %w", err)
		}
	}
	return opts, nil
}

// StaleWindow returns the configured stale window; zero selects the
// motion package default.
func (c *Config) StaleWindow() time.Duration {
	return time.Duration(c.Input.StaleWindowMS) * time.Millisecond
}

// Verbosity returns the logr verbosity for the configured level.
func (c *Config) Verbosity() int {
	v, _ := logsink.ParseLevel(c.Log.Level)
	return v
}

func (c *Config) curvePoints() []sample.Point {
	pts := make([]sample.Point, len(c.Input.PressureCurve))
	for i, p := range c.Input.PressureCurve {
		pts[i] = sample.Point{In: p.In, Out: p.Out}
	}
	return pts
}

func modifiers(field string, names []string) (key.Modifiers, error) {
	var m key.Modifiers
	for _, name := range names {
		mod, ok := sample.ParseModifier(name)
		if !ok {
			return 0, xerrors.Errorf("config: %s: %q: %w", field, name, ErrUnknownModifier)
		}
		m |= mod
	}
	return m, nil
}
