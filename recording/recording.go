// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recording reads and writes input recordings: one JSON object per
// line, each describing a raw stylus sample.
//
//	{"t":1200,"x":10.5,"y":4,"pressure":0.4,"buttons":1,"dir":"press","button":1,"device":"pen0"}
//
// A missing or null pressure, xtilt or ytilt means the device did not
// report that axis. Blank lines and lines starting with '#' are ignored.
package recording

import (
	"bufio"
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/strokeworks/freehand/sample"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/xerrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrBadDirection is reported for a dir value other than "", "move",
// "press", "release" or "step".
var ErrBadDirection = xerrors.New("bad direction")

// Direction names used in the dir field.
const (
	Move    = "move"
	Press   = "press"
	Release = "release"
	Step    = "step"
)

// Record is one line of a recording.
type Record struct {
	T        int64    `json:"t"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Pressure *float64 `json:"pressure,omitempty"`
	XTilt    *float64 `json:"xtilt,omitempty"`
	YTilt    *float64 `json:"ytilt,omitempty"`
	Buttons  uint32   `json:"buttons,omitempty"`
	Button   int32    `json:"button,omitempty"`
	Dir      string   `json:"dir,omitempty"`
	Mods     []string `json:"mods,omitempty"`
	Device   string   `json:"device,omitempty"`
	Surface  string   `json:"surface,omitempty"`
}

// Raw converts r to a RawSample.
func (r Record) Raw() (sample.RawSample, error) {
	raw := sample.RawSample{
		Time:     r.T,
		X:        r.X,
		Y:        r.Y,
		Pressure: axis(r.Pressure),
		TiltX:    axis(r.XTilt),
		TiltY:    axis(r.YTilt),
		Buttons:  sample.ButtonMask(r.Buttons),
		Button:   mouse.Button(r.Button),
		Device:   sample.DeviceID(r.Device),
	}
	switch r.Dir {
	case "", Move:
		raw.Direction = mouse.DirNone
	case Press:
		raw.Direction = mouse.DirPress
	case Release:
		raw.Direction = mouse.DirRelease
	case Step:
		raw.Direction = mouse.DirStep
	default:
		return raw, xerrors.Errorf("recording: dir %q: %w", r.Dir, ErrBadDirection)
	}
	for _, name := range r.Mods {
		m, ok := sample.ParseModifier(name)
		if !ok {
			return raw, xerrors.Errorf("recording: unknown modifier %q", name)
		}
		raw.Modifiers |= m
	}
	return raw, nil
}

// FromRaw returns the record for raw on the named surface. Axes that are
// absent or not finite are left out.
func FromRaw(surface string, raw sample.RawSample) Record {
	r := Record{
		T:        raw.Time,
		X:        raw.X,
		Y:        raw.Y,
		Pressure: ptr(raw.Pressure),
		XTilt:    ptr(raw.TiltX),
		YTilt:    ptr(raw.TiltY),
		Buttons:  uint32(raw.Buttons),
		Button:   int32(raw.Button),
		Mods:     sample.ModifierNames(raw.Modifiers),
		Device:   string(raw.Device),
		Surface:  surface,
	}
	switch raw.Direction {
	case mouse.DirPress:
		r.Dir = Press
	case mouse.DirRelease:
		r.Dir = Release
	case mouse.DirStep:
		r.Dir = Step
	}
	return r
}

func axis(v *float64) sample.Axis {
	if v == nil {
		return sample.NoAxis
	}
	return sample.AxisOf(*v)
}

func ptr(a sample.Axis) *float64 {
	if !a.Usable() {
		return nil
	}
	v := a.Value
	return &v
}

// Unmarshal decodes a single record.
func Unmarshal(line []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(line, &r); err != nil {
		return Record{}, xerrors.Errorf("recording: %w", err)
	}
	return r, nil
}

// A Decoder reads records from a stream.
type Decoder struct {
	s    *bufio.Scanner
	line int
}

func NewDecoder(r io.Reader) *Decoder {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Decoder{s: s}
}

// Next returns the next record. It returns io.EOF when the stream is
// exhausted.
func (d *Decoder) Next() (Record, error) {
	for d.s.Scan() {
		d.line++
		b := bytes.TrimSpace(d.s.Bytes())
		if len(b) == 0 || b[0] == '#' {
			continue
		}
		r, err := Unmarshal(b)
		if err != nil {
			return Record{}, xerrors.Errorf("line %d: %w", d.line, err)
		}
		return r, nil
	}
	if err := d.s.Err(); err != nil {
		return Record{}, xerrors.Errorf("recording: %w", err)
	}
	return Record{}, io.EOF
}

// An Encoder writes records to a stream, one per line.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) Encode(r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return xerrors.Errorf("recording: %w", err)
	}
	b = append(b, '\n')
	if _, err := e.w.Write(b); err != nil {
		return xerrors.Errorf("recording: %w", err)
	}
	return nil
}
