// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recording

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/strokeworks/freehand/sample"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

const stream = `# pen stroke
{"t":1200,"x":10.5,"y":4,"pressure":0.4,"xtilt":0.1,"ytilt":null,"buttons":1,"dir":"press","button":1,"mods":["shift"],"device":"pen0","surface":"main"}

{"t":1210,"x":11,"y":5}
`

func TestDecoder(t *testing.T) {
	d := NewDecoder(strings.NewReader(stream))
	var got []sample.RawSample
	var surfaces []string
	for {
		r, err := d.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		raw, err := r.Raw()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, raw)
		surfaces = append(surfaces, r.Surface)
	}
	want := []sample.RawSample{
		{
			Time:      1200,
			X:         10.5,
			Y:         4,
			Pressure:  sample.AxisOf(0.4),
			TiltX:     sample.AxisOf(0.1),
			Buttons:   sample.ButtonPrimary,
			Button:    mouse.ButtonLeft,
			Direction: mouse.DirPress,
			Modifiers: key.ModShift,
			Device:    "pen0",
		},
		{Time: 1210, X: 11, Y: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded samples mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"main", ""}, surfaces); diff != "" {
		t.Errorf("surfaces mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderReportsLine(t *testing.T) {
	d := NewDecoder(strings.NewReader("{\"t\":1}\n{oops\n"))
	if _, err := d.Next(); err != nil {
		t.Fatal(err)
	}
	_, err := d.Next()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Next() = %v, want error on line 2", err)
	}
}

func TestBadDirection(t *testing.T) {
	_, err := Record{Dir: "hover"}.Raw()
	if !errors.Is(err, ErrBadDirection) {
		t.Errorf("Raw() = %v, want ErrBadDirection", err)
	}
	if _, err := (Record{Mods: []string{"hyper"}}).Raw(); err == nil {
		t.Error("unknown modifier accepted")
	}
}

func TestEncodeDecode(t *testing.T) {
	raw := sample.RawSample{
		Time:      5,
		X:         1,
		Y:         2,
		TiltY:     sample.AxisOf(-0.5),
		Buttons:   sample.ButtonPrimary | sample.ButtonSecondary,
		Button:    mouse.ButtonRight,
		Direction: mouse.DirRelease,
		Modifiers: key.ModControl | key.ModAlt,
		Device:    "mouse",
	}
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(FromRaw("aux", raw)); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "pressure") {
		t.Errorf("absent pressure was written: %s", buf.String())
	}
	r, err := NewDecoder(&buf).Next()
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Raw()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(raw, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if r.Surface != "aux" {
		t.Errorf("Surface = %q, want aux", r.Surface)
	}
}
