// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sample

import (
	"strings"

	"golang.org/x/mobile/event/key"
)

var modifierNames = []struct {
	name string
	mod  key.Modifiers
}{
	{"shift", key.ModShift},
	{"control", key.ModControl},
	{"alt", key.ModAlt},
	{"meta", key.ModMeta},
}

// ParseModifier returns the modifier named by s. "ctrl" is accepted as an
// alias for "control". Names are case-insensitive.
func ParseModifier(s string) (key.Modifiers, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "ctrl" {
		s = "control"
	}
	for _, m := range modifierNames {
		if m.name == s {
			return m.mod, true
		}
	}
	return 0, false
}

// ModifierNames returns the names of the modifiers set in m.
func ModifierNames(m key.Modifiers) []string {
	var names []string
	for _, e := range modifierNames {
		if m&e.mod != 0 {
			names = append(names, e.name)
		}
	}
	return names
}
