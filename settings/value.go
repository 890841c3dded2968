// This file is part of negpy.
//
// negpy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// negpy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with negpy.  If not, see <https://www.gnu.org/licenses/>.

package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is whatever a Generic entry's restore/dump callbacks pass
// around; it is never interpreted by Disk itself.
type Value = interface{}

// Entry is anything a Disk can save and reload: a live-bound value
// that renders itself to one line and can parse that line back.
type Entry interface {
	fmt.Stringer
	restore(s string) error
}

// Bool is a boolean entry. Set accepts bool or string; an unrecognized
// string is treated as false rather than an error, matching how a
// malformed on-disk value should degrade.
type Bool struct {
	v bool
}

func (b *Bool) Set(v any) error {
	switch t := v.(type) {
	case bool:
		b.v = t
	case string:
		b.v = strings.EqualFold(t, "true") || t == "1"
	default:
		return fmt.Errorf("settings: cannot set Bool from %T", v)
	}
	return nil
}

func (b *Bool) Get() bool        { return b.v }
func (b *Bool) String() string   { return strconv.FormatBool(b.v) }
func (b *Bool) restore(s string) error { return b.Set(s) }

// Float is a float64 entry. Set accepts float64, float32 or a
// parseable string; anything else is an error.
type Float struct {
	v float64
}

func (f *Float) Set(v any) error {
	switch t := v.(type) {
	case float64:
		f.v = t
	case float32:
		f.v = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return fmt.Errorf("settings: cannot set Float from %q: %w", t, err)
		}
		f.v = parsed
	default:
		return fmt.Errorf("settings: cannot set Float from %T", v)
	}
	return nil
}

func (f *Float) Get() float64   { return f.v }
func (f *Float) String() string { return strconv.FormatFloat(f.v, 'g', -1, 64) }
func (f *Float) restore(s string) error { return f.Set(s) }

// Int is an integer entry. Set accepts int or a parseable string;
// float values are rejected rather than silently truncated.
type Int struct {
	v int
}

func (i *Int) Set(v any) error {
	switch t := v.(type) {
	case int:
		i.v = t
	case string:
		parsed, err := strconv.Atoi(t)
		if err != nil {
			return fmt.Errorf("settings: cannot set Int from %q: %w", t, err)
		}
		i.v = parsed
	default:
		return fmt.Errorf("settings: cannot set Int from %T", v)
	}
	return nil
}

func (i *Int) Get() int        { return i.v }
func (i *Int) String() string  { return strconv.Itoa(i.v) }
func (i *Int) restore(s string) error { return i.Set(s) }

// String is a string entry with an optional maximum length: once set,
// SetMaxLen crops the current value immediately, and Set crops every
// subsequent value to that length. Clearing the limit (SetMaxLen(0))
// does not restore whatever was cropped away.
type String struct {
	v      string
	maxLen int
}

func (s *String) Set(v any) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("settings: cannot set String from %T", v)
	}
	s.v = str
	s.crop()
	return nil
}

func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	s.crop()
}

func (s *String) crop() {
	if s.maxLen > 0 && len(s.v) > s.maxLen {
		s.v = s.v[:s.maxLen]
	}
}

func (s *String) String() string       { return s.v }
func (s *String) restore(v string) error { return s.Set(v) }

// Generic wraps a pair of arbitrary restore/dump callbacks, for values
// that don't fit Bool/Float/Int/String (spec §6.1 allows an
// implementation-defined serialization per field).
type Generic struct {
	restoreFn func(Value) error
	dumpFn    func() Value
}

// NewGeneric builds a Generic entry from a restore callback (parses a
// disk string into the caller's own state) and a dump callback
// (renders that state back out).
func NewGeneric(restore func(Value) error, dump func() Value) *Generic {
	return &Generic{restoreFn: restore, dumpFn: dump}
}

func (g *Generic) String() string {
	return fmt.Sprintf("%v", g.dumpFn())
}

func (g *Generic) restore(s string) error {
	return g.restoreFn(s)
}
