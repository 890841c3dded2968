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
	"reflect"
	"strconv"

	"github.com/jetsetilly/negpy/imaging"
)

// flatten walks v (a WorkspaceConfig or any nested struct within it)
// and writes every scalar field into out under its dotted field-name
// path, per spec §6.3 ("nested sub-configs are flattened with their
// field names"). Slices, maps and arrays - manual dust spot lists,
// local adjustments, the crosstalk matrix override - and the optional
// flatfield buffer fall outside the flat key/value contract and are
// simply not written; see DESIGN.md. A non-nil pointer to a struct
// (the manual crop rectangle) is followed and its fields are written
// like any nested struct; a nil one writes nothing.
func flatten(prefix string, v reflect.Value, out map[string]string) {
	v = reflect.Indirect(v)
	if !v.IsValid() {
		return
	}
	if v.Type() == reflect.TypeOf(imaging.Buffer{}) {
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			key := f.Name
			if prefix != "" {
				key = prefix + "." + f.Name
			}
			flatten(key, v.Field(i), out)
		}
	case reflect.Bool:
		out[prefix] = strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out[prefix] = strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		out[prefix] = strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case reflect.String:
		out[prefix] = v.String()
	default:
		// slice, map, array, non-scalar pointer: not a flat field.
	}
}

// unflatten is flatten's inverse: it sets every scalar field of v
// (addressable) from in, leaving fields whose key is absent at
// whatever value v already held - the caller passes in a copy of the
// defaults, so "missing keys inherit defaults" falls out for free.
// Unrecognized keys in the map are simply never looked up, satisfying
// "unrecognized keys during deserialization are ignored".
func unflatten(prefix string, v reflect.Value, in map[string]string) {
	v = reflect.Indirect(v)
	if !v.IsValid() || !v.CanSet() && v.Kind() != reflect.Struct {
		return
	}
	if v.Type() == reflect.TypeOf(imaging.Buffer{}) {
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			key := f.Name
			if prefix != "" {
				key = prefix + "." + f.Name
			}
			unflatten(key, v.Field(i), in)
		}
	case reflect.Bool:
		if s, ok := in[prefix]; ok {
			if b, err := strconv.ParseBool(s); err == nil {
				v.SetBool(b)
			}
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s, ok := in[prefix]; ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				v.SetInt(n)
			}
		}
	case reflect.Float32, reflect.Float64:
		if s, ok := in[prefix]; ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				v.SetFloat(f)
			}
		}
	case reflect.String:
		if s, ok := in[prefix]; ok {
			v.SetString(s)
		}
	}
}
