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

package settings_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/geometry"
	"github.com/jetsetilly/negpy/pipeline"
	"github.com/jetsetilly/negpy/settings"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "negpy_settings_test")
}

func readFile(t *testing.T, fn string) string {
	t.Helper()
	data, err := os.ReadFile(fn)
	require.NoError(t, err)
	return string(data)
}

func TestDiskBool(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := settings.NewDisk(fn)
	require.NoError(t, err)

	var v, w, x settings.Bool
	require.NoError(t, dsk.Add("test", &v))
	require.NoError(t, dsk.Add("testB", &w))
	require.NoError(t, dsk.Add("testC", &x))

	require.NoError(t, v.Set(true))
	require.NoError(t, w.Set("foo"))
	require.NoError(t, x.Set("true"))

	require.NoError(t, dsk.Save())

	expected := fmt.Sprintf("%s\n%s", settings.WarningBoilerPlate, "test :: true\ntestB :: false\ntestC :: true\n")
	assert.Equal(t, expected, readFile(t, fn))
}

func TestDiskString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := settings.NewDisk(fn)
	require.NoError(t, err)

	var v settings.String
	require.NoError(t, dsk.Add("foo", &v))
	require.NoError(t, v.Set("bar"))
	require.NoError(t, dsk.Save())

	expected := fmt.Sprintf("%s\n%s", settings.WarningBoilerPlate, "foo :: bar\n")
	assert.Equal(t, expected, readFile(t, fn))
}

func TestDiskFloat(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := settings.NewDisk(fn)
	require.NoError(t, err)

	var v settings.Float
	require.NoError(t, dsk.Add("foo", &v))

	assert.Error(t, v.Set("bar"))
	require.NoError(t, v.Set(1.0))
	require.NoError(t, v.Set(2.0))
	require.NoError(t, v.Set(-3.0))
	require.NoError(t, dsk.Save())
}

func TestDiskInt(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := settings.NewDisk(fn)
	require.NoError(t, err)

	var v, w settings.Int
	require.NoError(t, dsk.Add("number", &v))
	require.NoError(t, dsk.Add("numberB", &w))

	require.NoError(t, v.Set(10))
	require.NoError(t, w.Set("99"))
	require.NoError(t, dsk.Save())

	expected := fmt.Sprintf("%s\n%s", settings.WarningBoilerPlate, "number :: 10\nnumberB :: 99\n")
	assert.Equal(t, expected, readFile(t, fn))

	assert.Error(t, v.Set("---"))
	assert.Error(t, v.Set(1.0))
}

func TestDiskGeneric(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := settings.NewDisk(fn)
	require.NoError(t, err)

	var w, h int
	v := settings.NewGeneric(
		func(s settings.Value) error {
			_, err := fmt.Sscanf(s.(string), "%d,%d", &w, &h)
			return err
		},
		func() settings.Value {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)
	require.NoError(t, dsk.Add("generic", v))

	w, h = 1, 2
	require.NoError(t, dsk.Save())

	expected := fmt.Sprintf("%s\n%s", settings.WarningBoilerPlate, "generic :: 1,2\n")
	assert.Equal(t, expected, readFile(t, fn))

	w, h = 0, 0
	require.NoError(t, dsk.Load())
	assert.Equal(t, 1, w)
	assert.Equal(t, 2, h)
}

func TestDiskBoolAndStringDoesNotClobber(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := settings.NewDisk(fn)
	require.NoError(t, err)

	var v settings.Bool
	require.NoError(t, dsk.Add("test", &v))
	require.NoError(t, v.Set(true))
	require.NoError(t, dsk.Save())

	dsk2, err := settings.NewDisk(fn)
	require.NoError(t, err)

	var s settings.String
	require.NoError(t, dsk2.Add("foo", &s))
	require.NoError(t, s.Set("bar"))
	require.NoError(t, dsk2.Save())

	expected := fmt.Sprintf("%s\n%s", settings.WarningBoilerPlate, "foo :: bar\ntest :: true\n")
	assert.Equal(t, expected, readFile(t, fn))
}

func TestStringMaxLen(t *testing.T) {
	var s settings.String
	require.NoError(t, s.Set("123456789"))
	assert.Equal(t, "123456789", s.String())

	s.SetMaxLen(5)
	assert.Equal(t, "12345", s.String())

	s.SetMaxLen(0)
	assert.Equal(t, "12345", s.String())

	s.SetMaxLen(3)
	require.NoError(t, s.Set("abcdefghi"))
	assert.Equal(t, "abc", s.String())
}

func TestRepositoryFileConfigRoundTrip(t *testing.T) {
	repo, err := settings.NewRepository(t.TempDir())
	require.NoError(t, err)

	cfg := pipeline.WorkspaceConfig{
		ProcessMode: exposure.BW,
		Geometry: geometry.Config{
			Rotation:      1,
			FineRotation:  2.5,
			AutocropRatio: "4:3",
		},
	}

	require.NoError(t, repo.SaveFileConfig("abc123", cfg))

	loaded, existed, err := repo.LoadFileConfig("abc123", pipeline.WorkspaceConfig{Geometry: geometry.Config{AutocropRatio: "3:2"}})
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, exposure.BW, loaded.ProcessMode)
	assert.Equal(t, 1, loaded.Geometry.Rotation)
	assert.InDelta(t, 2.5, loaded.Geometry.FineRotation, 1e-9)
	assert.Equal(t, "4:3", loaded.Geometry.AutocropRatio)
}

func TestRepositoryLoadMissingFileReturnsDefaults(t *testing.T) {
	repo, err := settings.NewRepository(t.TempDir())
	require.NoError(t, err)

	defaults := pipeline.WorkspaceConfig{Geometry: geometry.Config{AutocropRatio: "3:2"}}
	loaded, existed, err := repo.LoadFileConfig("neverseen", defaults)
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, defaults, loaded)
}

func TestRepositoryGlobalRoundTrip(t *testing.T) {
	repo, err := settings.NewRepository(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.SaveGlobal("no_gpu", true))
	assert.Equal(t, true, repo.GetGlobal("no_gpu", false))

	require.NoError(t, repo.SaveGlobal("default_dpi", 300))
	assert.Equal(t, 300, repo.GetGlobal("default_dpi", 0))

	assert.Equal(t, "fallback", repo.GetGlobal("never_saved", "fallback"))
}
