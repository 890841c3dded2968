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

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/icc"
	"github.com/jetsetilly/negpy/pipeline"
	"github.com/jetsetilly/negpy/settings"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags([]string{"roll.png"})
	require.NoError(t, err)
	assert.Equal(t, "c41", f.mode)
	assert.Equal(t, "jpeg", f.format)
	assert.False(t, f.hasDensity)
	assert.Equal(t, []string{"roll.png"}, f.files)
}

func TestParseFlagsTracksExplicitOverrides(t *testing.T) {
	f, err := parseFlags([]string{"--density", "1.5", "--dpi", "600", "a.png", "b.png"})
	require.NoError(t, err)
	assert.True(t, f.hasDensity)
	assert.InDelta(t, 1.5, f.density, 1e-9)
	assert.True(t, f.hasDPI)
	assert.Equal(t, 600, f.dpi)
	assert.False(t, f.hasGrade)
	assert.Equal(t, []string{"a.png", "b.png"}, f.files)
}

func TestProcessModeRejectsUnknown(t *testing.T) {
	_, err := processMode("xyz")
	assert.Error(t, err)

	m, err := processMode("BW")
	require.NoError(t, err)
	assert.Equal(t, exposure.BW, m)
}

func TestColorSpaceMapsEveryToken(t *testing.T) {
	cases := map[string]icc.ColorSpace{
		"srgb":       icc.SRGB,
		"adobe-rgb":  icc.AdobeRGB,
		"prophoto":   icc.ProPhoto,
		"wide-gamut": icc.WideGamut,
		"aces":       icc.ACES,
		"p3":         icc.DisplayP3,
		"rec2020":    icc.Rec2020,
		"greyscale":  icc.Greyscale,
	}
	for token, want := range cases {
		got, err := colorSpace(token)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := colorSpace("nonsense")
	assert.Error(t, err)
}

func TestBuildWorkspaceAppliesExplicitFlags(t *testing.T) {
	f, err := parseFlags([]string{"--mode", "bw", "--density", "2", "--dpi", "600", "roll.png"})
	require.NoError(t, err)

	ws, exp, err := buildWorkspace(f)
	require.NoError(t, err)
	assert.Equal(t, exposure.BW, ws.ProcessMode)
	assert.InDelta(t, 2, ws.Exposure.Density, 1e-9)
	assert.Equal(t, 600, exp.DPI)
}

func TestBuildWorkspaceLoadsSettingsFileThenAppliesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.settings")
	preset := pipeline.WorkspaceConfig{
		Exposure: exposure.Config{Density: 1, Grade: 2},
	}
	require.NoError(t, settings.SaveWorkspaceConfig(path, preset))

	f, err := parseFlags([]string{"--settings", path, "--grade", "3", "roll.png"})
	require.NoError(t, err)

	ws, _, err := buildWorkspace(f)
	require.NoError(t, err)
	assert.InDelta(t, 1, ws.Exposure.Density, 1e-9) // inherited from settings file
	assert.InDelta(t, 3, ws.Exposure.Grade, 1e-9)   // overridden by explicit flag
}

func TestRenderFilenameExpandsTokens(t *testing.T) {
	name := renderFilename("{{ mode }}_{{ original_name }}_{{ colorspace }}_{{ border }}", "frame01", exposure.BW, icc.SRGB, 1.0)
	assert.Equal(t, "B&W_frame01_srgb_border", name)
}

func TestRenderFilenameNoBorderWhenZero(t *testing.T) {
	name := renderFilename("{{ original_name }}{{ border }}", "frame01", exposure.C41, icc.SRGB, 0)
	assert.Equal(t, "frame01", name)
}

func TestRenderFilenameFallsBackOnBadTemplate(t *testing.T) {
	name := renderFilename("{{ original_name", "frame01", exposure.C41, icc.SRGB, 0)
	assert.Equal(t, "positive_frame01", name)
}
