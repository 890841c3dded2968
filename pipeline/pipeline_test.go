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

package pipeline_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/geometry"
	"github.com/jetsetilly/negpy/imaging"
	"github.com/jetsetilly/negpy/lab"
	"github.com/jetsetilly/negpy/pipeline"
	"github.com/jetsetilly/negpy/retouch"
	"github.com/jetsetilly/negpy/toning"
)

func negativeBuffer(h, w int) *imaging.Buffer {
	buf := imaging.NewRGB(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(0.2 + 0.5*float64(x)/float64(w))
			buf.SetRGB(y, x, v, v, v)
		}
	}
	return buf
}

func defaultWorkspace() pipeline.WorkspaceConfig {
	return pipeline.WorkspaceConfig{
		ProcessMode: exposure.C41,
		Geometry:    geometry.Config{AutocropRatio: "3:2"},
		Exposure:    exposure.DefaultConfig(),
		Retouch:     retouch.Config{},
		Lab:         lab.Config{ColorSeparation: 1, SelectiveBands: nil},
		Toning:      toning.Config{PaperProfile: "none"},
	}
}

func TestProcessProducesFiniteOutput(t *testing.T) {
	buf := negativeBuffer(64, 96)
	o := pipeline.NewOrchestrator()

	out, ctx, err := o.Process(buf, defaultWorkspace(), "source-a")
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NotNil(t, ctx)
	assert.True(t, out.Finite())
	assert.True(t, out.InRange01())
	assert.Equal(t, 64, ctx.OriginalH)
	assert.Equal(t, 96, ctx.OriginalW)
}

func TestProcessReusesCacheWhenConfigUnchanged(t *testing.T) {
	buf := negativeBuffer(48, 48)
	o := pipeline.NewOrchestrator()
	ws := defaultWorkspace()

	first, _, err := o.Process(buf, ws, "source-a")
	require.NoError(t, err)

	second, _, err := o.Process(buf, ws, "source-a")
	require.NoError(t, err)

	assert.Equal(t, first.Pix, second.Pix)
}

func TestProcessSourceChangeClearsCache(t *testing.T) {
	a := negativeBuffer(32, 32)
	b := negativeBuffer(32, 40)
	o := pipeline.NewOrchestrator()
	ws := defaultWorkspace()

	_, ctxA, err := o.Process(a, ws, "source-a")
	require.NoError(t, err)
	assert.Equal(t, 32, ctxA.OriginalW)

	outB, ctxB, err := o.Process(b, ws, "source-b")
	require.NoError(t, err)
	assert.Equal(t, 40, ctxB.OriginalW)

	// a fresh orchestrator has nothing cached, so its output is what a
	// cleared cache must reproduce for the second source
	fresh, _, err := pipeline.NewOrchestrator().Process(b, ws, "source-b")
	require.NoError(t, err)
	assert.Equal(t, fresh.Pix, outB.Pix)
}

func TestProcessDifferentExposureChangesOutput(t *testing.T) {
	buf := negativeBuffer(32, 32)
	o := pipeline.NewOrchestrator()

	wsA := defaultWorkspace()
	outA, _, err := o.Process(buf, wsA, "source-a")
	require.NoError(t, err)

	wsB := defaultWorkspace()
	wsB.Exposure.Grade = 3.0
	outB, _, err := o.Process(buf, wsB, "source-a")
	require.NoError(t, err)

	assert.NotEqual(t, outA.Pix, outB.Pix)
}

func TestProcessBWModeCollapsesChannels(t *testing.T) {
	buf := negativeBuffer(16, 16)
	o := pipeline.NewOrchestrator()
	ws := defaultWorkspace()
	ws.ProcessMode = exposure.BW

	out, _, err := o.Process(buf, ws, "source-a")
	require.NoError(t, err)

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, b := out.RGB(y, x)
			assert.InDelta(t, r, g, 1e-3)
			assert.InDelta(t, g, b, 1e-3)
		}
	}
}

func TestDumpStageGraphWritesSomething(t *testing.T) {
	buf := negativeBuffer(16, 16)
	o := pipeline.NewOrchestrator()
	_, _, err := o.Process(buf, defaultWorkspace(), "source-a")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, o.DumpStageGraph(&out))
	assert.Greater(t, out.Len(), 0)
}
