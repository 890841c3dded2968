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

package lab_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jetsetilly/negpy/imaging"
	"github.com/jetsetilly/negpy/lab"
)

func noisyBuffer(h, w int, seed int64) *imaging.Buffer {
	r := rand.New(rand.NewSource(seed))
	b := imaging.NewRGB(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := float32(0.3 + 0.4*float64(y)/float64(h))
			n := float32(r.NormFloat64() * 0.02)
			b.SetRGB(y, x, clip32(base+n), clip32(base+n*0.8), clip32(base+n*1.2))
		}
	}
	return b
}

func clip32(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func TestCrosstalkIdentityAtSeparationOne(t *testing.T) {
	b := noisyBuffer(10, 10, 1)
	out := lab.Crosstalk(b, lab.DefaultCrosstalkMatrix, 1)
	for i := range b.Pix {
		assert.InDelta(t, b.Pix[i], out.Pix[i], 1e-4)
	}
}

func TestCrosstalkChangesOutputAboveOne(t *testing.T) {
	b := noisyBuffer(10, 10, 2)
	out := lab.Crosstalk(b, lab.DefaultCrosstalkMatrix, 3)
	diff := 0.0
	for i := range b.Pix {
		diff += float64(out.Pix[i] - b.Pix[i])
		if diff < 0 {
			diff = -diff
		}
	}
	assert.NotEqual(t, b.Pix, out.Pix)
}

func TestCLAHENoopAtZeroStrength(t *testing.T) {
	b := noisyBuffer(16, 16, 3)
	out := lab.CLAHE(b, 0)
	assert.Equal(t, b, out)
}

func TestCLAHEProducesFiniteOutput(t *testing.T) {
	b := noisyBuffer(32, 32, 4)
	out := lab.CLAHE(b, 0.8)
	assert.True(t, out.Finite())
	assert.True(t, out.InRange01())
}

func TestChromaDenoiseProducesFiniteOutput(t *testing.T) {
	b := noisyBuffer(24, 24, 5)
	out := lab.ChromaDenoise(b, 1.0, 1.0)
	assert.True(t, out.Finite())
	assert.True(t, out.InRange01())
}

func TestSharpenNoopAtZero(t *testing.T) {
	b := noisyBuffer(12, 12, 6)
	out := lab.Sharpen(b, 0)
	assert.Equal(t, b, out)
}

func TestSharpenProducesFiniteOutput(t *testing.T) {
	b := noisyBuffer(20, 20, 7)
	out := lab.Sharpen(b, 0.5)
	assert.True(t, out.Finite())
	assert.True(t, out.InRange01())
}

func TestSelectiveColorNoopWithoutBands(t *testing.T) {
	b := noisyBuffer(8, 8, 8)
	out := lab.SelectiveColor(b, nil)
	assert.Equal(t, b, out)
}

func TestSelectiveColorAdjustsWithinBand(t *testing.T) {
	b := imaging.NewRGB(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.SetRGB(y, x, 0.8, 0.2, 0.2) // reddish, hue ~0deg
		}
	}

	bands := []lab.HueBand{{CenterDeg: 0, WidthDeg: 40, Saturation: -0.5}}
	out := lab.SelectiveColor(b, bands)
	assert.True(t, out.Finite())
	assert.True(t, out.InRange01())
	assert.NotEqual(t, b.Pix, out.Pix)
}

func TestApplyEndToEndFinite(t *testing.T) {
	b := noisyBuffer(24, 24, 9)
	cfg := lab.Config{
		ColorSeparation: 2,
		ClaheStrength:   0.4,
		CNoiseStrength:  0.3,
		Sharpen:         0.5,
	}
	out := lab.Apply(b, cfg, 1.0)
	assert.True(t, out.Finite())
	assert.True(t, out.InRange01())
}
