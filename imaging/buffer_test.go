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

package imaging_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jetsetilly/negpy/imaging"
)

func TestEnsureRGBIdempotent(t *testing.T) {
	b := imaging.NewRGB(2, 2)
	b.SetRGB(0, 0, 0.1, 0.2, 0.3)

	once := imaging.EnsureRGB(b)
	twice := imaging.EnsureRGB(once)
	assert.Equal(t, once.Pix, twice.Pix)
}

func TestEnsureRGBReplicatesSingleChannel(t *testing.T) {
	b := imaging.New(1, 2, 1)
	b.Pix[0] = 0.4
	b.Pix[1] = 0.9

	out := imaging.EnsureRGB(b)
	r, g, bl := out.RGB(0, 0)
	assert.Equal(t, float32(0.4), r)
	assert.Equal(t, r, g)
	assert.Equal(t, r, bl)

	r, g, bl = out.RGB(0, 1)
	assert.Equal(t, float32(0.9), r)
	assert.Equal(t, r, g)
	assert.Equal(t, r, bl)
}

func TestEnsureRGBDropsAlpha(t *testing.T) {
	b := imaging.New(1, 1, 4)
	b.Pix = []float32{0.1, 0.2, 0.3, 0.5}

	out := imaging.EnsureRGB(b)
	assert.Equal(t, 3, out.Channels)
	r, g, bl := out.RGB(0, 0)
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, [3]float32{r, g, bl})
}

func TestUint16RoundTrip(t *testing.T) {
	src := []uint16{0, 32768, 65535}
	b := imaging.FromUint16(src, 1, 3, 1)

	back := b.ToUint16()
	for i, v := range src {
		diff := int(back[i]) - int(v)
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, 1)
	}
}

func TestToUint8ClipsNaN(t *testing.T) {
	b := imaging.NewRGB(1, 1)
	b.SetRGB(0, 0, float32(math.NaN()), -1, 2)

	out := b.ToUint8()
	assert.Equal(t, []uint8{0, 0, 255}, out)
}

func TestLuma(t *testing.T) {
	b := imaging.NewRGB(1, 2)
	b.SetRGB(0, 0, 1, 1, 1)
	b.SetRGB(0, 1, 0, 0, 0)

	l := imaging.Luma(b)
	assert.InDelta(t, 1.0, l[0], 1e-6)
	assert.InDelta(t, 0.0, l[1], 1e-6)
}

func TestClamp01(t *testing.T) {
	b := imaging.NewRGB(1, 1)
	b.SetRGB(0, 0, float32(math.NaN()), -5, 5)
	b.Clamp01()

	assert.True(t, b.Finite())
	assert.True(t, b.InRange01())
	r, g, bl := b.RGB(0, 0)
	assert.Equal(t, [3]float32{0, 0, 1}, [3]float32{r, g, bl})
}
