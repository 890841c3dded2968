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

package retouch_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/negpy/geometry"
	"github.com/jetsetilly/negpy/imaging"
	"github.com/jetsetilly/negpy/retouch"
)

func flatBuffer(h, w int, v float32) *imaging.Buffer {
	b := imaging.NewRGB(h, w)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}

func TestAutoDustNoopWhenDisabled(t *testing.T) {
	b := flatBuffer(20, 20, 0.5)
	cfg := retouch.Config{DustRemove: false}
	out := retouch.AutoDust(b, cfg, 1)
	assert.Equal(t, b, out)
}

func TestAutoDustRemovesIsolatedSpeck(t *testing.T) {
	h, w := 40, 40
	b := flatBuffer(h, w, 0.5)
	b.SetRGB(20, 20, 1, 1, 1) // a bright speck against a flat field

	cfg := retouch.Config{DustRemove: true, DustThreshold: 0.05, DustSize: 3}
	out := retouch.AutoDust(b, cfg, 1)

	r, _, _ := out.RGB(20, 20)
	assert.Less(t, float64(r), 0.9)
}

func TestManualHealFillsSpotFromSurroundings(t *testing.T) {
	h, w := 30, 30
	b := flatBuffer(h, w, 0.4)
	b.SetRGB(15, 15, 1, 1, 1)

	spots := []retouch.Spot{{NX: 0.5, NY: 0.5, Size: 4}}
	out := retouch.ManualHeal(b, spots, 1, rand.New(rand.NewSource(1)))

	r, _, _ := out.RGB(15, 15)
	assert.Less(t, float64(r), 0.9)
	assert.True(t, out.Finite())
}

func TestLocalAdjustBrightensWithinMask(t *testing.T) {
	h, w := 40, 40
	b := flatBuffer(h, w, 0.3)

	adj := []retouch.Adjustment{{
		Points:       []retouch.Point{{NX: 0.5, NY: 0.5}},
		StrengthEV:   2,
		RadiusPx:     10,
		Feather:      0.3,
		LumaRange:    [2]float64{0, 1},
		LumaSoftness: 0.1,
	}}

	out := retouch.LocalAdjust(b, adj, 1)
	r, _, _ := out.RGB(20, 20)
	assert.Greater(t, float64(r), 0.3)
}

func TestLocalAdjustNoopOutsideMask(t *testing.T) {
	h, w := 60, 60
	b := flatBuffer(h, w, 0.3)

	adj := []retouch.Adjustment{{
		Points:       []retouch.Point{{NX: 0.1, NY: 0.1}},
		StrengthEV:   3,
		RadiusPx:     3,
		Feather:      0.1,
		LumaRange:    [2]float64{0, 1},
		LumaSoftness: 0.1,
	}}

	out := retouch.LocalAdjust(b, adj, 1)
	r, _, _ := out.RGB(50, 50)
	assert.InDelta(t, 0.3, float64(r), 1e-6)
}

func TestApplyHandlesEmptyConfig(t *testing.T) {
	b := flatBuffer(10, 10, 0.5)
	out := retouch.Apply(b, retouch.Config{}, 1, geometry.Params{RawHeight: 10, RawWidth: 10})
	require.NotNil(t, out)
	assert.Equal(t, b.Pix, out.Pix)
}

func TestApplyMapsSpotThroughGeometry(t *testing.T) {
	// the spot is marked at raw (x=10, y=5); one 90-degree rotation
	// maps it to display (x=5, y=10), where the speck sits in the
	// buffer the retouch stage receives
	b := flatBuffer(20, 20, 0.4)
	b.SetRGB(10, 5, 1, 1, 1)

	params := geometry.Params{Rotation: 1, RawHeight: 20, RawWidth: 20}
	cfg := retouch.Config{
		ManualDustSpots: []retouch.Spot{{NX: 10.0 / 20, NY: 5.0 / 20, Size: 3}},
	}

	out := retouch.Apply(b, cfg, 1, params)
	assert.True(t, out.Finite())
	assert.True(t, out.InRange01())

	r, _, _ := out.RGB(10, 5)
	assert.Less(t, float64(r), 0.9)
}
