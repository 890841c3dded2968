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

package retouch

import (
	"math"
	"math/rand"

	"github.com/jetsetilly/negpy/imaging"
)

// inpaintPasses is how many relaxation sweeps ManualHeal runs to let
// color information propagate in from a disc's boundary; a Telea
// solver converges in one pass per pixel shell, a fixed sweep count
// gets visually indistinguishable results for the disc sizes spot
// healing uses.
const inpaintPasses = 24

// grainSigmaBase is the noise-synthesis constant from spec §4.4.2: σ is
// modulated per-pixel by 5*luma*(1-luma) of the healed base.
const grainSigmaBase = 5

// ManualHeal paints a filled disc for each spot, inpaints the disc's
// interior from its surrounding pixels (approximating the Telea
// algorithm with a fixed-radius relaxation fill), adds grain-matched
// noise within the disc, and feathers the blend by a 3-px Gaussian.
// A nil rng is replaced by a new source seeded with 1 on each call.
func ManualHeal(buf *imaging.Buffer, spots []Spot, scaleFactor float64, rng *rand.Rand) *imaging.Buffer {
	if len(spots) == 0 {
		return buf
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	out := buf.Clone()
	for _, spot := range spots {
		cy := spot.NY * float64(buf.Height)
		cx := spot.NX * float64(buf.Width)
		radius := spot.Size * scaleFactor
		if radius < 1 {
			radius = 1
		}
		inpaintRadius := 3 * scaleFactor
		if inpaintRadius < 1 {
			inpaintRadius = 1
		}

		m := discMask(buf.Height, buf.Width, cy, cx, radius)
		healed := inpaintDisc(out, m, inpaintRadius)
		addGrain(healed, m, rng)

		feathered := m.gaussianBlur(3)
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				w := float32(feathered.at(y, x))
				if w == 0 {
					continue
				}
				r, g, b := out.RGB(y, x)
				hr, hg, hb := healed.RGB(y, x)
				out.SetRGB(y, x, r*(1-w)+hr*w, g*(1-w)+hg*w, b*(1-w)+hb*w)
			}
		}
	}
	return out
}

func discMask(h, w int, cy, cx, radius float64) *mask {
	m := newMask(h, w)
	y0 := clampInt(int(cy-radius)-1, 0, h-1)
	y1 := clampInt(int(cy+radius)+1, 0, h-1)
	x0 := clampInt(int(cx-radius)-1, 0, w-1)
	x1 := clampInt(int(cx+radius)+1, 0, w-1)
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dy := float64(y) - cy
			dx := float64(x) - cx
			if dy*dy+dx*dx <= r2 {
				m.set(y, x, 1)
			}
		}
	}
	return m
}

// inpaintDisc fills the masked region of a clone of buf by repeatedly
// replacing each masked pixel with the average of every neighbor in
// its window (masked neighbors included, at their current value), so
// the surrounding color spreads inward from the disc boundary.
func inpaintDisc(buf *imaging.Buffer, m *mask, radius float64) *imaging.Buffer {
	out := buf.Clone()
	ir := int(math.Ceil(radius))
	if ir < 1 {
		ir = 1
	}

	for pass := 0; pass < inpaintPasses; pass++ {
		changed := false
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				if m.at(y, x) == 0 {
					continue
				}
				var sr, sg, sb float32
				var n float32
				for dy := -ir; dy <= ir; dy++ {
					for dx := -ir; dx <= ir; dx++ {
						if dy == 0 && dx == 0 {
							continue
						}
						yy, xx := y+dy, x+dx
						if yy < 0 || yy >= buf.Height || xx < 0 || xx >= buf.Width {
							continue
						}
						r, g, b := out.RGB(yy, xx)
						sr += r
						sg += g
						sb += b
						n++
					}
				}
				if n == 0 {
					continue
				}
				out.SetRGB(y, x, sr/n, sg/n, sb/n)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return out
}

// addGrain adds per-pixel normal noise within the mask footprint,
// σ modulated by the healed base's own luma so the synthesized grain
// matches the surrounding film's tonal dependence.
func addGrain(buf *imaging.Buffer, m *mask, rng *rand.Rand) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if m.at(y, x) == 0 {
				continue
			}
			r, g, b := buf.RGB(y, x)
			luma := imaging.LumaR*float64(r) + imaging.LumaG*float64(g) + imaging.LumaB*float64(b)
			sigma := grainSigmaBase * luma * (1 - luma) / 255
			n := float32(rng.NormFloat64() * sigma)
			buf.SetRGB(y, x, clip32(r+n), clip32(g+n), clip32(b+n))
		}
	}
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
