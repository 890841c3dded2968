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

package lab

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jetsetilly/negpy/imaging"
)

// SelectiveColor nudges saturation and lightness within named hue
// bands, in HSL, per the supplemented selective-color feature. Each
// band's influence falls off as a raised-cosine window of half-width
// WidthDeg centered on CenterDeg, so overlapping bands blend smoothly
// rather than producing hard edges.
func SelectiveColor(buf *imaging.Buffer, bands []HueBand) *imaging.Buffer {
	if len(bands) == 0 {
		return buf
	}

	out := imaging.NewRGB(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			c := colorful.Color{R: clip01(float64(r)), G: clip01(float64(g)), B: clip01(float64(b))}
			h, s, l := c.Hsl()

			for _, band := range bands {
				w := hueWeight(h, band.CenterDeg, band.WidthDeg)
				if w == 0 {
					continue
				}
				s = clip(s+band.Saturation*w, 0, 1)
				l = clip(l+band.Lightness*w, 0, 1)
			}

			adjusted := colorful.Hsl(h, s, l).Clamped()
			out.SetRGB(y, x, float32(adjusted.R), float32(adjusted.G), float32(adjusted.B))
		}
	}
	return out
}

func hueWeight(h, center, width float64) float64 {
	if width <= 0 {
		return 0
	}
	d := math.Mod(math.Abs(h-center), 360)
	if d > 180 {
		d = 360 - d
	}
	if d >= width {
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*d/width))
}
