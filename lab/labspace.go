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
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jetsetilly/negpy/imaging"
)

// planes is a buffer decomposed into CIE L*a*b* planes, L on the
// conventional 0-100 scale (go-colorful's own Lab() returns L on
// [0,1]; every threshold in spec §4.5 is written against the 0-100
// convention, so L is rescaled at the boundary).
type planes struct {
	Height, Width int
	L, A, B       []float64
}

func toLab(buf *imaging.Buffer) planes {
	p := planes{
		Height: buf.Height,
		Width:  buf.Width,
		L:      make([]float64, buf.Height*buf.Width),
		A:      make([]float64, buf.Height*buf.Width),
		B:      make([]float64, buf.Height*buf.Width),
	}
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			c := colorful.Color{R: clip01(float64(r)), G: clip01(float64(g)), B: clip01(float64(b))}
			l, a, bb := c.Lab()
			i := y*buf.Width + x
			p.L[i] = l * 100
			p.A[i] = a * 100
			p.B[i] = bb * 100
		}
	}
	return p
}

func (p planes) toRGB() *imaging.Buffer {
	out := imaging.NewRGB(p.Height, p.Width)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			i := y*p.Width + x
			c := colorful.Lab(p.L[i]/100, p.A[i]/100, p.B[i]/100).Clamped()
			out.SetRGB(y, x, float32(c.R), float32(c.G), float32(c.B))
		}
	}
	return out
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
