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

	"github.com/jetsetilly/negpy/imaging"
)

// LocalAdjust applies every dodge/burn adjustment in order, each as a
// spatial mask (rasterized polyline, blurred) combined with a luma
// mask, per spec §4.4.3.
func LocalAdjust(buf *imaging.Buffer, adjustments []Adjustment, scaleFactor float64) *imaging.Buffer {
	if len(adjustments) == 0 {
		return buf
	}

	luma := imaging.Luma(buf)
	out := buf.Clone()

	for _, a := range adjustments {
		thickness := 2 * a.RadiusPx * scaleFactor
		spatial := rasterizePolyline(buf.Height, buf.Width, a.Points, thickness)
		blurRadius := a.RadiusPx * scaleFactor * a.Feather
		spatial = spatial.gaussianBlur(blurRadius)

		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				s := spatial.at(y, x)
				if s == 0 {
					continue
				}
				l := float64(luma[y*buf.Width+x])
				lm := lumaResponse(l, a.LumaRange[0], a.LumaRange[1], a.LumaSoftness)
				m := s * lm
				if m == 0 {
					continue
				}
				factor := math.Pow(2, m*a.StrengthEV)
				r, g, b := out.RGB(y, x)
				out.SetRGB(y, x, clip32(r*float32(factor)), clip32(g*float32(factor)), clip32(b*float32(factor)))
			}
		}
	}
	return out
}

// lumaResponse is the piecewise-linear ramp spec §4.4.3 describes: 0
// below low-softness, 1 between low and high, 0 above high+softness,
// with linear ramps of width softness at each transition.
func lumaResponse(l, low, high, softness float64) float64 {
	if softness <= 0 {
		if l >= low && l <= high {
			return 1
		}
		return 0
	}
	switch {
	case l < low-softness:
		return 0
	case l < low:
		return (l - (low - softness)) / softness
	case l <= high:
		return 1
	case l < high+softness:
		return 1 - (l-high)/softness
	default:
		return 0
	}
}

// rasterizePolyline draws a thickness-wide line through points
// (normalized raw-frame coordinates already mapped to this frame) into
// a fresh mask.
func rasterizePolyline(h, w int, points []Point, thickness float64) *mask {
	m := newMask(h, w)
	if len(points) == 0 {
		return m
	}
	if len(points) == 1 {
		p := points[0]
		stampDisc(m, p.NY*float64(h), p.NX*float64(w), thickness/2)
		return m
	}
	for i := 0; i < len(points)-1; i++ {
		a := points[i]
		b := points[i+1]
		stampSegment(m,
			a.NY*float64(h), a.NX*float64(w),
			b.NY*float64(h), b.NX*float64(w),
			thickness/2)
	}
	return m
}

func stampDisc(m *mask, cy, cx, radius float64) {
	if radius < 0.5 {
		radius = 0.5
	}
	y0 := clampInt(int(cy-radius)-1, 0, m.Height-1)
	y1 := clampInt(int(cy+radius)+1, 0, m.Height-1)
	x0 := clampInt(int(cx-radius)-1, 0, m.Width-1)
	x1 := clampInt(int(cx+radius)+1, 0, m.Width-1)
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
}

// stampSegment marks every pixel within radius of segment (ay,ax)-(by,bx).
func stampSegment(m *mask, ay, ax, by, bx, radius float64) {
	if radius < 0.5 {
		radius = 0.5
	}
	minY := clampInt(int(math.Min(ay, by)-radius)-1, 0, m.Height-1)
	maxY := clampInt(int(math.Max(ay, by)+radius)+1, 0, m.Height-1)
	minX := clampInt(int(math.Min(ax, bx)-radius)-1, 0, m.Width-1)
	maxX := clampInt(int(math.Max(ax, bx)+radius)+1, 0, m.Width-1)

	dy := by - ay
	dx := bx - ax
	lenSq := dy*dy + dx*dx

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			var dist float64
			if lenSq == 0 {
				py, px := float64(y)-ay, float64(x)-ax
				dist = math.Sqrt(py*py + px*px)
			} else {
				t := ((float64(y)-ay)*dy + (float64(x)-ax)*dx) / lenSq
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
				py := ay + t*dy
				px := ax + t*dx
				ddy := float64(y) - py
				ddx := float64(x) - px
				dist = math.Sqrt(ddy*ddy + ddx*ddx)
			}
			if dist <= radius {
				m.set(y, x, 1)
			}
		}
	}
}
