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
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
)

// mask is a single-channel float64 grid in [0,1], row-major, used for
// dust masks, heal masks and dodge/burn spatial/luma masks alike.
type mask struct {
	Height, Width int
	V             []float64
}

func newMask(h, w int) *mask {
	return &mask{Height: h, Width: w, V: make([]float64, h*w)}
}

func (m *mask) at(y, x int) float64 {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return 0
	}
	return m.V[y*m.Width+x]
}

func (m *mask) set(y, x int, v float64) {
	if y < 0 || y >= m.Height || x < 0 || x >= m.Width {
		return
	}
	m.V[y*m.Width+x] = v
}

// ellipseOffsets returns the (dy,dx) offsets of an axis-aligned
// ellipse structuring element inscribed in a (2r+1)x(2r+1) box.
func ellipseOffsets(r int) [][2]int {
	var offs [][2]int
	rf := float64(r)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if rf == 0 || (float64(dy)*float64(dy))/(rf*rf)+(float64(dx)*float64(dx))/(rf*rf) <= 1 {
				offs = append(offs, [2]int{dy, dx})
			}
		}
	}
	return offs
}

// dilate replaces every sample with the max over the structuring
// element's footprint.
func (m *mask) dilate(radius int) *mask {
	offs := ellipseOffsets(radius)
	out := newMask(m.Height, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := 0.0
			for _, o := range offs {
				if s := m.at(y+o[0], x+o[1]); s > v {
					v = s
				}
			}
			out.set(y, x, v)
		}
	}
	return out
}

// erode replaces every sample with the min over the structuring
// element's footprint.
func (m *mask) erode(radius int) *mask {
	offs := ellipseOffsets(radius)
	out := newMask(m.Height, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := 1.0
			for _, o := range offs {
				if s := m.at(y+o[0], x+o[1]); s < v {
					v = s
				}
			}
			out.set(y, x, v)
		}
	}
	return out
}

// close is erode(dilate(m)): fills small gaps without shrinking the
// overall footprint.
func (m *mask) close(radius int) *mask {
	return m.dilate(radius).erode(radius)
}

// gaussianBlur routes the mask through bild's Gaussian blur by encoding
// it as a single-channel image and decoding the result back to float.
func (m *mask) gaussianBlur(radius float64) *mask {
	if radius <= 0 {
		return m
	}
	src := image.NewGray16(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			v := clip01(m.at(y, x))
			src.SetGray16(x, y, color.Gray16{Y: uint16(v * 0xffff)})
		}
	}
	blurred := blur.Gaussian(src, radius)

	out := newMask(m.Height, m.Width)
	b := blurred.Bounds()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if x >= b.Dx() || y >= b.Dy() {
				continue
			}
			g, _, _, _ := blurred.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.set(y, x, float64(g)/0xffff)
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

// oddAtLeast1 rounds v to the nearest odd integer >= 1, matching the
// spec's odd(...) kernel-size convention.
func oddAtLeast1(v float64) int {
	n := int(v)
	if n < 1 {
		n = 1
	}
	if n%2 == 0 {
		n++
	}
	return n
}
