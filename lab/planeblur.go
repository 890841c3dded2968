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
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
)

// planeOffset centers a/b* values (nominally [-128,127]) into gray16's
// unsigned range before handing them to bild's Gaussian blur.
const planeOffset = 128.0

// gaussianBlurPlane Gaussian-blurs an arbitrary-range plane (e.g. L or
// a/b) by round-tripping through a 16-bit grayscale image.
func gaussianBlurPlane(plane []float64, height, width int, radius float64) []float64 {
	if radius <= 0 {
		out := make([]float64, len(plane))
		copy(out, plane)
		return out
	}

	src := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := plane[y*width+x] + planeOffset
			src.SetGray16(x, y, color.Gray16{Y: uint16(clip(v/256*0xffff, 0, 0xffff))})
		}
	}
	blurred := blur.Gaussian(src, radius)

	out := make([]float64, len(plane))
	b := blurred.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= b.Dx() || y >= b.Dy() {
				continue
			}
			g, _, _, _ := blurred.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out[y*width+x] = float64(g)/0xffff*256 - planeOffset
		}
	}
	return out
}
