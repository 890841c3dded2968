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

package export

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/transform"

	"github.com/jetsetilly/negpy/imaging"
)

const cmPerInch = 2.54

// minContentPx is the floor content sizing clamps to, so a pathological
// border-vs-target combination never produces a zero or negative
// content rectangle.
const minContentPx = 10

// contentPixels returns the target long-edge pixel count for the
// content area (excluding the border), per spec §4.9 step 1.
func contentPixels(cfg Config) int {
	target := int(math.Round(cfg.PrintSizeCM / cmPerInch * float64(cfg.DPI)))
	border := borderPixels(cfg)
	content := target - 2*border
	if content < minContentPx {
		content = minContentPx
	}
	return content
}

// borderPixels returns the border width in pixels at the export DPI.
func borderPixels(cfg Config) int {
	return int(math.Round(cfg.BorderSizeCM / cmPerInch * float64(cfg.DPI)))
}

// resizeContent scales buf so its long edge equals targetLong,
// preserving aspect ratio, using Lanczos resampling. A targetLong
// equal to the buffer's current long edge, or not positive, is a no-op
// clone. UseOriginalRes is handled by Export, which skips this call.
func resizeContent(buf *imaging.Buffer, targetLong int) *imaging.Buffer {
	currentLong := buf.Width
	if buf.Height > currentLong {
		currentLong = buf.Height
	}
	if targetLong == currentLong || targetLong <= 0 {
		return buf.Clone()
	}

	scale := float64(targetLong) / float64(currentLong)
	newW := int(math.Round(float64(buf.Width) * scale))
	newH := int(math.Round(float64(buf.Height) * scale))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	src := toRGBA64(buf)
	resized := transform.Resize(src, newW, newH, transform.Lanczos)
	return fromImage(resized, newH, newW)
}

func toRGBA64(buf *imaging.Buffer) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			img.SetRGBA64(x, y, color.RGBA64{R: clamp16(r), G: clamp16(g), B: clamp16(b), A: 0xffff})
		}
	}
	return img
}

func clamp16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v * 0xffff)
}

func fromImage(img image.Image, height, width int) *imaging.Buffer {
	out := imaging.NewRGB(height, width)
	b := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= b.Dx() || y >= b.Dy() {
				continue
			}
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetRGB(y, x, float32(r)/0xffff, float32(g)/0xffff, float32(bl)/0xffff)
		}
	}
	return out
}
