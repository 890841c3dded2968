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

package geometry

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"

	"github.com/jetsetilly/negpy/imaging"
)

// Rot90 rotates buf counter-clockwise by k*90 degrees, k taken mod 4.
// For odd k the returned buffer's height and width are swapped.
func Rot90(buf *imaging.Buffer, k int) *imaging.Buffer {
	k = ((k % 4) + 4) % 4
	if k == 0 {
		return buf.Clone()
	}

	h, w, c := buf.Height, buf.Width, buf.Channels
	var out *imaging.Buffer
	switch k {
	case 1: // 90 CCW: (x,y) in src -> (y, W-1-x) in dst, dst is W x H
		out = imaging.New(w, h, c)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dy := w - 1 - x
				dx := y
				for ch := 0; ch < c; ch++ {
					out.Set(dy, dx, ch, buf.At(y, x, ch))
				}
			}
		}
	case 2: // 180: (x,y) -> (W-1-x, H-1-y)
		out = imaging.New(h, w, c)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dy := h - 1 - y
				dx := w - 1 - x
				for ch := 0; ch < c; ch++ {
					out.Set(dy, dx, ch, buf.At(y, x, ch))
				}
			}
		}
	case 3: // 270 CCW (90 CW): (x,y) -> (H-1-y, x)
		out = imaging.New(w, h, c)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dy := x
				dx := h - 1 - y
				for ch := 0; ch < c; ch++ {
					out.Set(dy, dx, ch, buf.At(y, x, ch))
				}
			}
		}
	}
	return out
}

// FlipHorizontal reverses each row.
func FlipHorizontal(buf *imaging.Buffer) *imaging.Buffer {
	out := imaging.New(buf.Height, buf.Width, buf.Channels)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			dx := buf.Width - 1 - x
			for c := 0; c < buf.Channels; c++ {
				out.Set(y, dx, c, buf.At(y, x, c))
			}
		}
	}
	return out
}

// FlipVertical reverses the row order.
func FlipVertical(buf *imaging.Buffer) *imaging.Buffer {
	out := imaging.New(buf.Height, buf.Width, buf.Channels)
	for y := 0; y < buf.Height; y++ {
		dy := buf.Height - 1 - y
		for x := 0; x < buf.Width; x++ {
			for c := 0; c < buf.Channels; c++ {
				out.Set(dy, x, c, buf.At(y, x, c))
			}
		}
	}
	return out
}

// FineRotate warps buf by angleDegrees about its center, preserving
// dimensions, with bilinear sampling and a constant-black boundary.
// Dimensions are preserved as required by spec; angle of 0 is a no-op
// clone so callers don't need to special-case it.
func FineRotate(buf *imaging.Buffer, angleDegrees float64) *imaging.Buffer {
	if angleDegrees == 0 {
		return buf.Clone()
	}

	src := toRGBA64(buf)
	pivot := image.Point{X: src.Bounds().Dx() / 2, Y: src.Bounds().Dy() / 2}

	rotated := transform.Rotate(src, angleDegrees, &transform.RotationOptions{
		ResizeBounds: false,
		Pivot:        &pivot,
	})

	return fromImage(rotated, buf.Height, buf.Width)
}

// toRGBA64 bridges our float32 buffer into the standard image.Image
// interface bild's transform package consumes, at 16-bit precision per
// channel.
func toRGBA64(buf *imaging.Buffer) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			img.SetRGBA64(x, y, rgba64(r, g, b))
		}
	}
	return img
}

func rgba64(r, g, b float32) color.RGBA64 {
	return color.RGBA64{R: clamp16(r), G: clamp16(g), B: clamp16(b), A: 0xffff}
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

// fromImage reads a warped image back out into a Buffer of the given
// dimensions, cropping/padding with black if the source differs (it
// won't, since ResizeBounds is always false in this package, but the
// bound check keeps the function honest against future callers).
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
