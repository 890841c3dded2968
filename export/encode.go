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
	"bytes"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/tiff"

	"github.com/jetsetilly/negpy/imaging"
)

const jpegQuality = 95

// encodeJPEG writes buf as an 8-bit JPEG at jpegQuality, with a JFIF
// density header set to dpi so downstream print tools read the
// correct physical size (spec §6.4). icc, if non-empty, is embedded as
// an APP2 ICC_PROFILE segment per the ICC spec's embedding convention.
func encodeJPEG(buf *imaging.Buffer, dpi int, iccProfile []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := jpeg.Encode(&body, toNRGBA(buf), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}

	out := injectJFIFDensity(body.Bytes(), dpi)
	if len(iccProfile) > 0 {
		out = injectICCProfile(out, iccProfile)
	}
	return out, nil
}

// encodeTIFF writes buf as a TIFF with LZW compression, 16-bit per
// channel when greyscale is false (preserving the working buffer's
// extra precision) and 16-bit single-channel when it is true.
//
// x/image/tiff's encoder does not expose a path for embedding custom
// IFD tags, so an ICC profile cannot be inlined in the TIFF the way it
// can in the JPEG's APP2 segment; see DESIGN.md. Callers that need the
// profile alongside a TIFF export should write iccProfile to a sibling
// ".icc" file themselves.
func encodeTIFF(buf *imaging.Buffer, greyscale bool) ([]byte, error) {
	var img image.Image
	if greyscale {
		img = toGray16(buf)
	} else {
		img = toRGBA64Image(buf)
	}

	var out bytes.Buffer
	if err := tiff.Encode(&out, img, &tiff.Options{Compression: tiff.LZW}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func toNRGBA(buf *imaging.Buffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			img.SetNRGBA(x, y, color.NRGBA{R: clamp8(r), G: clamp8(g), B: clamp8(b), A: 0xff})
		}
	}
	return img
}

func toRGBA64Image(buf *imaging.Buffer) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			img.SetRGBA64(x, y, color.RGBA64{R: clamp16(r), G: clamp16(g), B: clamp16(b), A: 0xffff})
		}
	}
	return img
}

func toGray16(buf *imaging.Buffer) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, buf.Width, buf.Height))
	luma := imaging.Luma(buf)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			img.SetGray16(x, y, color.Gray16{Y: clamp16(luma[y*buf.Width+x])})
		}
	}
	return img
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v * 0xff)
}
