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

package rawio

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	_ "golang.org/x/image/tiff"

	negerrors "github.com/jetsetilly/negpy/errors"
	"github.com/jetsetilly/negpy/imaging"
)

// Load decodes path into a linear-light RGB buffer plus its metadata
// (spec §6.1 RawLoader.load). Genuine mosaiced camera RAW extensions
// are recognized but return errors.UnsupportedFormat; see package doc.
func Load(path string, opts Options) (*imaging.Buffer, Metadata, error) {
	ext := strings.ToUpper(filepath.Ext(path))

	if !IsDecodable(path) {
		return nil, Metadata{}, negerrors.Errorf(negerrors.UnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, negerrors.Errorf(negerrors.RawDecodeError, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, Metadata{}, negerrors.Errorf(negerrors.RawDecodeError, err)
	}

	buf := toLinearBuffer(img)

	meta := Metadata{
		ColorSpace:          "srgb",
		CameraWBMultipliers: neutralWB,
	}

	return buf, meta, nil
}

// toLinearBuffer decodes img's display-encoded (sRGB gamma) samples
// into the core's linear-light [0,1] convention, per the RawLoader
// contract's "gamma 1,1" requirement: the buffer this package hands
// back has already had the source's own transfer function removed.
func toLinearBuffer(img image.Image) *imaging.Buffer {
	b := img.Bounds()
	out := imaging.NewRGB(b.Dy(), b.Dx())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.SetRGB(y, x,
				srgbToLinear(float32(r)/0xffff),
				srgbToLinear(float32(g)/0xffff),
				srgbToLinear(float32(bl)/0xffff),
			)
		}
	}
	return out
}

// srgbToLinear applies the IEC 61966-2-1 sRGB electro-optical
// transfer function's inverse.
func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}
