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
	"github.com/jetsetilly/negpy/exposure"
	"github.com/jetsetilly/negpy/icc"
	"github.com/jetsetilly/negpy/imaging"
)

// wantsGreyscale reports whether the export should collapse to a
// single luma channel: either the export color space is explicitly
// Greyscale, or the source was processed in B&W and no toning gave it
// a deliberate color cast (spec §4.9 step 3).
func wantsGreyscale(cfg Config, mode exposure.ProcessMode, toningActive bool) bool {
	if cfg.ColorSpace == icc.Greyscale {
		return true
	}
	return mode == exposure.BW && !toningActive
}

// toGreyscale replaces every pixel's channels with its Rec.709 luma,
// matching the three-equal-channels convention the rest of the
// pipeline already uses for B&W buffers.
func toGreyscale(buf *imaging.Buffer) *imaging.Buffer {
	out := imaging.NewRGB(buf.Height, buf.Width)
	luma := imaging.Luma(buf)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			l := luma[y*buf.Width+x]
			out.SetRGB(y, x, l, l, l)
		}
	}
	return out
}
