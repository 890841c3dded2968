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
	"math"

	"github.com/jetsetilly/negpy/imaging"
)

// frame centers content within a paper-sized canvas and fills the
// surround with cfg.BorderColor (spec §4.9 step 2). When
// cfg.PaperAspectRatio is PaperOriginal this is a no-op clone: the
// content buffer already is the export buffer.
func frame(content *imaging.Buffer, cfg Config) *imaging.Buffer {
	ratio, ok := paperAspect[cfg.PaperAspectRatio]
	if !ok {
		return content.Clone()
	}

	border := borderPixels(cfg)
	contentW := content.Width
	contentH := content.Height

	paperW, paperH := paperDims(contentW, contentH, ratio, border)

	out := imaging.NewRGB(paperH, paperW)
	fillBorder(out, cfg.BorderColor)

	offY := (paperH - contentH) / 2
	offX := (paperW - contentW) / 2
	for y := 0; y < contentH; y++ {
		for x := 0; x < contentW; x++ {
			r, g, b := content.RGB(y, x)
			out.SetRGB(offY+y, offX+x, r, g, b)
		}
	}
	return out
}

// paperDims returns the paper canvas dimensions (including border)
// large enough to hold a contentW x contentH rectangle plus border on
// every side, matching ratio (long edge over short edge) and oriented
// the same way as the content (portrait content gets portrait paper).
func paperDims(contentW, contentH int, ratio float64, border int) (int, int) {
	innerW := float64(contentW + 2*border)
	innerH := float64(contentH + 2*border)

	longInner, shortInner := innerW, innerH
	landscape := innerW >= innerH
	if !landscape {
		longInner, shortInner = innerH, innerW
	}

	long := math.Max(longInner, shortInner*ratio)
	short := long / ratio

	if landscape {
		return int(math.Round(long)), int(math.Round(short))
	}
	return int(math.Round(short)), int(math.Round(long))
}

func fillBorder(buf *imaging.Buffer, c BorderColor) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			buf.SetRGB(y, x, float32(c.R), float32(c.G), float32(c.B))
		}
	}
}
