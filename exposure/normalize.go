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

package exposure

import (
	"github.com/chewxy/math32"

	"github.com/jetsetilly/negpy/imaging"
)

// ApplyFlatfield divides buf by ref pixel-wise, each channel
// renormalized so the flatfield's own mean stays at 1 (otherwise a
// dim blank-frame capture would darken the whole image rather than
// just cancelling its vignetting). ref must share buf's dimensions;
// a mismatched ref is a caller error and is left unapplied.
func ApplyFlatfield(buf *imaging.Buffer, ref *imaging.Buffer) *imaging.Buffer {
	if ref == nil || ref.Height != buf.Height || ref.Width != buf.Width {
		return buf
	}

	var mean [3]float64
	n := float64(buf.Height * buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := ref.RGB(y, x)
			mean[0] += float64(r)
			mean[1] += float64(g)
			mean[2] += float64(b)
		}
	}
	for c := range mean {
		mean[c] /= n
		if mean[c] < epsilon {
			mean[c] = epsilon
		}
	}

	out := imaging.NewRGB(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			fr, fg, fb := ref.RGB(y, x)
			out.SetRGB(y, x,
				clampDivide(float64(r), float64(fr), mean[0]),
				clampDivide(float64(g), float64(fg), mean[1]),
				clampDivide(float64(b), float64(fb), mean[2]),
			)
		}
	}
	return out
}

func clampDivide(v, f, mean float64) float32 {
	if f < epsilon {
		f = epsilon
	}
	out := v * mean / f
	return float32(clip(out, 0, 1))
}

// Normalize converts buf to log10 space, clips to [epsilon, 1] first,
// then maps each channel into [0,1] using bounds. When invert is true
// (E6 positive slide source) the buffer is inverted to 1-v before
// measurement-space conversion, matching spec §4.3.4's treatment of
// slide film.
func Normalize(buf *imaging.Buffer, bounds Bounds, invert bool) *imaging.Buffer {
	var floors, spans [3]float32
	for c := 0; c < 3; c++ {
		floors[c] = float32(bounds.Floors[c])
		spans[c] = float32(bounds.Span(c))
	}

	out := imaging.NewRGB(buf.Height, buf.Width)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(y, x)
			vals := [3]float32{r, g, b}
			if invert {
				for c := range vals {
					vals[c] = 1 - vals[c]
				}
			}
			var norm [3]float32
			for c := 0; c < 3; c++ {
				v := clip32(vals[c], epsilon32, 1)
				lg := math32.Log10(v)
				norm[c] = clip32((lg-floors[c])/spans[c], 0, 1)
			}
			out.SetRGB(y, x, norm[0], norm[1], norm[2])
		}
	}
	return out
}
