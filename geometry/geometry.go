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

import "github.com/jetsetilly/negpy/imaging"

// Result is the geometry stage's output: the transformed buffer plus
// the Params the pipeline publishes into its context for Retouch to
// consume.
type Result struct {
	Buffer *imaging.Buffer
	Params Params
}

// Apply runs the full geometry stage: 90-degree rotation, flips, fine
// rotation, then either a manual crop rect or autocrop with margin and
// aspect-ratio enforcement. assistLuma is forwarded to Autocrop
// unchanged; pass 0 when no exposure-stage estimate is available.
func Apply(buf *imaging.Buffer, cfg Config, assistLuma float64) Result {
	cfg.Clamp()

	params := Params{
		Rotation:     cfg.Rotation,
		FineRotation: cfg.FineRotation,
		FlipH:        cfg.FlipH,
		FlipV:        cfg.FlipV,
		RawHeight:    buf.Height,
		RawWidth:     buf.Width,
	}

	out := Rot90(buf, cfg.Rotation)
	if cfg.FlipH {
		out = FlipHorizontal(out)
	}
	if cfg.FlipV {
		out = FlipVertical(out)
	}
	if cfg.FineRotation != 0 {
		out = FineRotate(out, cfg.FineRotation)
	}

	roi := resolveCrop(out, cfg, assistLuma)
	params.ROI = &roi

	if roi != Full(out.Height, out.Width) {
		out = crop(out, roi)
	}

	return Result{Buffer: out, Params: params}
}

// resolveCrop picks between a manual crop rect and autocrop detection,
// then applies margin/aspect-ratio enforcement to whichever was chosen.
// A manual rect always wins over autocrop, matching the slider
// precedence the rest of GeometryConfig follows.
func resolveCrop(buf *imaging.Buffer, cfg Config, assistLuma float64) ROI {
	if cfg.ManualCropRect != nil {
		r := *cfg.ManualCropRect
		roi := ROI{
			X1: int(r.X1 * float64(buf.Width)),
			Y1: int(r.Y1 * float64(buf.Height)),
			X2: int(r.X2 * float64(buf.Width)),
			Y2: int(r.Y2 * float64(buf.Height)),
		}
		if !roi.Valid(buf.Height, buf.Width) {
			return Full(buf.Height, buf.Width)
		}
		return roi
	}

	if !cfg.Autocrop {
		return Full(buf.Height, buf.Width)
	}

	roi := Autocrop(buf, assistLuma)
	return EnforceMargin(roi, cfg.AutocropOffset, cfg.AutocropRatio, buf.Width, buf.Height)
}

// crop copies the pixels within roi into a freshly allocated buffer.
func crop(buf *imaging.Buffer, roi ROI) *imaging.Buffer {
	h := roi.Y2 - roi.Y1
	w := roi.X2 - roi.X1
	out := imaging.New(h, w, buf.Channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < buf.Channels; c++ {
				out.Set(y, x, c, buf.At(roi.Y1+y, roi.X1+x, c))
			}
		}
	}
	return out
}
