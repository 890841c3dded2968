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

import "github.com/jetsetilly/negpy/imaging"

// Result is the exposure stage's output: the positive buffer plus the
// bounds the log-normalization step measured, published into the
// pipeline context for downstream stages (and re-solving) to consume.
type Result struct {
	Buffer *imaging.Buffer
	Bounds Bounds
}

// Apply runs the full exposure stage - optional flatfield correction,
// log-space normalization, then the characteristic curve - on buf,
// which must already be in raw linear [0,1] space (geometry-cropped,
// not yet inverted). region restricts bounds measurement to the active
// ROI when one is set; pass a zero Region to measure the whole frame.
func Apply(buf *imaging.Buffer, cfg Config, mode ProcessMode, region Region) Result {
	cfg.Clamp()

	src := buf
	if cfg.FlatfieldRef != nil {
		src = ApplyFlatfield(src, cfg.FlatfieldRef)
	}

	invert := mode == E6
	bounds := Measure(src, region)
	norm := Normalize(src, bounds, invert)
	positive := Photometric(norm, cfg, mode)

	return Result{Buffer: positive, Bounds: bounds}
}
