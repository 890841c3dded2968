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

import "github.com/jetsetilly/negpy/imaging"

// Apply runs the Lab kernel in its fixed order: spectral crosstalk,
// selective color, CLAHE, chroma denoise, sharpen. Selective color sits
// between crosstalk and CLAHE per SPEC_FULL's supplement note.
func Apply(buf *imaging.Buffer, cfg Config, scaleFactor float64) *imaging.Buffer {
	cfg.Clamp()

	matrix := DefaultCrosstalkMatrix
	if cfg.CrosstalkMatrix != nil {
		matrix = *cfg.CrosstalkMatrix
	}

	out := Crosstalk(buf, matrix, cfg.ColorSeparation)
	out = SelectiveColor(out, cfg.SelectiveBands)
	out = CLAHE(out, cfg.ClaheStrength)
	out = ChromaDenoise(out, cfg.CNoiseStrength, scaleFactor)
	out = Sharpen(out, cfg.Sharpen)
	return out
}
