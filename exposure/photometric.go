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

// Slider->physical mapping constants, drawn from the source system's
// calibration rather than derived analytically.
const (
	densityMultiplier = 0.2
	gradeMultiplier   = 2.0
	cmyMaxDensity     = 0.1
)

// physical is the slider->physical conversion of an ExposureConfig,
// per spec §4.3.3.
type physical struct {
	pivot      float64
	slope      float64
	cmyOffsets [3]float64 // R, G, B, from cyan/magenta/yellow filtration
}

func toPhysical(cfg Config) physical {
	exposureShift := 0.1 + cfg.Density*densityMultiplier
	return physical{
		pivot: 1.0 - exposureShift,
		slope: 1.0 + cfg.Grade*gradeMultiplier,
		cmyOffsets: [3]float64{
			cfg.WBCyan * cmyMaxDensity,
			cfg.WBMagenta * cmyMaxDensity,
			cfg.WBYellow * cmyMaxDensity,
		},
	}
}

// Photometric applies the characteristic curve (inversion) to a
// log-normalized buffer per spec §4.3.2/§4.3.4. mode==BW collapses the
// per-channel result to luminance and replicates it across channels;
// C41 and E6 apply the identical curve (E6's own inversion already
// happened during Normalize, so there is nothing mode-specific left to
// do here beyond the shared sigmoid).
func Photometric(norm *imaging.Buffer, cfg Config, mode ProcessMode) *imaging.Buffer {
	phys := toPhysical(cfg)

	// Converted once per image, outside the per-pixel loop below, which
	// runs entirely in float32 via chewxy/math32 to match imaging.Buffer's
	// own storage.
	pivot := float32(phys.pivot)
	slope := float32(phys.slope)
	cmyOffsets := [3]float32{float32(phys.cmyOffsets[0]), float32(phys.cmyOffsets[1]), float32(phys.cmyOffsets[2])}
	params := curveParams{
		Toe:              float32(cfg.Toe),
		Shoulder:         float32(cfg.Shoulder),
		ToeWidth:         float32(cfg.ToeWidth),
		ShoulderWidth:    float32(cfg.ShoulderWidth),
		ToeHardness:      float32(cfg.ToeHardness),
		ShoulderHardness: float32(cfg.ShoulderHardness),
	}

	out := imaging.NewRGB(norm.Height, norm.Width)
	for y := 0; y < norm.Height; y++ {
		for x := 0; x < norm.Width; x++ {
			r, g, b := norm.RGB(y, x)
			vals := [3]float32{r, g, b}

			var positive [3]float32
			for c := 0; c < 3; c++ {
				adjusted := vals[c] + cmyOffsets[c]
				d := density(adjusted, slope, pivot, params)
				positive[c] = transmittance(d)
			}

			if mode == BW {
				l := imaging.LumaR*positive[0] + imaging.LumaG*positive[1] + imaging.LumaB*positive[2]
				positive[0], positive[1], positive[2] = l, l, l
			}

			out.SetRGB(y, x, positive[0], positive[1], positive[2])
		}
	}
	return out
}
