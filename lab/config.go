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

// Package lab implements the perceptual-space finishing stage:
// spectral crosstalk (color separation) in density space, CLAHE local
// contrast, chroma noise smoothing and unsharp-mask sharpening, all in
// CIE Lab by way of github.com/lucasb-eyer/go-colorful, plus a
// selective-color HSL adjustment pass.
package lab

// HueBand is one per-hue-range saturation/lightness nudge (a feature
// the original system's selective-color tool applies that spec.md's
// distillation dropped).
type HueBand struct {
	CenterDeg float64 // hue center, degrees
	WidthDeg  float64
	Saturation float64 // additive, [-1,1]
	Lightness  float64 // additive, [-1,1]
}

// Config is the user-facing Lab slider set (spec §3 LabConfig).
type Config struct {
	ColorSeparation float64 // [1,4], 1 = identity
	ClaheStrength   float64 // [0,1]
	CNoiseStrength  float64 // [0,1]
	Sharpen         float64 // [0,1]

	// CrosstalkMatrix, when nil, defaults to DefaultCrosstalkMatrix.
	CrosstalkMatrix *[3][3]float64

	SelectiveBands []HueBand
}

// DefaultCrosstalkMatrix models a modest amount of dye-layer spectral
// crosstalk typical of C41 color negative film stock.
var DefaultCrosstalkMatrix = [3][3]float64{
	{1.00, -0.08, -0.02},
	{-0.05, 1.00, -0.05},
	{-0.02, -0.10, 1.00},
}

// Clamp brings scalar fields into their legal range in place.
func (c *Config) Clamp() {
	c.ColorSeparation = clamp(c.ColorSeparation, 1, 4)
	c.ClaheStrength = clamp(c.ClaheStrength, 0, 1)
	c.CNoiseStrength = clamp(c.CNoiseStrength, 0, 1)
	c.Sharpen = clamp(c.Sharpen, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
