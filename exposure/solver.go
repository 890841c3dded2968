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

// targetPaperRange is the dynamic range (in curve-slope units) the
// solver aims to compress the subject's measured range into.
const targetPaperRange = 2.1

// Solve derives an ExposureConfig's density/grade/CMY sliders from a
// normalized log-negative, per spec §4.3.5, then rounds density/grade to
// the nearest 0.05 and CMY to the nearest 0.5 - the UI's own smoothing
// step (spec §9). Programmatic callers that want the solver's raw,
// unrounded output should call SolveRaw instead.
func Solve(norm *imaging.Buffer, base Config) Config {
	out := SolveRaw(norm, base)
	out.Density = roundTo(out.Density, 0.05)
	out.Grade = roundTo(out.Grade, 0.05)
	out.WBMagenta = roundTo(out.WBMagenta, 0.5)
	out.WBYellow = roundTo(out.WBYellow, 0.5)
	out.Clamp()
	return out
}

// SolveRaw is Solve without the UI's rounding step, for programmatic
// callers per spec §9 ("disable it in programmatic APIs").
func SolveRaw(norm *imaging.Buffer, base Config) Config {
	// 1. crop to center 60%, 20% margin each side.
	marginY := int(float64(norm.Height) * 0.2)
	marginX := int(float64(norm.Width) * 0.2)
	y1, y2 := marginY, norm.Height-marginY
	x1, x2 := marginX, norm.Width-marginX
	if y1 >= y2 || x1 >= x2 {
		y1, y2, x1, x2 = 0, norm.Height, 0, norm.Width
	}

	var samples [3][]float64
	for c := 0; c < 3; c++ {
		samples[c] = make([]float64, 0, (y2-y1)*(x2-x1))
	}
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			r, g, b := norm.RGB(y, x)
			samples[0] = append(samples[0], float64(r))
			samples[1] = append(samples[1], float64(g))
			samples[2] = append(samples[2], float64(b))
		}
	}

	var p1, p75, p99 [3]float64
	for c := 0; c < 3; c++ {
		p1[c] = percentile(samples[c], 1)
		p75[c] = percentile(samples[c], 75)
		p99[c] = percentile(samples[c], 99)
	}

	dr := p99[0] - p1[0]
	if dr < epsilon {
		dr = epsilon
	}
	midpointRed := (p1[0] + p99[0]) / 2

	// 3. slope -> grade
	slopePhysical := targetPaperRange / dr
	grade := (slopePhysical - 1) / gradeMultiplier

	// 4. make Red's 75th percentile the curve's pivot (diff=0, the
	// curve's own inflection) and solve the exposure shift that
	// pivot implies.
	pivot := p75[0]
	exposureShift := 1.0 - pivot
	density := (exposureShift - 0.1) / densityMultiplier

	// 5. CMY: compare Red's midpoint to Green/Blue residual offsets.
	midpointGreen := (p1[1] + p99[1]) / 2
	midpointBlue := (p1[2] + p99[2]) / 2
	wbMagenta := (midpointRed - midpointGreen) / cmyMaxDensity
	wbYellow := (midpointRed - midpointBlue) / cmyMaxDensity

	out := base
	out.Density = density
	out.Grade = grade
	out.WBCyan = 0
	out.WBMagenta = wbMagenta
	out.WBYellow = wbYellow
	out.Clamp()
	return out
}

func roundTo(v, step float64) float64 {
	return float64(int(v/step+sign(v)*0.5)) * step
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
